package usuarios

import "time"

// Roles sembrados al iniciar la aplicación.
const (
	RolAdmin         = "admin"
	RolUsuario       = "usuario"
	RolUsuarioSocial = "usuario_social"
)

type Rol struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Nombre      string  `gorm:"size:50;not null;uniqueIndex" json:"nombre"`
	Descripcion *string `gorm:"size:255" json:"descripcion"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Rol) TableName() string { return "roles" }

// Usuario es una cuenta de acceso al sistema (no confundir con Persona, que
// es el afiliado deportivo). Password es nil para cuentas creadas vía OAuth.
type Usuario struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Nombre          string  `gorm:"size:100;not null" json:"nombre"`
	Apellido        string  `gorm:"size:100;not null" json:"apellido"`
	Email           string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password        *string `gorm:"size:255" json:"-"`
	GoogleID        *string `gorm:"column:google_id;size:64;uniqueIndex" json:"-"`
	ProviderType    *string `gorm:"size:20" json:"providerType"`
	FotoPerfil      *string `gorm:"size:1000" json:"fotoPerfil"`
	EmailVerificado bool    `gorm:"not null;default:false" json:"emailVerificado"`

	RolID uint `gorm:"not null" json:"rolId"`
	Rol   *Rol `gorm:"foreignKey:RolID" json:"rol,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Usuario) TableName() string { return "usuarios" }
