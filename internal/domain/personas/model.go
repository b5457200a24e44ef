package personas

import (
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
)

// Persona es un afiliado de la federación: jugador, entrenador, árbitro o
// dirigente. Los campos de licencia se mantienen sincronizados con su
// credencial vigente dentro de una misma transacción.
type Persona struct {
	IDPersona       uint      `gorm:"primaryKey" json:"idPersona"`
	NombreApellido  string    `gorm:"size:255;not null" json:"nombreApellido"`
	DNI             string    `gorm:"column:dni;size:20;not null;uniqueIndex" json:"dni"`
	FechaNacimiento time.Time `gorm:"type:date;not null" json:"fechaNacimiento"`
	Tipo            *string   `gorm:"size:50" json:"tipo"`
	Categoria       *string   `gorm:"size:100" json:"categoria"`
	CategoriaNivel  *int      `json:"categoriaNivel"`

	// Licencia federativa. EstadoLicencia es derivado de FechaLicenciaBaja y
	// se recalcula en la renovación y en el barrido masivo.
	Licencia          *string    `gorm:"size:50;uniqueIndex" json:"licencia"`
	FechaLicencia     *time.Time `gorm:"type:date" json:"fechaLicencia"`
	FechaLicenciaBaja *time.Time `gorm:"type:date" json:"fechaLicenciaBaja"`
	EstadoLicencia    string     `gorm:"size:20;not null;default:INACTIVO" json:"estadoLicencia"`

	IDClub *uint        `gorm:"index" json:"idClub"`
	Club   *clubes.Club `gorm:"foreignKey:IDClub;constraint:OnDelete:SET NULL" json:"club,omitempty"`

	FotoPerfil          *string `gorm:"size:1000" json:"fotoPerfil"`
	FotoPerfilDeleteURL *string `gorm:"size:1000" json:"-"`
	FotoPerfilTipo      *string `gorm:"size:50" json:"fotoPerfilTipo"`
	FotoPerfilTamano    *int64  `json:"fotoPerfilTamano"`

	Credenciales []Credencial `gorm:"foreignKey:IDPersona;constraint:OnDelete:CASCADE" json:"credenciales,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Persona) TableName() string { return "personas" }

// Credencial es el carnet emitido a partir de la licencia de una persona.
// Hay una credencial vigente por persona (la más reciente); las anteriores
// quedan como historial.
type Credencial struct {
	IDCredencial     uint      `gorm:"primaryKey" json:"idCredencial"`
	Identificador    string    `gorm:"size:50;not null;uniqueIndex" json:"identificador"`
	FechaAlta        time.Time `gorm:"type:date;not null" json:"fechaAlta"`
	FechaVencimiento time.Time `gorm:"type:date;not null" json:"fechaVencimiento"`
	Estado           string    `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	IDPersona        uint      `gorm:"not null;index" json:"idPersona"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Credencial) TableName() string { return "credenciales" }
