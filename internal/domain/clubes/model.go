package clubes

import "time"

// Club es una institución afiliada a la federación. Los equipos, cobros y
// personas referencian a su club; la baja de un club con registros asociados
// se rechaza desde los handlers.
type Club struct {
	IDClub           uint      `gorm:"primaryKey" json:"idClub"`
	Nombre           string    `gorm:"size:255;not null;uniqueIndex" json:"nombre"`
	Direccion        string    `gorm:"size:255;not null" json:"direccion"`
	Telefono         *string   `gorm:"size:20" json:"telefono"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CUIT             string    `gorm:"column:cuit;size:15;not null;uniqueIndex" json:"cuit"`
	FechaAfiliacion  time.Time `gorm:"type:date;not null" json:"fechaAfiliacion"`
	EstadoAfiliacion string    `gorm:"size:50;not null;default:Activo" json:"estadoAfiliacion"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Club) TableName() string { return "clubs" }
