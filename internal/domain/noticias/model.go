package noticias

import "time"

type Noticia struct {
	IDNoticia        uint      `gorm:"primaryKey" json:"idNoticia"`
	Titulo           string    `gorm:"size:255;not null" json:"titulo"`
	Resumen          *string   `gorm:"size:500" json:"resumen"`
	Contenido        string    `gorm:"type:text;not null" json:"contenido"`
	ImagenURL        *string   `gorm:"size:1000" json:"imagenUrl"`
	Publicada        bool      `gorm:"not null;default:true" json:"publicada"`
	FechaPublicacion time.Time `gorm:"not null" json:"fechaPublicacion"`
	Vistas           int       `gorm:"not null;default:0" json:"vistas"`
	AutorID          *uint     `json:"autorId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Noticia) TableName() string { return "noticias" }
