package galerias

import "time"

type Galeria struct {
	IDGaleria   uint    `gorm:"primaryKey" json:"idGaleria"`
	Nombre      string  `gorm:"size:255;not null" json:"nombre"`
	Descripcion *string `gorm:"type:text" json:"descripcion"`
	Portada     *string `gorm:"size:1000" json:"portada"`
	Publicada   bool    `gorm:"not null;default:true" json:"publicada"`
	AutorID     *uint   `json:"autorId"`

	Imagenes []Imagen `gorm:"foreignKey:IDGaleria;constraint:OnDelete:CASCADE" json:"imagenes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Galeria) TableName() string { return "galerias" }

// Imagen vive en el servicio de hosting externo; acá solo se guardan las
// URLs y el handle de borrado que devuelve el host.
type Imagen struct {
	IDImagen  uint    `gorm:"primaryKey" json:"idImagen"`
	Titulo    *string `gorm:"size:255" json:"titulo"`
	URL       string  `gorm:"size:1000;not null" json:"url"`
	ThumbURL  *string `gorm:"size:1000" json:"thumbUrl"`
	DeleteURL *string `gorm:"size:1000" json:"-"`
	Orden     int     `gorm:"not null;default:0" json:"orden"`
	Tipo      *string `gorm:"size:50" json:"tipo"`
	Tamano    *int64  `json:"tamano"`
	IDGaleria uint    `gorm:"not null;index" json:"idGaleria"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Imagen) TableName() string { return "imagenes" }
