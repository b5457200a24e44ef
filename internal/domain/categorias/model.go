package categorias

import "time"

type Categoria struct {
	IDCategoria uint   `gorm:"primaryKey" json:"idCategoria"`
	Nombre      string `gorm:"size:100;not null" json:"nombre"`
	Tipo        string `gorm:"size:20;not null" json:"tipo"`
	EdadMinima  *int   `json:"edadMinima"`
	EdadMaxima  *int   `json:"edadMaxima"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Categoria) TableName() string { return "categorias" }
