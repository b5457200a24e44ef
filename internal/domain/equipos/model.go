package equipos

import (
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/categorias"
	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
)

type Equipo struct {
	IDEquipo    uint                  `gorm:"primaryKey" json:"idEquipo"`
	Nombre      string                `gorm:"size:255;not null" json:"nombre"`
	IDClub      uint                  `gorm:"not null;index" json:"idClub"`
	Club        *clubes.Club          `gorm:"foreignKey:IDClub" json:"club,omitempty"`
	IDCategoria *uint                 `gorm:"index" json:"idCategoria"`
	Categoria   *categorias.Categoria `gorm:"foreignKey:IDCategoria;constraint:OnDelete:SET NULL" json:"categoria,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Equipo) TableName() string { return "equipos" }
