package personas

import (
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/personas"

	"github.com/gin-gonic/gin"
)

type conteoTipo struct {
	Tipo     string `json:"tipo"`
	Cantidad int64  `json:"cantidad"`
}

type conteoClub struct {
	IDClub   *uint  `json:"idClub"`
	Club     string `json:"club"`
	Cantidad int64  `json:"cantidad"`
}

// GET /api/personas/resumen
func (h *Handler) GetResumen(c *gin.Context) {
	var total, activas, vencidas int64
	if err := h.DB.Model(&personas.Persona{}).Count(&total).Error; err != nil {
		errorBD(c, err)
		return
	}
	if err := h.DB.Model(&personas.Persona{}).
		Where("estado_licencia = ?", personas.LicenciaActiva).
		Count(&activas).Error; err != nil {
		errorBD(c, err)
		return
	}
	if err := h.DB.Model(&personas.Persona{}).
		Where("estado_licencia = ?", personas.LicenciaVencida).
		Count(&vencidas).Error; err != nil {
		errorBD(c, err)
		return
	}

	var porTipo []conteoTipo
	if err := h.DB.Model(&personas.Persona{}).
		Select("COALESCE(tipo, 'SIN TIPO') AS tipo, COUNT(*) AS cantidad").
		Group("COALESCE(tipo, 'SIN TIPO')").
		Order("cantidad DESC").
		Scan(&porTipo).Error; err != nil {
		errorBD(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalPersonas":     total,
		"licenciasActivas":  activas,
		"licenciasVencidas": vencidas,
		"porTipo":           porTipo,
	})
}

// GET /api/personas/tipo
func (h *Handler) GetCantidadPorTipo(c *gin.Context) {
	var porTipo []conteoTipo
	if err := h.DB.Model(&personas.Persona{}).
		Select("COALESCE(tipo, 'SIN TIPO') AS tipo, COUNT(*) AS cantidad").
		Group("COALESCE(tipo, 'SIN TIPO')").
		Order("cantidad DESC").
		Scan(&porTipo).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, porTipo)
}

// GET /api/personas/clubes
func (h *Handler) GetCantidadPorClub(c *gin.Context) {
	var porClub []conteoClub
	if err := h.DB.Model(&personas.Persona{}).
		Select("personas.id_club AS id_club, COALESCE(clubs.nombre, 'SIN CLUB') AS club, COUNT(*) AS cantidad").
		Joins("LEFT JOIN clubs ON clubs.id_club = personas.id_club").
		Group("personas.id_club, clubs.nombre").
		Order("cantidad DESC").
		Scan(&porClub).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, porClub)
}
