package personas

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/personas"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PUT /api/personas/:id/renovar
//
// Renueva la licencia por un año desde hoy y sincroniza la credencial
// vigente en la misma transacción.
func (h *Handler) RenovarLicencia(c *gin.Context) {
	var persona personas.Persona
	if err := h.DB.First(&persona, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	if _, err := h.Licencias.Renovar(c.Request.Context(), persona.IDPersona); err != nil {
		if errors.Is(err, personas.ErrPersonaNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	var renovada personas.Persona
	if err := h.conRelaciones().First(&renovada, persona.IDPersona).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "1",
		"msg":     "Licencia renovada exitosamente.",
		"persona": renovada,
	})
}

// POST /api/personas/actualizar-estado-licencias
//
// Barrido masivo: marca como VENCIDO toda licencia cuya fecha de baja ya
// pasó. Es idempotente, correrlo dos veces seguidas no cambia nada.
func (h *Handler) ActualizarEstadoLicencias(c *gin.Context) {
	cambiadas, revisadas, err := h.Licencias.ActualizarEstados(c.Request.Context())
	if err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":                "1",
		"msg":                   fmt.Sprintf("Se actualizó el estado de %d licencias", cambiadas),
		"totalPersonas":         revisadas,
		"licenciasActualizadas": cambiadas,
	})
}
