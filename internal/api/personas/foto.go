package personas

import (
	"errors"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/app/http/middleware"
	"github.com/4lexxe/backend-FJV/internal/domain/personas"
	"github.com/4lexxe/backend-FJV/internal/infra/imgbb"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/personas/:id/foto
func (h *Handler) GetFoto(c *gin.Context) {
	var persona personas.Persona
	if err := h.DB.First(&persona, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}
	if persona.FotoPerfil == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "La persona no tiene foto de perfil."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fotoPerfil":       persona.FotoPerfil,
		"fotoPerfilTipo":   persona.FotoPerfilTipo,
		"fotoPerfilTamano": persona.FotoPerfilTamano,
	})
}

// PUT /api/personas/:id/foto
//
// La subida al host la hace el middleware ProcesarFotoPerfil; acá sólo se
// persiste el resultado y se descarta la foto anterior.
func (h *Handler) SubirFoto(c *gin.Context) {
	var persona personas.Persona
	if err := h.DB.First(&persona, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	valor, ok := c.Get(middleware.ImagenKey)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se recibió ninguna foto."})
		return
	}
	imagen := valor.(*imgbb.Imagen)

	anterior := persona.FotoPerfilDeleteURL
	cambios := map[string]any{
		"foto_perfil":            imagen.URL,
		"foto_perfil_delete_url": imagen.DeleteURL,
		"foto_perfil_tipo":       imagen.Tipo,
		"foto_perfil_tamano":     imagen.Tamano,
	}
	if err := h.DB.Model(&persona).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}

	if anterior != nil {
		if err := h.Imagenes.Eliminar(c.Request.Context(), *anterior); err != nil {
			log.Printf("[personas] no se pudo eliminar la foto anterior del host: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "1",
		"msg":        "Foto de perfil actualizada exitosamente.",
		"fotoPerfil": imagen.URL,
	})
}

// DELETE /api/personas/:id/foto
func (h *Handler) DeleteFoto(c *gin.Context) {
	var persona personas.Persona
	if err := h.DB.First(&persona, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}
	if persona.FotoPerfil == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "La persona no tiene foto de perfil."})
		return
	}

	if persona.FotoPerfilDeleteURL != nil {
		if err := h.Imagenes.Eliminar(c.Request.Context(), *persona.FotoPerfilDeleteURL); err != nil {
			log.Printf("[personas] no se pudo eliminar la foto del host: %v", err)
		}
	}

	cambios := map[string]any{
		"foto_perfil":            nil,
		"foto_perfil_delete_url": nil,
		"foto_perfil_tipo":       nil,
		"foto_perfil_tamano":     nil,
	}
	if err := h.DB.Model(&persona).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Foto de perfil eliminada exitosamente."})
}
