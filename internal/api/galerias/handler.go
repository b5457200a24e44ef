package galerias

import (
	"errors"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/galerias"
	"github.com/4lexxe/backend-FJV/internal/infra/imgbb"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB       *gorm.DB
	Imagenes *imgbb.Client
}

func NewHandler(db *gorm.DB, imagenes *imgbb.Client) *Handler {
	return &Handler{DB: db, Imagenes: imagenes}
}

func (h *Handler) conImagenes() *gorm.DB {
	return h.DB.Preload("Imagenes", func(db *gorm.DB) *gorm.DB {
		return db.Order("orden ASC, id_imagen ASC")
	})
}

// GET /api/galerias
//
// Público: sólo galerías publicadas.
func (h *Handler) GetGalerias(c *gin.Context) {
	var lista []galerias.Galeria
	if err := h.conImagenes().
		Where("publicada = ?", true).
		Order("id_galeria DESC").
		Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/galerias/admin
func (h *Handler) GetGaleriasAdmin(c *gin.Context) {
	var lista []galerias.Galeria
	if err := h.conImagenes().Order("id_galeria DESC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/galerias/:id
func (h *Handler) GetGaleria(c *gin.Context) {
	var galeria galerias.Galeria
	if err := h.conImagenes().First(&galeria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Galería no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, galeria)
}

type galeriaInput struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion *string `json:"descripcion"`
	Publicada   *bool   `json:"publicada"`
}

// POST /api/galerias
func (h *Handler) CreateGaleria(c *gin.Context) {
	var input galeriaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre de la galería es obligatorio."})
		return
	}

	publicada := true
	if input.Publicada != nil {
		publicada = *input.Publicada
	}
	var autorID *uint
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			autorID = &id
		}
	}

	galeria := galerias.Galeria{
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
		Publicada:   publicada,
		AutorID:     autorID,
	}
	if err := h.DB.Create(&galeria).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Galería creada exitosamente.", "galeria": galeria})
}

// PUT /api/galerias/:id
func (h *Handler) EditGaleria(c *gin.Context) {
	var galeria galerias.Galeria
	if err := h.DB.First(&galeria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Galería no encontrada para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input galeriaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre de la galería es obligatorio."})
		return
	}

	cambios := map[string]any{
		"nombre":      input.Nombre,
		"descripcion": input.Descripcion,
	}
	if input.Publicada != nil {
		cambios["publicada"] = *input.Publicada
	}
	if err := h.DB.Model(&galeria).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Galería actualizada exitosamente.", "galeria": galeria})
}

// DELETE /api/galerias/:id
//
// Borra la galería y sus imágenes; las copias en el host se dan de baja a
// mejor esfuerzo después de confirmar el borrado local.
func (h *Handler) DeleteGaleria(c *gin.Context) {
	var galeria galerias.Galeria
	if err := h.conImagenes().First(&galeria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Galería no encontrada para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}

	if err := h.DB.Select("Imagenes").Delete(&galeria).Error; err != nil {
		errorBD(c, err)
		return
	}

	for _, imagen := range galeria.Imagenes {
		if imagen.DeleteURL == nil {
			continue
		}
		if err := h.Imagenes.Eliminar(c.Request.Context(), *imagen.DeleteURL); err != nil {
			log.Printf("[galerias] no se pudo eliminar la imagen %d del host: %v", imagen.IDImagen, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Galería eliminada exitosamente."})
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[galerias] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
