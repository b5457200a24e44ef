package noticias

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/noticias"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// GET /api/noticias
//
// Público: sólo noticias publicadas, de la más nueva a la más vieja.
func (h *Handler) GetNoticias(c *gin.Context) {
	var lista []noticias.Noticia
	if err := h.DB.
		Where("publicada = ?", true).
		Order("fecha_publicacion DESC").
		Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/noticias/admin
func (h *Handler) GetNoticiasAdmin(c *gin.Context) {
	var lista []noticias.Noticia
	if err := h.DB.Order("fecha_publicacion DESC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/noticias/:id
//
// Cada lectura pública incrementa el contador de vistas en forma atómica.
func (h *Handler) GetNoticia(c *gin.Context) {
	var noticia noticias.Noticia
	if err := h.DB.First(&noticia, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Noticia no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	if err := h.DB.Model(&noticia).
		UpdateColumn("vistas", gorm.Expr("vistas + 1")).Error; err != nil {
		log.Printf("[noticias] no se pudo incrementar las vistas: %v", err)
	} else {
		noticia.Vistas++
	}
	c.JSON(http.StatusOK, noticia)
}

type noticiaInput struct {
	Titulo           string  `json:"titulo" binding:"required"`
	Resumen          *string `json:"resumen"`
	Contenido        string  `json:"contenido" binding:"required"`
	ImagenURL        *string `json:"imagenUrl"`
	Publicada        *bool   `json:"publicada"`
	FechaPublicacion string  `json:"fechaPublicacion"`
}

// POST /api/noticias
func (h *Handler) CreateNoticia(c *gin.Context) {
	var input noticiaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El título y el contenido de la noticia son obligatorios."})
		return
	}

	publicacion := time.Now()
	if input.FechaPublicacion != "" {
		var err error
		if publicacion, err = time.Parse(time.RFC3339, input.FechaPublicacion); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de publicación inválido. Use RFC 3339."})
			return
		}
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

	noticia := noticias.Noticia{
		Titulo:           input.Titulo,
		Resumen:          input.Resumen,
		Contenido:        input.Contenido,
		ImagenURL:        input.ImagenURL,
		Publicada:        publicada,
		FechaPublicacion: publicacion,
		AutorID:          autorID,
	}
	if err := h.DB.Create(&noticia).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Noticia guardada exitosamente.", "noticia": noticia})
}

// PUT /api/noticias/:id
func (h *Handler) EditNoticia(c *gin.Context) {
	var noticia noticias.Noticia
	if err := h.DB.First(&noticia, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Noticia no encontrada para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input noticiaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El título y el contenido de la noticia son obligatorios."})
		return
	}

	cambios := map[string]any{
		"titulo":     input.Titulo,
		"resumen":    input.Resumen,
		"contenido":  input.Contenido,
		"imagen_url": input.ImagenURL,
	}
	if input.Publicada != nil {
		cambios["publicada"] = *input.Publicada
	}
	if input.FechaPublicacion != "" {
		publicacion, err := time.Parse(time.RFC3339, input.FechaPublicacion)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de publicación inválido. Use RFC 3339."})
			return
		}
		cambios["fecha_publicacion"] = publicacion
	}

	if err := h.DB.Model(&noticia).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Noticia actualizada exitosamente.", "noticia": noticia})
}

// PUT /api/noticias/:id/publicar
func (h *Handler) TogglePublicada(c *gin.Context) {
	var noticia noticias.Noticia
	if err := h.DB.First(&noticia, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Noticia no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}

	noticia.Publicada = !noticia.Publicada
	if err := h.DB.Model(&noticia).Update("publicada", noticia.Publicada).Error; err != nil {
		errorBD(c, err)
		return
	}

	msg := "Noticia despublicada exitosamente."
	if noticia.Publicada {
		msg = "Noticia publicada exitosamente."
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": msg, "noticia": noticia})
}

// DELETE /api/noticias/:id
func (h *Handler) DeleteNoticia(c *gin.Context) {
	var noticia noticias.Noticia
	if err := h.DB.First(&noticia, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Noticia no encontrada para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}
	if err := h.DB.Delete(&noticia).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Noticia eliminada exitosamente."})
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[noticias] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
