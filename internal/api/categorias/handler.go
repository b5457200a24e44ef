package categorias

import (
	"errors"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/categorias"
	"github.com/4lexxe/backend-FJV/internal/domain/equipos"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// GET /api/categorias
func (h *Handler) GetCategorias(c *gin.Context) {
	var lista []categorias.Categoria
	if err := h.DB.Order("id_categoria ASC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/categorias/:id
func (h *Handler) GetCategoria(c *gin.Context) {
	var categoria categorias.Categoria
	if err := h.DB.First(&categoria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Categoría no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, categoria)
}

type categoriaInput struct {
	Nombre     string `json:"nombre" binding:"required"`
	Tipo       string `json:"tipo" binding:"required"`
	EdadMinima *int   `json:"edadMinima"`
	EdadMaxima *int   `json:"edadMaxima"`
}

func (in *categoriaInput) validarEdades() string {
	if in.EdadMinima != nil && *in.EdadMinima < 0 {
		return "La edad mínima no puede ser negativa."
	}
	if in.EdadMaxima != nil && *in.EdadMaxima < 0 {
		return "La edad máxima no puede ser negativa."
	}
	if in.EdadMinima != nil && in.EdadMaxima != nil && *in.EdadMinima > *in.EdadMaxima {
		return "La edad mínima no puede superar la edad máxima."
	}
	return ""
}

// POST /api/categorias
func (h *Handler) CreateCategoria(c *gin.Context) {
	var input categoriaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre y el tipo de la categoría son obligatorios."})
		return
	}
	if msg := input.validarEdades(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": msg})
		return
	}

	categoria := categorias.Categoria{
		Nombre:     input.Nombre,
		Tipo:       input.Tipo,
		EdadMinima: input.EdadMinima,
		EdadMaxima: input.EdadMaxima,
	}
	if err := h.DB.Create(&categoria).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Categoría guardada exitosamente.", "categoria": categoria})
}

// PUT /api/categorias/:id
func (h *Handler) EditCategoria(c *gin.Context) {
	var categoria categorias.Categoria
	if err := h.DB.First(&categoria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Categoría no encontrada para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input categoriaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre y el tipo de la categoría son obligatorios."})
		return
	}
	if msg := input.validarEdades(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": msg})
		return
	}

	cambios := map[string]any{
		"nombre":      input.Nombre,
		"tipo":        input.Tipo,
		"edad_minima": input.EdadMinima,
		"edad_maxima": input.EdadMaxima,
	}
	if err := h.DB.Model(&categoria).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Categoría actualizada exitosamente.", "categoria": categoria})
}

// DELETE /api/categorias/:id
//
// Los equipos que la referencian quedan sin categoría (SET NULL), pero se
// avisa cuántos quedaron afectados.
func (h *Handler) DeleteCategoria(c *gin.Context) {
	var categoria categorias.Categoria
	if err := h.DB.First(&categoria, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Categoría no encontrada para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}

	var afectados int64
	if err := h.DB.Model(&equipos.Equipo{}).Where("id_categoria = ?", categoria.IDCategoria).Count(&afectados).Error; err != nil {
		errorBD(c, err)
		return
	}

	if err := h.DB.Delete(&categoria).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "1",
		"msg":              "Categoría eliminada exitosamente.",
		"equiposAfectados": afectados,
	})
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[categorias] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
