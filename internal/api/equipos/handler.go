package equipos

import (
	"errors"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/categorias"
	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
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

func (h *Handler) conRelaciones() *gorm.DB {
	return h.DB.Preload("Club").Preload("Categoria")
}

// GET /api/equipos
func (h *Handler) GetEquipos(c *gin.Context) {
	var lista []equipos.Equipo
	if err := h.conRelaciones().Order("id_equipo ASC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/equipos/:id
func (h *Handler) GetEquipo(c *gin.Context) {
	var equipo equipos.Equipo
	if err := h.conRelaciones().First(&equipo, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Equipo no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, equipo)
}

type equipoInput struct {
	Nombre      string `json:"nombre" binding:"required"`
	IDClub      uint   `json:"idClub" binding:"required"`
	IDCategoria *uint  `json:"idCategoria"`
}

func (h *Handler) validarRelaciones(c *gin.Context, idClub uint, idCategoria *uint) bool {
	var club clubes.Club
	if err := h.DB.First(&club, idClub).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El Club indicado no existe."})
		return false
	}
	if idCategoria != nil {
		var categoria categorias.Categoria
		if err := h.DB.First(&categoria, *idCategoria).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "La Categoría indicada no existe."})
			return false
		}
	}
	return true
}

// POST /api/equipos
func (h *Handler) CreateEquipo(c *gin.Context) {
	var input equipoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre y el club del equipo son obligatorios."})
		return
	}
	if !h.validarRelaciones(c, input.IDClub, input.IDCategoria) {
		return
	}

	equipo := equipos.Equipo{
		Nombre:      input.Nombre,
		IDClub:      input.IDClub,
		IDCategoria: input.IDCategoria,
	}
	if err := h.DB.Create(&equipo).Error; err != nil {
		errorBD(c, err)
		return
	}

	h.conRelaciones().First(&equipo, equipo.IDEquipo)
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Equipo guardado exitosamente.", "equipo": equipo})
}

// PUT /api/equipos/:id
func (h *Handler) EditEquipo(c *gin.Context) {
	var equipo equipos.Equipo
	if err := h.DB.First(&equipo, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Equipo no encontrado para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input equipoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre y el club del equipo son obligatorios."})
		return
	}
	if !h.validarRelaciones(c, input.IDClub, input.IDCategoria) {
		return
	}

	cambios := map[string]any{
		"nombre":       input.Nombre,
		"id_club":      input.IDClub,
		"id_categoria": input.IDCategoria,
	}
	if err := h.DB.Model(&equipo).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}

	h.conRelaciones().First(&equipo, equipo.IDEquipo)
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Equipo actualizado exitosamente.", "equipo": equipo})
}

// DELETE /api/equipos/:id
func (h *Handler) DeleteEquipo(c *gin.Context) {
	var equipo equipos.Equipo
	if err := h.DB.First(&equipo, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Equipo no encontrado para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}
	if err := h.DB.Delete(&equipo).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede eliminar el equipo porque tiene cobros asociados."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Equipo eliminado exitosamente."})
}

// GET /api/equipos/filtro/buscar
func (h *Handler) GetEquipoFiltro(c *gin.Context) {
	q := h.conRelaciones().Order("id_equipo ASC")

	if v := c.Query("nombre"); v != "" {
		q = q.Where("nombre ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("idClub"); v != "" {
		q = q.Where("id_club = ?", v)
	}
	if v := c.Query("idCategoria"); v != "" {
		q = q.Where("id_categoria = ?", v)
	}

	var lista []equipos.Equipo
	if err := q.Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[equipos] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
