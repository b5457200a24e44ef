package roles

import (
	"errors"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// GET /api/rol
func (h *Handler) GetRoles(c *gin.Context) {
	var lista []usuarios.Rol
	if err := h.DB.Order("id ASC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/rol/:id
func (h *Handler) GetRol(c *gin.Context) {
	var rol usuarios.Rol
	if err := h.DB.First(&rol, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Rol no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, rol)
}

type rolInput struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion *string `json:"descripcion"`
}

// POST /api/rol
func (h *Handler) CreateRol(c *gin.Context) {
	var input rolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre del rol es obligatorio."})
		return
	}

	rol := usuarios.Rol{Nombre: input.Nombre, Descripcion: input.Descripcion}
	if err := h.DB.Create(&rol).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "Ya existe un rol con ese nombre."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Rol creado exitosamente.", "rol": rol})
}

// PUT /api/rol/:id
func (h *Handler) EditRol(c *gin.Context) {
	var rol usuarios.Rol
	if err := h.DB.First(&rol, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Rol no encontrado para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input rolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre del rol es obligatorio."})
		return
	}

	cambios := map[string]any{"nombre": input.Nombre, "descripcion": input.Descripcion}
	if err := h.DB.Model(&rol).Updates(cambios).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "Ya existe un rol con ese nombre."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Rol actualizado exitosamente.", "rol": rol})
}

// DELETE /api/rol/:id
func (h *Handler) DeleteRol(c *gin.Context) {
	var rol usuarios.Rol
	if err := h.DB.First(&rol, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Rol no encontrado para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}

	var enUso int64
	if err := h.DB.Model(&usuarios.Usuario{}).Where("rol_id = ?", rol.ID).Count(&enUso).Error; err != nil {
		errorBD(c, err)
		return
	}
	if enUso > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede eliminar el rol porque tiene usuarios asignados."})
		return
	}

	if err := h.DB.Delete(&rol).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Rol eliminado exitosamente."})
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[roles] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
