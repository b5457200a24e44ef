package usuarios

import (
	"errors"
	"log"
	"net/http"

	"github.com/4lexxe/backend-FJV/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// GET /api/usuarios
func (h *Handler) GetUsuarios(c *gin.Context) {
	var lista []usuarios.Usuario
	if err := h.DB.Preload("Rol").Order("id ASC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/usuarios/:id
func (h *Handler) GetUsuario(c *gin.Context) {
	var usuario usuarios.Usuario
	if err := h.DB.Preload("Rol").First(&usuario, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Usuario no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, usuario)
}

type usuarioInput struct {
	Nombre   string `json:"nombre" binding:"required"`
	Apellido string `json:"apellido" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	RolID    *uint  `json:"rolId"`
}

// POST /api/usuarios
func (h *Handler) CreateUsuario(c *gin.Context) {
	var input usuarioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Nombre, apellido, email y contraseña (mínimo 6 caracteres) son obligatorios."})
		return
	}

	rolID, ok := h.resolverRol(c, input.RolID)
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		errorBD(c, err)
		return
	}
	password := string(hash)
	provider := "local"

	usuario := usuarios.Usuario{
		Nombre:       input.Nombre,
		Apellido:     input.Apellido,
		Email:        input.Email,
		Password:     &password,
		ProviderType: &provider,
		RolID:        rolID,
	}
	if err := h.DB.Create(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "El email ya está registrado."})
			return
		}
		errorBD(c, err)
		return
	}

	h.DB.Preload("Rol").First(&usuario, usuario.ID)
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Usuario creado exitosamente.", "usuario": usuario})
}

type usuarioUpdate struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	RolID    *uint   `json:"rolId"`
}

// PUT /api/usuarios/:id
func (h *Handler) EditUsuario(c *gin.Context) {
	var usuario usuarios.Usuario
	if err := h.DB.First(&usuario, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Usuario no encontrado para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input usuarioUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Cuerpo de la solicitud inválido."})
		return
	}

	cambios := map[string]any{}
	if input.Nombre != nil {
		cambios["nombre"] = *input.Nombre
	}
	if input.Apellido != nil {
		cambios["apellido"] = *input.Apellido
	}
	if input.Email != nil {
		cambios["email"] = *input.Email
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "La contraseña debe tener al menos 6 caracteres."})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			errorBD(c, err)
			return
		}
		cambios["password"] = string(hash)
	}
	if input.RolID != nil {
		rolID, ok := h.resolverRol(c, input.RolID)
		if !ok {
			return
		}
		cambios["rol_id"] = rolID
	}

	if err := h.DB.Model(&usuario).Updates(cambios).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "El email ya está registrado en otro usuario."})
			return
		}
		errorBD(c, err)
		return
	}

	h.DB.Preload("Rol").First(&usuario, usuario.ID)
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Usuario actualizado exitosamente.", "usuario": usuario})
}

// DELETE /api/usuarios/:id
func (h *Handler) DeleteUsuario(c *gin.Context) {
	var usuario usuarios.Usuario
	if err := h.DB.First(&usuario, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Usuario no encontrado para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}
	if err := h.DB.Delete(&usuario).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Usuario eliminado exitosamente."})
}

// resolverRol valida el rol pedido o cae al rol "usuario" por defecto.
func (h *Handler) resolverRol(c *gin.Context, rolID *uint) (uint, bool) {
	var rol usuarios.Rol
	if rolID != nil {
		if err := h.DB.First(&rol, *rolID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El rol indicado no existe."})
			return 0, false
		}
		return rol.ID, true
	}
	if err := h.DB.Where("nombre = ?", usuarios.RolUsuario).First(&rol).Error; err != nil {
		errorBD(c, err)
		return 0, false
	}
	return rol.ID, true
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[usuarios] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
