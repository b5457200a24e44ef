package auth

import (
	"net/http"
	"time"

	"github.com/4lexxe/backend-FJV/config"
	"github.com/4lexxe/backend-FJV/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Email y contraseña son obligatorios"})
		return
	}

	var usuario usuarios.Usuario
	if err := h.DB.Preload("Rol").Where("email = ?", input.Email).First(&usuario).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "Credenciales inválidas"})
		return
	}

	if usuario.Password == nil || *usuario.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "Esta cuenta usa inicio de sesión con Google"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*usuario.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "Credenciales inválidas"})
		return
	}

	token, err := issueJWT(&usuario)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "No se pudo generar el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "1",
		"msg":     "Inicio de sesión exitoso",
		"token":   token,
		"usuario": usuario,
	})
}

// GET /api/auth/profile
func (h *Handler) Profile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "No autenticado"})
		return
	}

	var usuario usuarios.Usuario
	if err := h.DB.Preload("Rol").First(&usuario, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "1", "usuario": usuario})
}

func issueJWT(u *usuarios.Usuario) (string, error) {
	rol := usuarios.RolUsuario
	if u.Rol != nil {
		rol = u.Rol.Nombre
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"rol":     rol,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
