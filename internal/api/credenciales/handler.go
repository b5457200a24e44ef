package credenciales

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/personas"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

type credencialConPersona struct {
	personas.Credencial
	NombreApellido string  `json:"nombreApellido"`
	DNI            string  `json:"dni"`
	Tipo           *string `json:"tipo"`
}

// GET /api/credenciales
//
// Lista sólo las credenciales ACTIVO, con los datos mínimos de la persona
// para imprimir el carnet.
func (h *Handler) GetCredenciales(c *gin.Context) {
	var lista []credencialConPersona
	err := h.DB.Model(&personas.Credencial{}).
		Select("credenciales.*, personas.nombre_apellido, personas.dni, personas.tipo").
		Joins("JOIN personas ON personas.id_persona = credenciales.id_persona").
		Where("credenciales.estado = ?", personas.LicenciaActiva).
		Order("credenciales.id_credencial ASC").
		Scan(&lista).Error
	if err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/credenciales/:id
func (h *Handler) GetCredencial(c *gin.Context) {
	var credencial personas.Credencial
	if err := h.DB.First(&credencial, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Credencial no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, credencial)
}

type credencialUpdate struct {
	FechaAlta        *string `json:"fechaAlta"`
	FechaVencimiento *string `json:"fechaVencimiento"`
	Estado           *string `json:"estado"`
}

// PUT /api/credenciales/:id
func (h *Handler) EditCredencial(c *gin.Context) {
	var credencial personas.Credencial
	if err := h.DB.First(&credencial, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Credencial no encontrada para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input credencialUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Cuerpo de la solicitud inválido."})
		return
	}

	cambios := map[string]any{}
	if input.FechaAlta != nil {
		alta, err := time.Parse("2006-01-02", *input.FechaAlta)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de alta inválido. Use YYYY-MM-DD"})
			return
		}
		cambios["fecha_alta"] = alta
	}
	if input.FechaVencimiento != nil {
		vencimiento, err := time.Parse("2006-01-02", *input.FechaVencimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de vencimiento inválido. Use YYYY-MM-DD"})
			return
		}
		cambios["fecha_vencimiento"] = vencimiento
	}
	if input.Estado != nil {
		if !personas.EstadoLicenciaValido(*input.Estado) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Estado de credencial inválido."})
			return
		}
		cambios["estado"] = *input.Estado
	}

	if err := h.DB.Model(&credencial).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Credencial actualizada exitosamente.", "credencial": credencial})
}

// DELETE /api/credenciales/:id
//
// Baja lógica: la credencial pasa a INACTIVO, el historial no se borra.
func (h *Handler) DeleteCredencial(c *gin.Context) {
	var credencial personas.Credencial
	if err := h.DB.First(&credencial, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Credencial no encontrada para dar de baja."})
			return
		}
		errorBD(c, err)
		return
	}

	if err := h.DB.Model(&credencial).Update("estado", personas.LicenciaInactiva).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Credencial dada de baja exitosamente."})
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[credenciales] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
