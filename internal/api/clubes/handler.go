package clubes

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/clubes"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB    *gorm.DB
	store bajaStore
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, store: &gormBajaStore{db: db}}
}

// GET /api/clubs
func (h *Handler) GetClubs(c *gin.Context) {
	var lista []clubes.Club
	if err := h.DB.Order("id_club ASC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/clubs/:id
func (h *Handler) GetClub(c *gin.Context) {
	var club clubes.Club
	if err := h.DB.First(&club, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Club no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

type clubInput struct {
	Nombre           string  `json:"nombre" binding:"required"`
	Direccion        string  `json:"direccion" binding:"required"`
	Telefono         *string `json:"telefono"`
	Email            string  `json:"email" binding:"required,email"`
	CUIT             string  `json:"cuit" binding:"required"`
	FechaAfiliacion  string  `json:"fechaAfiliacion"`
	EstadoAfiliacion string  `json:"estadoAfiliacion"`
}

// POST /api/clubs
func (h *Handler) CreateClub(c *gin.Context) {
	var input clubInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre, la dirección, el email y el CUIT del club son obligatorios."})
		return
	}

	afiliacion := time.Now()
	if input.FechaAfiliacion != "" {
		var err error
		if afiliacion, err = time.Parse("2006-01-02", input.FechaAfiliacion); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de afiliación inválido. Use YYYY-MM-DD"})
			return
		}
	}
	estado := input.EstadoAfiliacion
	if estado == "" {
		estado = "Activo"
	}

	club := clubes.Club{
		Nombre:           input.Nombre,
		Direccion:        input.Direccion,
		Telefono:         input.Telefono,
		Email:            input.Email,
		CUIT:             input.CUIT,
		FechaAfiliacion:  afiliacion,
		EstadoAfiliacion: estado,
	}
	if err := h.DB.Create(&club).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "El nombre, email o CUIT ya pertenecen a otro club."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Club guardado exitosamente.", "club": club})
}

type clubUpdate struct {
	Nombre           *string `json:"nombre"`
	Direccion        *string `json:"direccion"`
	Telefono         *string `json:"telefono"`
	Email            *string `json:"email"`
	CUIT             *string `json:"cuit"`
	FechaAfiliacion  *string `json:"fechaAfiliacion"`
	EstadoAfiliacion *string `json:"estadoAfiliacion"`
}

// PUT /api/clubs/:id
func (h *Handler) EditClub(c *gin.Context) {
	var club clubes.Club
	if err := h.DB.First(&club, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Club no encontrado para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input clubUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Cuerpo de la solicitud inválido."})
		return
	}

	cambios := map[string]any{}
	if input.Nombre != nil {
		cambios["nombre"] = *input.Nombre
	}
	if input.Direccion != nil {
		cambios["direccion"] = *input.Direccion
	}
	if input.Telefono != nil {
		cambios["telefono"] = *input.Telefono
	}
	if input.Email != nil {
		cambios["email"] = *input.Email
	}
	if input.CUIT != nil {
		cambios["cuit"] = *input.CUIT
	}
	if input.FechaAfiliacion != nil {
		afiliacion, err := time.Parse("2006-01-02", *input.FechaAfiliacion)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de afiliación inválido. Use YYYY-MM-DD"})
			return
		}
		cambios["fecha_afiliacion"] = afiliacion
	}
	if input.EstadoAfiliacion != nil {
		cambios["estado_afiliacion"] = *input.EstadoAfiliacion
	}

	if err := h.DB.Model(&club).Updates(cambios).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "El nombre, email o CUIT ya pertenecen a otro club."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Club actualizado exitosamente.", "club": club})
}

// DELETE /api/clubs/:id
//
// Se rechaza el borrado mientras el club tenga personas, equipos o cobros
// asociados; no hay borrado en cascada de datos federativos.
func (h *Handler) DeleteClub(c *gin.Context) {
	club, err := h.store.ClubPorID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Club no encontrado para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}

	asociados, err := h.store.AsociadosDeClub(club.IDClub)
	if err != nil {
		errorBD(c, err)
		return
	}
	switch {
	case asociados.Personas > 0:
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede eliminar el club porque tiene personas afiliadas."})
		return
	case asociados.Equipos > 0:
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede eliminar el club porque tiene equipos registrados."})
		return
	case asociados.Cobros > 0:
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede eliminar el club porque tiene cobros asociados."})
		return
	}

	if err := h.store.EliminarClub(club); err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Club eliminado exitosamente."})
}

// GET /api/clubs/filter
func (h *Handler) GetClubFilter(c *gin.Context) {
	q := h.DB.Order("id_club ASC")

	if v := c.Query("nombre"); v != "" {
		q = q.Where("nombre ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("cuit"); v != "" {
		q = q.Where("cuit ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("email"); v != "" {
		q = q.Where("email ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("estadoAfiliacion"); v != "" {
		q = q.Where("estado_afiliacion = ?", v)
	}
	if v := c.Query("fechaAfiliacionDesde"); v != "" {
		q = q.Where("fecha_afiliacion >= ?", v)
	}
	if v := c.Query("fechaAfiliacionHasta"); v != "" {
		q = q.Where("fecha_afiliacion <= ?", v)
	}

	var lista []clubes.Club
	if err := q.Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[clubes] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
