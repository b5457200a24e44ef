package personas

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
	"github.com/4lexxe/backend-FJV/internal/domain/personas"
	"github.com/4lexxe/backend-FJV/internal/infra/imgbb"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB        *gorm.DB
	Licencias *personas.LicenciaService
	Imagenes  *imgbb.Client
}

func NewHandler(db *gorm.DB, licencias *personas.LicenciaService, imagenes *imgbb.Client) *Handler {
	return &Handler{DB: db, Licencias: licencias, Imagenes: imagenes}
}

func (h *Handler) conRelaciones() *gorm.DB {
	return h.DB.
		Preload("Club").
		Preload("Credenciales", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_alta ASC, id_credencial ASC")
		})
}

// GET /api/personas
func (h *Handler) GetPersonas(c *gin.Context) {
	var lista []personas.Persona
	if err := h.conRelaciones().Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/personas/:id
func (h *Handler) GetPersona(c *gin.Context) {
	var persona personas.Persona
	if err := h.conRelaciones().First(&persona, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, persona)
}

type personaInput struct {
	NombreApellido  string  `json:"nombreApellido" binding:"required"`
	DNI             string  `json:"dni" binding:"required"`
	FechaNacimiento string  `json:"fechaNacimiento" binding:"required"`
	Tipo            *string `json:"tipo"`
	Categoria       *string `json:"categoria"`
	CategoriaNivel  *int    `json:"categoriaNivel"`
	Licencia        *string `json:"licencia"`
	FechaLicencia   string  `json:"fechaLicencia"`
	IDClub          *uint   `json:"idClub"`
}

// POST /api/personas
//
// Crea la persona y su credencial en una única transacción: la licencia
// arranca en fechaLicencia (o hoy) y vence al año.
func (h *Handler) CreatePersona(c *gin.Context) {
	var input personaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El nombre y apellido, DNI y fecha de nacimiento son obligatorios"})
		return
	}

	nacimiento, err := parseFecha(input.FechaNacimiento)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de nacimiento inválido. Use YYYY-MM-DD"})
		return
	}

	desde := time.Now()
	if input.FechaLicencia != "" {
		if desde, err = parseFecha(input.FechaLicencia); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de licencia inválido. Use YYYY-MM-DD"})
			return
		}
	}

	if input.IDClub != nil {
		var club clubes.Club
		if err := h.DB.First(&club, *input.IDClub).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El Club indicado no existe."})
			return
		}
	}

	alta, baja := personas.VentanaLicencia(desde)
	persona := personas.Persona{
		NombreApellido:    input.NombreApellido,
		DNI:               input.DNI,
		FechaNacimiento:   nacimiento,
		Tipo:              input.Tipo,
		Categoria:         input.Categoria,
		CategoriaNivel:    input.CategoriaNivel,
		Licencia:          input.Licencia,
		FechaLicencia:     &alta,
		FechaLicenciaBaja: &baja,
		EstadoLicencia:    personas.EstadoPorVencimiento(baja, time.Now()),
		IDClub:            input.IDClub,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&persona).Error; err != nil {
			return err
		}
		credencial := personas.EmitirCredencial(persona.IDPersona, alta, baja, time.Now())
		return tx.Create(&credencial).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "El DNI o la licencia ya están registrados."})
			return
		}
		errorBD(c, err)
		return
	}

	var creada personas.Persona
	if err := h.conRelaciones().First(&creada, persona.IDPersona).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":  "1",
		"msg":     "Persona guardada exitosamente con su credencial.",
		"persona": creada,
	})
}

type personaUpdate struct {
	NombreApellido  *string `json:"nombreApellido"`
	DNI             *string `json:"dni"`
	FechaNacimiento *string `json:"fechaNacimiento"`
	Tipo            *string `json:"tipo"`
	Categoria       *string `json:"categoria"`
	CategoriaNivel  *int    `json:"categoriaNivel"`
	Licencia        *string `json:"licencia"`
	FechaLicencia   *string `json:"fechaLicencia"`
	EstadoLicencia  *string `json:"estadoLicencia"`
	IDClub          *uint   `json:"idClub"`
	QuitarClub      bool    `json:"quitarClub"`
}

// PUT /api/personas/:id
//
// Si viene fechaLicencia se recalcula la ventana y se sincroniza la
// credencial vigente dentro de la misma transacción que el resto de los
// cambios.
func (h *Handler) EditPersona(c *gin.Context) {
	var existente personas.Persona
	if err := h.conRelaciones().First(&existente, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}

	var input personaUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Cuerpo de la solicitud inválido"})
		return
	}

	cambios := map[string]any{}
	if input.NombreApellido != nil {
		cambios["nombre_apellido"] = *input.NombreApellido
	}
	if input.DNI != nil {
		cambios["dni"] = *input.DNI
	}
	if input.FechaNacimiento != nil {
		nacimiento, err := parseFecha(*input.FechaNacimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de nacimiento inválido. Use YYYY-MM-DD"})
			return
		}
		cambios["fecha_nacimiento"] = nacimiento
	}
	if input.Tipo != nil {
		cambios["tipo"] = *input.Tipo
	}
	if input.Categoria != nil {
		cambios["categoria"] = *input.Categoria
	}
	if input.CategoriaNivel != nil {
		cambios["categoria_nivel"] = *input.CategoriaNivel
	}
	if input.Licencia != nil {
		cambios["licencia"] = *input.Licencia
	}
	if input.EstadoLicencia != nil {
		if !personas.EstadoLicenciaValido(*input.EstadoLicencia) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Estado de licencia inválido. Use ACTIVO, INACTIVO, SUSPENDIDO o VENCIDO."})
			return
		}
		cambios["estado_licencia"] = *input.EstadoLicencia
	}
	switch {
	case input.QuitarClub:
		cambios["id_club"] = nil
	case input.IDClub != nil:
		var club clubes.Club
		if err := h.DB.First(&club, *input.IDClub).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El Club indicado no existe."})
			return
		}
		cambios["id_club"] = *input.IDClub
	}

	var sincronizar *time.Time
	if input.FechaLicencia != nil && *input.FechaLicencia != "" {
		desde, err := parseFecha(*input.FechaLicencia)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de licencia inválido. Use YYYY-MM-DD"})
			return
		}
		sincronizar = &desde
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if len(cambios) > 0 {
			if err := tx.Model(&personas.Persona{}).
				Where("id_persona = ?", existente.IDPersona).
				Updates(cambios).Error; err != nil {
				return err
			}
		}
		if sincronizar == nil {
			return nil
		}

		alta, baja := personas.VentanaLicencia(*sincronizar)
		estado := personas.EstadoPorVencimiento(baja, time.Now())
		if err := tx.Model(&personas.Persona{}).
			Where("id_persona = ?", existente.IDPersona).
			Updates(map[string]any{
				"fecha_licencia":      alta,
				"fecha_licencia_baja": baja,
				"estado_licencia":     estado,
			}).Error; err != nil {
			return err
		}

		if n := len(existente.Credenciales); n > 0 {
			vigente := existente.Credenciales[n-1]
			return tx.Model(&personas.Credencial{}).
				Where("id_credencial = ?", vigente.IDCredencial).
				Updates(map[string]any{
					"fecha_alta":        alta,
					"fecha_vencimiento": baja,
					"estado":            estado,
				}).Error
		}
		credencial := personas.EmitirCredencial(existente.IDPersona, alta, baja, time.Now())
		return tx.Create(&credencial).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "0", "msg": "El DNI o la licencia ya están registrados en otra persona."})
			return
		}
		errorBD(c, err)
		return
	}

	var actualizada personas.Persona
	if err := h.conRelaciones().First(&actualizada, existente.IDPersona).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "1",
		"msg":     "Persona actualizada exitosamente con su credencial sincronizada.",
		"persona": actualizada,
	})
}

// DELETE /api/personas/:id
func (h *Handler) DeletePersona(c *gin.Context) {
	var persona personas.Persona
	if err := h.DB.First(&persona, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Persona no encontrada para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}

	if persona.FotoPerfilDeleteURL != nil {
		if err := h.Imagenes.Eliminar(c.Request.Context(), *persona.FotoPerfilDeleteURL); err != nil {
			log.Printf("[personas] no se pudo eliminar la foto del host: %v", err)
		}
	}

	if err := h.DB.Select("Credenciales").Delete(&persona).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "0",
				"msg":    "No se puede eliminar la persona porque está asociada a otros registros.",
			})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Persona eliminada exitosamente."})
}

// GET /api/personas/filtro/buscar
func (h *Handler) GetPersonaFiltro(c *gin.Context) {
	q := h.conRelaciones()

	if v := c.Query("nombreApellido"); v != "" {
		q = q.Where("nombre_apellido ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("dni"); v != "" {
		q = q.Where("dni ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("tipo"); v != "" {
		q = q.Where("tipo ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("categoria"); v != "" {
		q = q.Where("categoria ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("idClub"); v != "" {
		q = q.Where("id_club = ?", v)
	}
	if v := c.Query("estadoLicencia"); v != "" {
		q = q.Where("estado_licencia = ?", v)
	}

	rangos := []struct{ col, desde, hasta string }{
		{"fecha_nacimiento", c.Query("fechaNacimientoDesde"), c.Query("fechaNacimientoHasta")},
		{"fecha_licencia", c.Query("fechaLicenciaDesde"), c.Query("fechaLicenciaHasta")},
		{"fecha_licencia_baja", c.Query("fechaLicenciaBajaDesde"), c.Query("fechaLicenciaBajaHasta")},
	}
	for _, r := range rangos {
		if r.desde != "" {
			q = q.Where(r.col+" >= ?", r.desde)
		}
		if r.hasta != "" {
			q = q.Where(r.col+" <= ?", r.hasta)
		}
	}

	var lista []personas.Persona
	if err := q.Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

func parseFecha(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[personas] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
