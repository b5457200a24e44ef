package cobros

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/4lexxe/backend-FJV/config"
	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
	"github.com/4lexxe/backend-FJV/internal/domain/equipos"
	"github.com/4lexxe/backend-FJV/internal/infra/mercadopago"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
	MP *mercadopago.Client
}

func NewHandler(db *gorm.DB, mp *mercadopago.Client) *Handler {
	return &Handler{DB: db, MP: mp}
}

func (h *Handler) conRelaciones() *gorm.DB {
	return h.DB.Preload("Club").Preload("Equipo")
}

// GET /api/cobros
func (h *Handler) GetCobros(c *gin.Context) {
	var lista []cobros.Cobro
	if err := h.conRelaciones().Order("id_cobro DESC").Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/cobros/:id
func (h *Handler) GetCobro(c *gin.Context) {
	var cobro cobros.Cobro
	if err := h.conRelaciones().Preload("Pagos").First(&cobro, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Cobro no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, cobro)
}

type cobroInput struct {
	Concepto         string  `json:"concepto" binding:"required"`
	Monto            float64 `json:"monto" binding:"required,gt=0"`
	FechaCobro       string  `json:"fechaCobro"`
	FechaVencimiento *string `json:"fechaVencimiento"`
	Observaciones    *string `json:"observaciones"`
	IDClub           uint    `json:"idClub" binding:"required"`
	IDEquipo         *uint   `json:"idEquipo"`
}

// validarRelaciones chequea que el club exista y que el equipo, si viene,
// pertenezca a ese club.
func (h *Handler) validarRelaciones(c *gin.Context, idClub uint, idEquipo *uint) bool {
	var club clubes.Club
	if err := h.DB.First(&club, idClub).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El Club indicado no existe."})
		return false
	}
	if idEquipo != nil {
		var equipo equipos.Equipo
		if err := h.DB.First(&equipo, *idEquipo).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El Equipo indicado no existe."})
			return false
		}
		if equipo.IDClub != idClub {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El Equipo indicado no pertenece al Club del cobro."})
			return false
		}
	}
	return true
}

// POST /api/cobros
func (h *Handler) CreateCobro(c *gin.Context) {
	var input cobroInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El concepto, un monto mayor a cero y el club son obligatorios."})
		return
	}
	if !h.validarRelaciones(c, input.IDClub, input.IDEquipo) {
		return
	}

	fechaCobro := time.Now()
	if input.FechaCobro != "" {
		var err error
		if fechaCobro, err = time.Parse("2006-01-02", input.FechaCobro); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de cobro inválido. Use YYYY-MM-DD"})
			return
		}
	}
	var vencimiento *time.Time
	if input.FechaVencimiento != nil && *input.FechaVencimiento != "" {
		v, err := time.Parse("2006-01-02", *input.FechaVencimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de vencimiento inválido. Use YYYY-MM-DD"})
			return
		}
		vencimiento = &v
	}

	cobro := cobros.Cobro{
		Concepto:         input.Concepto,
		Monto:            input.Monto,
		FechaCobro:       fechaCobro,
		FechaVencimiento: vencimiento,
		Estado:           cobros.EstadoPendiente,
		Observaciones:    input.Observaciones,
		IDClub:           input.IDClub,
		IDEquipo:         input.IDEquipo,
	}
	if err := h.DB.Create(&cobro).Error; err != nil {
		errorBD(c, err)
		return
	}

	h.conRelaciones().First(&cobro, cobro.IDCobro)
	c.JSON(http.StatusCreated, gin.H{"status": "1", "msg": "Cobro guardado exitosamente.", "cobro": cobro})
}

// PUT /api/cobros/:id
func (h *Handler) EditCobro(c *gin.Context) {
	var cobro cobros.Cobro
	if err := h.DB.First(&cobro, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Cobro no encontrado para actualizar."})
			return
		}
		errorBD(c, err)
		return
	}
	if cobro.Estado == cobros.EstadoPagado {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede modificar un cobro que ya está pagado."})
		return
	}

	var input cobroInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El concepto, un monto mayor a cero y el club son obligatorios."})
		return
	}
	if !h.validarRelaciones(c, input.IDClub, input.IDEquipo) {
		return
	}

	cambios := map[string]any{
		"concepto":      input.Concepto,
		"monto":         input.Monto,
		"observaciones": input.Observaciones,
		"id_club":       input.IDClub,
		"id_equipo":     input.IDEquipo,
	}
	if input.FechaCobro != "" {
		fechaCobro, err := time.Parse("2006-01-02", input.FechaCobro)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de cobro inválido. Use YYYY-MM-DD"})
			return
		}
		cambios["fecha_cobro"] = fechaCobro
	}
	if input.FechaVencimiento != nil {
		if *input.FechaVencimiento == "" {
			cambios["fecha_vencimiento"] = nil
		} else {
			vencimiento, err := time.Parse("2006-01-02", *input.FechaVencimiento)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Formato de fecha de vencimiento inválido. Use YYYY-MM-DD"})
				return
			}
			cambios["fecha_vencimiento"] = vencimiento
		}
	}

	if err := h.DB.Model(&cobro).Updates(cambios).Error; err != nil {
		errorBD(c, err)
		return
	}

	h.conRelaciones().First(&cobro, cobro.IDCobro)
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Cobro actualizado exitosamente.", "cobro": cobro})
}

// DELETE /api/cobros/:id
func (h *Handler) DeleteCobro(c *gin.Context) {
	var cobro cobros.Cobro
	if err := h.DB.First(&cobro, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Cobro no encontrado para eliminar."})
			return
		}
		errorBD(c, err)
		return
	}

	var pagos int64
	if err := h.DB.Model(&cobros.Pago{}).Where("id_cobro = ?", cobro.IDCobro).Count(&pagos).Error; err != nil {
		errorBD(c, err)
		return
	}
	if pagos > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "No se puede eliminar el cobro porque tiene pagos registrados."})
		return
	}

	if err := h.DB.Delete(&cobro).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Cobro eliminado exitosamente."})
}

type estadoInput struct {
	Estado string `json:"estado" binding:"required"`
}

// PUT /api/cobros/:id/estado
//
// Cambio manual de estado. Pagado por esta vía queda registrado como cobro
// manual, sin pago del proveedor asociado.
func (h *Handler) CambiarEstado(c *gin.Context) {
	var cobro cobros.Cobro
	if err := h.DB.First(&cobro, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Cobro no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}

	var input estadoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El estado es obligatorio."})
		return
	}
	switch input.Estado {
	case cobros.EstadoPendiente, cobros.EstadoPagado, cobros.EstadoVencido, cobros.EstadoAnulado:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "Estado de cobro inválido. Use Pendiente, Pagado, Vencido o Anulado."})
		return
	}

	if err := h.DB.Model(&cobro).Update("estado", input.Estado).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Estado del cobro actualizado exitosamente.", "cobro": cobro})
}

// GET /api/cobros/club/:idClub
func (h *Handler) GetCobrosPorClub(c *gin.Context) {
	var lista []cobros.Cobro
	if err := h.conRelaciones().
		Where("id_club = ?", c.Param("idClub")).
		Order("id_cobro DESC").
		Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/cobros/equipo/:idEquipo
func (h *Handler) GetCobrosPorEquipo(c *gin.Context) {
	var lista []cobros.Cobro
	if err := h.conRelaciones().
		Where("id_equipo = ?", c.Param("idEquipo")).
		Order("id_cobro DESC").
		Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// GET /api/cobros/filtro/buscar
func (h *Handler) GetCobroFiltro(c *gin.Context) {
	q := h.conRelaciones().Order("id_cobro DESC")

	if v := c.Query("concepto"); v != "" {
		q = q.Where("concepto ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("estado"); v != "" {
		q = q.Where("estado = ?", v)
	}
	if v := c.Query("idClub"); v != "" {
		q = q.Where("id_club = ?", v)
	}
	if v := c.Query("idEquipo"); v != "" {
		q = q.Where("id_equipo = ?", v)
	}
	if v := c.Query("fechaCobroDesde"); v != "" {
		q = q.Where("fecha_cobro >= ?", v)
	}
	if v := c.Query("fechaCobroHasta"); v != "" {
		q = q.Where("fecha_cobro <= ?", v)
	}
	if v := c.Query("montoMinimo"); v != "" {
		q = q.Where("monto >= ?", v)
	}
	if v := c.Query("montoMaximo"); v != "" {
		q = q.Where("monto <= ?", v)
	}

	var lista []cobros.Cobro
	if err := q.Find(&lista).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, lista)
}

// POST /api/cobros/:id/pago-link
//
// Crea la preferencia de checkout en MercadoPago y guarda el preference_id
// para correlacionar la notificación posterior.
func (h *Handler) GenerarLinkPago(c *gin.Context) {
	if h.MP == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "0", "msg": "El proveedor de pagos no está configurado."})
		return
	}

	var cobro cobros.Cobro
	if err := h.DB.First(&cobro, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Cobro no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}
	if cobro.Estado == cobros.EstadoPagado {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El cobro ya está pagado."})
		return
	}
	if cobro.Estado == cobros.EstadoAnulado {
		c.JSON(http.StatusBadRequest, gin.H{"status": "0", "msg": "El cobro está anulado."})
		return
	}

	preferencia, err := h.MP.CrearPreferencia(c.Request.Context(), &cobro, config.MP_NOTIFICATION_URL)
	if err != nil {
		log.Printf("[cobros] error creando preferencia de pago: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "0", "msg": "No se pudo generar el link de pago."})
		return
	}

	if err := h.DB.Model(&cobro).Update("preference_id", preferencia.ID).Error; err != nil {
		errorBD(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "1",
		"msg":         "Link de pago generado exitosamente.",
		"preferencia": preferencia,
	})
}

// GET /api/cobros/:id/pagos
func (h *Handler) GetPagos(c *gin.Context) {
	var cobro cobros.Cobro
	if err := h.DB.First(&cobro, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "0", "msg": "Cobro no encontrado."})
			return
		}
		errorBD(c, err)
		return
	}

	var pagos []cobros.Pago
	if err := h.DB.Where("id_cobro = ?", cobro.IDCobro).Order("id_pago ASC").Find(&pagos).Error; err != nil {
		errorBD(c, err)
		return
	}
	c.JSON(http.StatusOK, pagos)
}

func errorBD(c *gin.Context, err error) {
	log.Printf("[cobros] error de base de datos: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "0", "msg": "Error procesando la operación."})
}
