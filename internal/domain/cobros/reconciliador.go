package cobros

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/notificaciones"
)

var (
	ErrCobroNoEncontrado    = errors.New("cobro no encontrado")
	ErrPagoNoEncontrado     = errors.New("pago no encontrado")
	ErrReferenciaInvalida   = errors.New("referencia externa inválida")
	ErrNotificacionInvalida = errors.New("notificación sin id de recurso")
	ErrConsultorNoDisponible = errors.New("pasarela de pagos no configurada")
)

// PagoProveedor es el estado autoritativo de un pago según el proveedor,
// ya traducido al vocabulario local por el adaptador de infraestructura.
type PagoProveedor struct {
	ID                string
	Estado            string // Pagado, Pendiente o Rechazado
	EstadoProveedor   string // estado crudo (approved, rejected, ...)
	Monto             float64
	ExternalReference string
}

// ConsultorPagos consulta el estado autoritativo de un pago en el proveedor.
type ConsultorPagos interface {
	ConsultarPago(ctx context.Context, id string) (*PagoProveedor, error)
}

// ReconciliacionStore abstrae la persistencia del flujo del webhook. La
// implementación gorm aplica pago y cobro dentro de una única transacción y
// resuelve la idempotencia con la clave única (resource_id, topic).
type ReconciliacionStore interface {
	CrearNotificacion(ctx context.Context, n *notificaciones.MercadoPagoNotification) (bool, error)
	GuardarNotificacion(ctx context.Context, n *notificaciones.MercadoPagoNotification) error
	PagoPorPaymentID(ctx context.Context, paymentID string) (*Pago, error)
	CobroPorID(ctx context.Context, id uint) (*Cobro, error)
	AplicarPago(ctx context.Context, pago *Pago, cobro *Cobro) error
}

// Resultado describe el desenlace de una entrega del webhook. El endpoint
// siempre responde 200; este tipo solo alimenta el mensaje y los logs.
type Resultado struct {
	Duplicada bool
	Ignorada  bool
	Mensaje   string
	Pago      *Pago
}

// ParseReferenciaCobro extrae el id de cobro de una referencia externa con
// formato cobro_{id}_{sufijo}.
func ParseReferenciaCobro(ref string) (uint, error) {
	partes := strings.Split(ref, "_")
	if len(partes) < 3 || partes[0] != "cobro" {
		return 0, ErrReferenciaInvalida
	}
	id, err := strconv.ParseUint(partes[1], 10, 32)
	if err != nil || id == 0 {
		return 0, ErrReferenciaInvalida
	}
	return uint(id), nil
}

// Reconciliador procesa notificaciones asincrónicas del proveedor de pagos:
// registra la entrega de forma idempotente, consulta el estado real del pago
// y aplica la transición pago+cobro en una transacción.
type Reconciliador struct {
	store     ReconciliacionStore
	consultor ConsultorPagos
	ahora     func() time.Time
}

func NewReconciliador(store ReconciliacionStore, consultor ConsultorPagos) *Reconciliador {
	return &Reconciliador{store: store, consultor: consultor, ahora: time.Now}
}

// Procesar maneja una entrega del webhook identificada por (resourceID,
// topic). Los errores devueltos son para registro interno: el llamador debe
// responder 200 igualmente.
func (r *Reconciliador) Procesar(ctx context.Context, resourceID, topic string, raw []byte) (*Resultado, error) {
	if resourceID == "" {
		return nil, ErrNotificacionInvalida
	}

	n := &notificaciones.MercadoPagoNotification{
		ResourceID:       resourceID,
		Topic:            topic,
		ProcessingStatus: notificaciones.ProcesoPendiente,
		RawPayload:       payloadJSON(raw),
	}

	creada, err := r.store.CrearNotificacion(ctx, n)
	if err != nil {
		return nil, err
	}
	if !creada {
		// entrega repetida: no se vuelve a ejecutar ningún efecto
		return &Resultado{Duplicada: true, Mensaje: "notificación ya procesada"}, nil
	}

	if topic != "payment" {
		n.ProcessingStatus = notificaciones.ProcesoCompleto
		if err := r.store.GuardarNotificacion(ctx, n); err != nil {
			return nil, err
		}
		return &Resultado{Ignorada: true, Mensaje: fmt.Sprintf("notificación %s registrada sin procesar", topic)}, nil
	}

	if r.consultor == nil {
		return r.fallar(ctx, n, ErrConsultorNoDisponible)
	}

	pp, err := r.consultor.ConsultarPago(ctx, resourceID)
	if err != nil {
		return r.fallar(ctx, n, err)
	}
	n.TransactionID = &pp.ID
	n.PaymentStatus = &pp.EstadoProveedor

	pago, err := r.aplicar(ctx, pp)
	if err != nil {
		return r.fallar(ctx, n, err)
	}

	n.ProcessingStatus = notificaciones.ProcesoCompleto
	if err := r.store.GuardarNotificacion(ctx, n); err != nil {
		return nil, err
	}
	return &Resultado{Pago: pago, Mensaje: "notificación procesada exitosamente"}, nil
}

// aplicar localiza o crea el pago local y, si el proveedor informa un estado
// final exitoso, marca el cobro como pagado. Store garantiza atomicidad.
func (r *Reconciliador) aplicar(ctx context.Context, pp *PagoProveedor) (*Pago, error) {
	pago, err := r.store.PagoPorPaymentID(ctx, pp.ID)
	switch {
	case err == nil:
		if pago.Estado == pp.Estado {
			return pago, nil
		}
		pago.Estado = pp.Estado
		var cobro *Cobro
		if pp.Estado == EstadoPagado {
			cobro, err = r.store.CobroPorID(ctx, pago.IDCobro)
			if err != nil {
				return nil, err
			}
			r.marcarPagado(cobro, pago, pp.ID)
		}
		return pago, r.store.AplicarPago(ctx, pago, cobro)

	case errors.Is(err, ErrPagoNoEncontrado):
		idCobro, err := ParseReferenciaCobro(pp.ExternalReference)
		if err != nil {
			return nil, err
		}
		cobro, err := r.store.CobroPorID(ctx, idCobro)
		if err != nil {
			return nil, err
		}
		monto := pp.Monto
		if monto == 0 {
			monto = cobro.Monto
		}
		pago = &Pago{
			IDCobro:    idCobro,
			PaymentID:  pp.ID,
			Monto:      monto,
			Estado:     pp.Estado,
			MetodoPago: "MercadoPago",
		}
		var cambio *Cobro
		if pp.Estado == EstadoPagado {
			r.marcarPagado(cobro, pago, pp.ID)
			cambio = cobro
		}
		return pago, r.store.AplicarPago(ctx, pago, cambio)

	default:
		return nil, err
	}
}

func (r *Reconciliador) marcarPagado(c *Cobro, p *Pago, paymentID string) {
	ahora := r.ahora()
	p.FechaPago = &ahora

	c.Estado = EstadoPagado
	comprobante := "MP-" + paymentID
	c.ComprobantePago = &comprobante
	obs := fmt.Sprintf("Pagado mediante MercadoPago. ID de pago: %s", paymentID)
	c.Observaciones = &obs
}

func (r *Reconciliador) fallar(ctx context.Context, n *notificaciones.MercadoPagoNotification, causa error) (*Resultado, error) {
	n.ProcessingStatus = notificaciones.ProcesoError
	msg := causa.Error()
	n.ProcessingError = &msg
	if err := r.store.GuardarNotificacion(ctx, n); err != nil {
		return nil, errors.Join(causa, err)
	}
	return &Resultado{Mensaje: "notificación registrada con errores"}, causa
}

// payloadJSON normaliza el cuerpo crudo para la columna jsonb.
func payloadJSON(raw []byte) string {
	if len(raw) == 0 {
		return "{}"
	}
	if json.Valid(raw) {
		return string(raw)
	}
	quoted, _ := json.Marshal(string(raw))
	return string(quoted)
}
