package cobros

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/notificaciones"
)

type storeMemoria struct {
	notificaciones map[string]*notificaciones.MercadoPagoNotification
	pagos          map[string]*Pago
	cobros         map[uint]*Cobro
	aplicados      int
}

func newStoreMemoria() *storeMemoria {
	return &storeMemoria{
		notificaciones: map[string]*notificaciones.MercadoPagoNotification{},
		pagos:          map[string]*Pago{},
		cobros:         map[uint]*Cobro{},
	}
}

func claveNotificacion(resourceID, topic string) string { return resourceID + "|" + topic }

func (s *storeMemoria) CrearNotificacion(_ context.Context, n *notificaciones.MercadoPagoNotification) (bool, error) {
	clave := claveNotificacion(n.ResourceID, n.Topic)
	if _, ok := s.notificaciones[clave]; ok {
		return false, nil
	}
	s.notificaciones[clave] = n
	return true, nil
}

func (s *storeMemoria) GuardarNotificacion(_ context.Context, n *notificaciones.MercadoPagoNotification) error {
	s.notificaciones[claveNotificacion(n.ResourceID, n.Topic)] = n
	return nil
}

func (s *storeMemoria) PagoPorPaymentID(_ context.Context, paymentID string) (*Pago, error) {
	p, ok := s.pagos[paymentID]
	if !ok {
		return nil, ErrPagoNoEncontrado
	}
	copia := *p
	return &copia, nil
}

func (s *storeMemoria) CobroPorID(_ context.Context, id uint) (*Cobro, error) {
	c, ok := s.cobros[id]
	if !ok {
		return nil, ErrCobroNoEncontrado
	}
	copia := *c
	return &copia, nil
}

func (s *storeMemoria) AplicarPago(_ context.Context, pago *Pago, cobro *Cobro) error {
	s.aplicados++
	guardado := *pago
	s.pagos[pago.PaymentID] = &guardado
	if cobro != nil {
		copia := *cobro
		s.cobros[cobro.IDCobro] = &copia
	}
	return nil
}

type consultorFijo struct {
	pago *PagoProveedor
	err  error
}

func (c *consultorFijo) ConsultarPago(context.Context, string) (*PagoProveedor, error) {
	return c.pago, c.err
}

func reconciliadorEn(store ReconciliacionStore, consultor ConsultorPagos) *Reconciliador {
	r := NewReconciliador(store, consultor)
	r.ahora = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestProcesarPagoAprobado(t *testing.T) {
	store := newStoreMemoria()
	store.cobros[5] = &Cobro{IDCobro: 5, Concepto: "Afiliación anual", Monto: 15000, Estado: EstadoPendiente, IDClub: 1}

	consultor := &consultorFijo{pago: &PagoProveedor{
		ID:                "888",
		Estado:            EstadoPagado,
		EstadoProveedor:   "approved",
		Monto:             15000,
		ExternalReference: "cobro_5_1718000000",
	}}

	r := reconciliadorEn(store, consultor)
	resultado, err := r.Procesar(context.Background(), "888", "payment", []byte(`{"type":"payment","data":{"id":"888"}}`))
	if err != nil {
		t.Fatalf("Procesar: %v", err)
	}
	if resultado.Duplicada || resultado.Ignorada {
		t.Fatalf("resultado inesperado: %+v", resultado)
	}

	pago := store.pagos["888"]
	if pago == nil {
		t.Fatal("no se registró el pago")
	}
	if pago.IDCobro != 5 || pago.Estado != EstadoPagado || pago.Monto != 15000 {
		t.Errorf("pago mal registrado: %+v", pago)
	}
	if pago.FechaPago == nil {
		t.Error("el pago aprobado debe tener fecha")
	}

	cobro := store.cobros[5]
	if cobro.Estado != EstadoPagado {
		t.Errorf("estado del cobro = %s, esperaba %s", cobro.Estado, EstadoPagado)
	}
	if cobro.ComprobantePago == nil || *cobro.ComprobantePago != "MP-888" {
		t.Errorf("comprobante = %v, esperaba MP-888", cobro.ComprobantePago)
	}

	n := store.notificaciones[claveNotificacion("888", "payment")]
	if n == nil || n.ProcessingStatus != notificaciones.ProcesoCompleto {
		t.Errorf("la notificación debe quedar procesada: %+v", n)
	}
	if n.PaymentStatus == nil || *n.PaymentStatus != "approved" {
		t.Errorf("debe guardarse el estado crudo del proveedor")
	}
}

func TestProcesarEntregaDuplicada(t *testing.T) {
	store := newStoreMemoria()
	store.cobros[5] = &Cobro{IDCobro: 5, Monto: 15000, Estado: EstadoPendiente, IDClub: 1}
	consultor := &consultorFijo{pago: &PagoProveedor{
		ID: "888", Estado: EstadoPagado, EstadoProveedor: "approved",
		Monto: 15000, ExternalReference: "cobro_5_1718000000",
	}}

	r := reconciliadorEn(store, consultor)
	if _, err := r.Procesar(context.Background(), "888", "payment", nil); err != nil {
		t.Fatalf("primera entrega: %v", err)
	}
	aplicados := store.aplicados

	resultado, err := r.Procesar(context.Background(), "888", "payment", nil)
	if err != nil {
		t.Fatalf("entrega repetida: %v", err)
	}
	if !resultado.Duplicada {
		t.Error("la entrega repetida debe marcarse como duplicada")
	}
	if store.aplicados != aplicados {
		t.Error("la entrega repetida no debe volver a aplicar efectos")
	}
}

func TestProcesarTopicNoPago(t *testing.T) {
	store := newStoreMemoria()
	r := reconciliadorEn(store, &consultorFijo{err: errors.New("no debe consultarse")})

	resultado, err := r.Procesar(context.Background(), "merchant-1", "merchant_order", nil)
	if err != nil {
		t.Fatalf("Procesar: %v", err)
	}
	if !resultado.Ignorada {
		t.Error("un topic distinto de payment se registra sin procesar")
	}
	n := store.notificaciones[claveNotificacion("merchant-1", "merchant_order")]
	if n == nil || n.ProcessingStatus != notificaciones.ProcesoCompleto {
		t.Errorf("la notificación igual debe quedar registrada: %+v", n)
	}
}

func TestProcesarReferenciaInvalida(t *testing.T) {
	store := newStoreMemoria()
	consultor := &consultorFijo{pago: &PagoProveedor{
		ID: "777", Estado: EstadoPagado, EstadoProveedor: "approved",
		Monto: 100, ExternalReference: "otra_cosa",
	}}

	r := reconciliadorEn(store, consultor)
	_, err := r.Procesar(context.Background(), "777", "payment", nil)
	if !errors.Is(err, ErrReferenciaInvalida) {
		t.Fatalf("err = %v, esperaba ErrReferenciaInvalida", err)
	}

	n := store.notificaciones[claveNotificacion("777", "payment")]
	if n == nil || n.ProcessingStatus != notificaciones.ProcesoError {
		t.Errorf("el error debe quedar registrado en la notificación: %+v", n)
	}
	if n.ProcessingError == nil {
		t.Error("falta el detalle del error")
	}
}

func TestProcesarActualizaPagoExistente(t *testing.T) {
	store := newStoreMemoria()
	store.cobros[9] = &Cobro{IDCobro: 9, Monto: 5000, Estado: EstadoPendiente, IDClub: 1}
	store.pagos["999"] = &Pago{IDPago: 1, IDCobro: 9, PaymentID: "999", Monto: 5000, Estado: EstadoPendiente}

	consultor := &consultorFijo{pago: &PagoProveedor{
		ID: "999", Estado: EstadoPagado, EstadoProveedor: "approved",
		Monto: 5000, ExternalReference: "cobro_9_1718000000",
	}}

	r := reconciliadorEn(store, consultor)
	if _, err := r.Procesar(context.Background(), "999", "payment", nil); err != nil {
		t.Fatalf("Procesar: %v", err)
	}

	if store.pagos["999"].Estado != EstadoPagado {
		t.Errorf("el pago existente debe pasar a %s", EstadoPagado)
	}
	if store.cobros[9].Estado != EstadoPagado {
		t.Errorf("el cobro debe quedar pagado")
	}
}

func TestProcesarMontoCeroUsaElDelCobro(t *testing.T) {
	store := newStoreMemoria()
	store.cobros[3] = &Cobro{IDCobro: 3, Monto: 2500, Estado: EstadoPendiente, IDClub: 1}
	consultor := &consultorFijo{pago: &PagoProveedor{
		ID: "555", Estado: EstadoPendiente, EstadoProveedor: "in_process",
		Monto: 0, ExternalReference: "cobro_3_1718000000",
	}}

	r := reconciliadorEn(store, consultor)
	if _, err := r.Procesar(context.Background(), "555", "payment", nil); err != nil {
		t.Fatalf("Procesar: %v", err)
	}
	if store.pagos["555"].Monto != 2500 {
		t.Errorf("monto = %v, debe tomarse del cobro", store.pagos["555"].Monto)
	}
	if store.cobros[3].Estado != EstadoPendiente {
		t.Errorf("un pago pendiente no debe marcar el cobro como pagado")
	}
}

func TestProcesarSinConsultor(t *testing.T) {
	store := newStoreMemoria()
	r := reconciliadorEn(store, nil)

	_, err := r.Procesar(context.Background(), "123", "payment", nil)
	if !errors.Is(err, ErrConsultorNoDisponible) {
		t.Fatalf("err = %v, esperaba ErrConsultorNoDisponible", err)
	}
	n := store.notificaciones[claveNotificacion("123", "payment")]
	if n == nil || n.ProcessingStatus != notificaciones.ProcesoError {
		t.Errorf("la notificación debe registrarse con error: %+v", n)
	}
}

func TestParseReferenciaCobro(t *testing.T) {
	casos := []struct {
		ref string
		id  uint
		ok  bool
	}{
		{"cobro_12_1718000000", 12, true},
		{"cobro_1_abc", 1, true}, // el sufijo no se valida
		{"cobro_0_1718000000", 0, false},
		{"cobro_12", 0, false},
		{"pago_12_1718000000", 0, false},
		{"", 0, false},
	}
	for _, c := range casos {
		id, err := ParseReferenciaCobro(c.ref)
		if c.ok && (err != nil || id != c.id) {
			t.Errorf("ParseReferenciaCobro(%q) = (%d, %v), esperaba %d", c.ref, id, err, c.id)
		}
		if !c.ok && err == nil {
			t.Errorf("ParseReferenciaCobro(%q) debía fallar", c.ref)
		}
	}
}
