package mercadopago

import (
	"strings"
	"testing"

	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
)

func TestPreferenciaRequest(t *testing.T) {
	cobro := &cobros.Cobro{
		IDCobro:  42,
		Concepto: "Afiliación anual",
		Monto:    15000.50,
	}

	req := preferenciaRequest(cobro, "https://fjv.example.com/api/webhook/mercadopago")

	if len(req.Items) != 1 {
		t.Fatalf("items = %d, se esperaba 1", len(req.Items))
	}
	item := req.Items[0]
	if item.ID != "cobro-42" {
		t.Errorf("item ID = %q", item.ID)
	}
	if item.Title != "Afiliación anual" {
		t.Errorf("item Title = %q", item.Title)
	}
	if item.Quantity != 1 {
		t.Errorf("item Quantity = %d", item.Quantity)
	}
	if item.UnitPrice != 15000.50 {
		t.Errorf("item UnitPrice = %v", item.UnitPrice)
	}
	if !strings.HasPrefix(req.ExternalReference, "cobro_42_") {
		t.Errorf("referencia externa = %q, se esperaba prefijo cobro_42_", req.ExternalReference)
	}
	if req.NotificationURL != "https://fjv.example.com/api/webhook/mercadopago" {
		t.Errorf("notification URL = %q", req.NotificationURL)
	}
}

func TestNewClientSinToken(t *testing.T) {
	if _, err := NewClient(""); err != ErrAccessTokenFaltante {
		t.Fatalf("err = %v, se esperaba ErrAccessTokenFaltante", err)
	}
}
