package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/4lexxe/backend-FJV/internal/domain/cobros"

	"github.com/gin-gonic/gin"
)

type procesadorFake struct {
	resultado *cobros.Resultado
	err       error

	resourceID string
	topic      string
	llamadas   int
}

func (p *procesadorFake) Procesar(_ context.Context, resourceID, topic string, _ []byte) (*cobros.Resultado, error) {
	p.llamadas++
	p.resourceID = resourceID
	p.topic = topic
	return p.resultado, p.err
}

func routerConWebhook(p Procesador, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(p, secret)
	r.POST("/api/webhook/mercadopago", h.Recibir)
	r.GET("/api/webhook/mercadopago", h.Recibir)
	return r
}

func TestRecibirNotificacionNueva(t *testing.T) {
	fake := &procesadorFake{resultado: &cobros.Resultado{Mensaje: "ok"}}
	r := routerConWebhook(fake, "")

	body := `{"type":"payment","data":{"id":"888"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperaba 200", w.Code)
	}
	if fake.resourceID != "888" || fake.topic != "payment" {
		t.Errorf("se procesó (%s, %s), esperaba (888, payment)", fake.resourceID, fake.topic)
	}
}

func TestRecibirFormatoViejo(t *testing.T) {
	fake := &procesadorFake{resultado: &cobros.Resultado{Ignorada: true, Mensaje: "registrada"}}
	r := routerConWebhook(fake, "")

	body := `{"topic":"merchant_order","resource":"https://api.mercadolibre.com/merchant_orders/123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if fake.resourceID != "123" || fake.topic != "merchant_order" {
		t.Errorf("se procesó (%s, %s), esperaba (123, merchant_order)", fake.resourceID, fake.topic)
	}
}

func TestIDDeRecurso(t *testing.T) {
	casos := []struct {
		recurso string
		id      string
	}{
		{"https://api.mercadolibre.com/merchant_orders/123", "123"},
		{"https://api.mercadolibre.com/collections/notifications/456/", "456"},
		{"/merchant_orders/789", "789"},
		{"321", "321"},
		{"", ""},
	}
	for _, caso := range casos {
		if got := idDeRecurso(caso.recurso); got != caso.id {
			t.Errorf("idDeRecurso(%q) = %q, se esperaba %q", caso.recurso, got, caso.id)
		}
	}
}

func TestRecibirPorQuery(t *testing.T) {
	fake := &procesadorFake{resultado: &cobros.Resultado{Mensaje: "ok"}}
	r := routerConWebhook(fake, "")

	req := httptest.NewRequest(http.MethodGet, "/api/webhook/mercadopago?id=777&topic=payment", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if fake.resourceID != "777" || fake.topic != "payment" {
		t.Errorf("se procesó (%s, %s)", fake.resourceID, fake.topic)
	}
}

func TestRecibirSinFirmaConSecretoConfigurado(t *testing.T) {
	fake := &procesadorFake{resultado: &cobros.Resultado{}}
	r := routerConWebhook(fake, "secreto")

	body := `{"type":"payment","data":{"id":"888"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, esperaba 401", w.Code)
	}
	if fake.llamadas != 0 {
		t.Error("una firma ausente no debe llegar al reconciliador")
	}
}

func TestRecibirConFirmaValida(t *testing.T) {
	fake := &procesadorFake{resultado: &cobros.Resultado{Mensaje: "ok"}}
	r := routerConWebhook(fake, "secreto")

	v1 := firmar("secreto", "req-1", "1718000000", "payment", "888")
	body := `{"type":"payment","data":{"id":"888"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(body))
	req.Header.Set("x-request-id", "req-1")
	req.Header.Set("x-signature", "ts=1718000000,v1="+v1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, esperaba 200", w.Code)
	}
	if fake.llamadas != 1 {
		t.Errorf("llamadas al reconciliador = %d", fake.llamadas)
	}
}

func TestRecibirErrorDeNegocioRespondeOK(t *testing.T) {
	fake := &procesadorFake{err: cobros.ErrReferenciaInvalida}
	r := routerConWebhook(fake, "")

	body := `{"type":"payment","data":{"id":"888"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// MercadoPago reintenta ante cualquier código distinto de 200
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, un error de negocio debe responder 200", w.Code)
	}
}

func TestRecibirSinRecurso(t *testing.T) {
	fake := &procesadorFake{resultado: &cobros.Resultado{}}
	r := routerConWebhook(fake, "")

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/mercadopago", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if fake.llamadas != 0 {
		t.Error("sin id de recurso no hay nada que reconciliar")
	}
}
