package mercadopago

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
)

var ErrAccessTokenFaltante = errors.New("MP_ACCESS_TOKEN no configurado")

// Preferencia es el resultado de crear un checkout en MercadoPago.
type Preferencia struct {
	ID               string `json:"id"`
	InitPoint        string `json:"initPoint"`
	SandboxInitPoint string `json:"sandboxInitPoint"`
}

// Client envuelve el SDK oficial de MercadoPago con timeouts acotados: un
// proveedor lento no puede retener un handler indefinidamente.
type Client struct {
	pagos        payment.Client
	preferencias preference.Client
}

func NewClient(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, ErrAccessTokenFaltante
	}

	cfg, err := config.New(accessToken, config.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		return nil, fmt.Errorf("inicializando SDK de MercadoPago: %w", err)
	}

	return &Client{
		pagos:        payment.NewClient(cfg),
		preferencias: preference.NewClient(cfg),
	}, nil
}

// ConsultarPago trae el estado autoritativo de un pago desde la API del
// proveedor y lo traduce al vocabulario local.
func (c *Client) ConsultarPago(ctx context.Context, id string) (*cobros.PagoProveedor, error) {
	pid, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("id de pago inválido: %q", id)
	}

	resp, err := c.pagos.Get(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("consultando pago %s: %w", id, err)
	}

	return &cobros.PagoProveedor{
		ID:                strconv.Itoa(resp.ID),
		Estado:            EstadoLocal(resp.Status),
		EstadoProveedor:   resp.Status,
		Monto:             resp.TransactionAmount,
		ExternalReference: resp.ExternalReference,
	}, nil
}

// preferenciaRequest arma la preferencia de checkout de un cobro. La
// referencia externa cobro_{id}_{ts} es la que después permite reconciliar
// el webhook.
func preferenciaRequest(cobro *cobros.Cobro, notificationURL string) preference.Request {
	return preference.Request{
		Items: []preference.ItemRequest{{
			ID:        fmt.Sprintf("cobro-%d", cobro.IDCobro),
			Title:     cobro.Concepto,
			Quantity:  1,
			UnitPrice: cobro.Monto,
		}},
		ExternalReference: cobros.ReferenciaCobro(cobro.IDCobro),
		NotificationURL:   notificationURL,
	}
}

// CrearPreferencia genera el link de pago de un cobro.
func (c *Client) CrearPreferencia(ctx context.Context, cobro *cobros.Cobro, notificationURL string) (*Preferencia, error) {
	resp, err := c.preferencias.Create(ctx, preferenciaRequest(cobro, notificationURL))
	if err != nil {
		return nil, fmt.Errorf("creando preferencia para cobro %d: %w", cobro.IDCobro, err)
	}
	log.Printf("[mercadopago] preferencia %s creada para cobro %d", resp.ID, cobro.IDCobro)

	return &Preferencia{
		ID:               resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
	}, nil
}
