package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
)

func firmar(secreto, requestID, ts, topic, resourceID string) string {
	mac := hmac.New(sha256.New, []byte(secreto))
	fmt.Fprintf(mac, "%s;%s;%s;%s", requestID, ts, topic, resourceID)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerificarFirmaValida(t *testing.T) {
	v1 := firmar("secreto", "req-1", "1718000000", "payment", "888")
	header := "ts=1718000000,v1=" + v1

	if err := VerificarFirma("secreto", header, "req-1", "payment", "888"); err != nil {
		t.Fatalf("firma válida rechazada: %v", err)
	}
}

func TestVerificarFirmaConEspacios(t *testing.T) {
	v1 := firmar("secreto", "req-1", "1718000000", "payment", "888")
	header := " ts = 1718000000 , v1 = " + v1

	if err := VerificarFirma("secreto", header, "req-1", "payment", "888"); err != nil {
		t.Fatalf("el parser debe tolerar espacios: %v", err)
	}
}

func TestVerificarFirmaAusente(t *testing.T) {
	if err := VerificarFirma("secreto", "", "req-1", "payment", "888"); !errors.Is(err, ErrFirmaAusente) {
		t.Fatalf("err = %v, esperaba ErrFirmaAusente", err)
	}
}

func TestVerificarFirmaInvalida(t *testing.T) {
	casos := []struct {
		nombre string
		header string
	}{
		{"v1 incorrecto", "ts=1718000000,v1=deadbeef"},
		{"sin v1", "ts=1718000000"},
		{"sin ts", "v1=deadbeef"},
		{"basura", "no-es-una-firma"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			if err := VerificarFirma("secreto", c.header, "req-1", "payment", "888"); !errors.Is(err, ErrFirmaInvalida) {
				t.Fatalf("err = %v, esperaba ErrFirmaInvalida", err)
			}
		})
	}
}

func TestVerificarFirmaOtroSecreto(t *testing.T) {
	v1 := firmar("otro-secreto", "req-1", "1718000000", "payment", "888")
	header := "ts=1718000000,v1=" + v1

	if err := VerificarFirma("secreto", header, "req-1", "payment", "888"); !errors.Is(err, ErrFirmaInvalida) {
		t.Fatalf("err = %v, esperaba ErrFirmaInvalida", err)
	}
}
