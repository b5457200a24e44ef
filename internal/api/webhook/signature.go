package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFirmaAusente  = errors.New("falta el header x-signature")
	ErrFirmaInvalida = errors.New("la firma del webhook no coincide")
)

// VerificarFirma valida el header x-signature de MercadoPago
// ("ts=...,v1=..."): HMAC-SHA256 del manifiesto id;ts;topic;resource con el
// secreto del webhook. Si el secreto está configurado, una firma ausente o
// inválida rechaza la notificación.
func VerificarFirma(secreto, header, requestID, topic, resourceID string) error {
	if header == "" {
		return ErrFirmaAusente
	}

	var ts, v1 string
	for _, parte := range strings.Split(header, ",") {
		clave, valor, ok := strings.Cut(strings.TrimSpace(parte), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(clave) {
		case "ts":
			ts = strings.TrimSpace(valor)
		case "v1":
			v1 = strings.TrimSpace(valor)
		}
	}
	if ts == "" || v1 == "" {
		return ErrFirmaInvalida
	}

	manifiesto := fmt.Sprintf("%s;%s;%s;%s", requestID, ts, topic, resourceID)
	mac := hmac.New(sha256.New, []byte(secreto))
	mac.Write([]byte(manifiesto))
	esperada := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(esperada), []byte(v1)) {
		return ErrFirmaInvalida
	}
	return nil
}
