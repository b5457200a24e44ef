package mercadopago

import (
	"strings"

	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
)

// EstadoLocal traduce el estado de un pago de MercadoPago al vocabulario de
// cobros. Cualquier estado intermedio o desconocido queda como Pendiente.
func EstadoLocal(s string) string {
	switch strings.TrimSpace(s) {
	case "approved":
		return cobros.EstadoPagado
	case "rejected", "cancelled":
		return cobros.EstadoRechazado
	case "refunded", "charged_back":
		return cobros.EstadoAnulado
	default:
		// pending, in_process, in_mediation, authorized
		return cobros.EstadoPendiente
	}
}
