package mercadopago

import (
	"testing"

	"github.com/4lexxe/backend-FJV/internal/domain/cobros"
)

func TestEstadoLocal(t *testing.T) {
	casos := []struct {
		proveedor string
		esperado  string
	}{
		{"approved", cobros.EstadoPagado},
		{"rejected", cobros.EstadoRechazado},
		{"cancelled", cobros.EstadoRechazado},
		{"refunded", cobros.EstadoAnulado},
		{"charged_back", cobros.EstadoAnulado},
		{"pending", cobros.EstadoPendiente},
		{"in_process", cobros.EstadoPendiente},
		{"in_mediation", cobros.EstadoPendiente},
		{"authorized", cobros.EstadoPendiente},
		{"", cobros.EstadoPendiente},
		{"algo_nuevo", cobros.EstadoPendiente},
		{" approved ", cobros.EstadoPagado},
	}
	for _, c := range casos {
		if got := EstadoLocal(c.proveedor); got != c.esperado {
			t.Errorf("EstadoLocal(%q) = %s, esperaba %s", c.proveedor, got, c.esperado)
		}
	}
}
