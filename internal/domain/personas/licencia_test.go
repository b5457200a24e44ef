package personas

import (
	"testing"
	"time"
)

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestVentanaLicencia(t *testing.T) {
	casos := []struct {
		desde string
		alta  string
		baja  string
	}{
		{"2024-03-01", "2024-03-01", "2025-03-01"},
		{"2024-02-29", "2024-02-29", "2025-03-01"}, // año bisiesto
		{"2024-12-31", "2024-12-31", "2025-12-31"},
	}
	for _, c := range casos {
		alta, baja := VentanaLicencia(fecha(c.desde))
		if !alta.Equal(fecha(c.alta)) {
			t.Errorf("VentanaLicencia(%s): alta = %s, esperaba %s", c.desde, alta.Format("2006-01-02"), c.alta)
		}
		if !baja.Equal(fecha(c.baja)) {
			t.Errorf("VentanaLicencia(%s): baja = %s, esperaba %s", c.desde, baja.Format("2006-01-02"), c.baja)
		}
	}
}

func TestVentanaLicenciaDescartaHora(t *testing.T) {
	desde := time.Date(2024, 3, 1, 23, 59, 0, 0, time.FixedZone("ART", -3*3600))
	alta, _ := VentanaLicencia(desde)
	if alta.Hour() != 0 || alta.Minute() != 0 {
		t.Errorf("la fecha de alta debe ser a medianoche, fue %s", alta)
	}
}

func TestEstadoPorVencimiento(t *testing.T) {
	hoy := fecha("2025-06-15")

	casos := []struct {
		nombre      string
		vencimiento string
		esperado    string
	}{
		{"vence en el futuro", "2026-06-15", LicenciaActiva},
		{"vence hoy sigue activa", "2025-06-15", LicenciaActiva},
		{"venció ayer", "2025-06-14", LicenciaVencida},
		{"venció hace un año", "2024-06-15", LicenciaVencida},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			if got := EstadoPorVencimiento(fecha(c.vencimiento), hoy); got != c.esperado {
				t.Errorf("EstadoPorVencimiento(%s) = %s, esperaba %s", c.vencimiento, got, c.esperado)
			}
		})
	}
}

func TestIdentificadorCredencial(t *testing.T) {
	if got := IdentificadorCredencial(42, fecha("2024-03-01")); got != "FJV-42-2024" {
		t.Errorf("identificador = %s, esperaba FJV-42-2024", got)
	}
}

func TestEmitirCredencial(t *testing.T) {
	alta, baja := VentanaLicencia(fecha("2024-03-01"))
	cred := EmitirCredencial(7, alta, baja, fecha("2024-03-01"))

	if cred.Identificador != "FJV-7-2024" {
		t.Errorf("identificador = %s", cred.Identificador)
	}
	if cred.Estado != LicenciaActiva {
		t.Errorf("estado = %s, esperaba %s", cred.Estado, LicenciaActiva)
	}
	if !cred.FechaVencimiento.Equal(fecha("2025-03-01")) {
		t.Errorf("vencimiento = %s", cred.FechaVencimiento.Format("2006-01-02"))
	}
	if cred.IDPersona != 7 {
		t.Errorf("idPersona = %d", cred.IDPersona)
	}
}

func TestEstadoLicenciaValido(t *testing.T) {
	validos := []string{LicenciaActiva, LicenciaInactiva, LicenciaSuspendida, LicenciaVencida}
	for _, estado := range validos {
		if !EstadoLicenciaValido(estado) {
			t.Errorf("EstadoLicenciaValido(%q) = false", estado)
		}
	}

	invalidos := []string{"", "activo", "PAGADO", "HABILITADO", "ACTIVO "}
	for _, estado := range invalidos {
		if EstadoLicenciaValido(estado) {
			t.Errorf("EstadoLicenciaValido(%q) = true", estado)
		}
	}
}
