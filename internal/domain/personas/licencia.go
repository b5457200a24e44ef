package personas

import (
	"fmt"
	"time"
)

// Estados posibles de una licencia y su credencial.
const (
	LicenciaActiva     = "ACTIVO"
	LicenciaInactiva   = "INACTIVO"
	LicenciaSuspendida = "SUSPENDIDO"
	LicenciaVencida    = "VENCIDO"
)

// EstadoLicenciaValido informa si el valor es uno de los estados conocidos.
func EstadoLicenciaValido(estado string) bool {
	switch estado {
	case LicenciaActiva, LicenciaInactiva, LicenciaSuspendida, LicenciaVencida:
		return true
	}
	return false
}

// SoloFecha descarta la hora: las licencias se comparan a nivel de día.
func SoloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// VentanaLicencia calcula el período de vigencia de una licencia emitida en
// la fecha dada: exactamente un año calendario.
func VentanaLicencia(desde time.Time) (alta, baja time.Time) {
	alta = SoloFecha(desde)
	baja = alta.AddDate(1, 0, 0)
	return alta, baja
}

// EstadoPorVencimiento deriva el estado de licencia comparando la fecha de
// baja contra el día actual. Una licencia que vence hoy sigue activa.
func EstadoPorVencimiento(vencimiento, hoy time.Time) string {
	if SoloFecha(vencimiento).Before(SoloFecha(hoy)) {
		return LicenciaVencida
	}
	return LicenciaActiva
}

// IdentificadorCredencial arma el identificador único de una credencial con
// el formato FJV-{idPersona}-{año de alta}.
func IdentificadorCredencial(idPersona uint, alta time.Time) string {
	return fmt.Sprintf("FJV-%d-%d", idPersona, alta.Year())
}

// EmitirCredencial construye la credencial que corresponde a una licencia
// emitida en `alta`. No persiste nada.
func EmitirCredencial(idPersona uint, alta, baja, hoy time.Time) Credencial {
	return Credencial{
		Identificador:    IdentificadorCredencial(idPersona, alta),
		FechaAlta:        SoloFecha(alta),
		FechaVencimiento: SoloFecha(baja),
		Estado:           EstadoPorVencimiento(baja, hoy),
		IDPersona:        idPersona,
	}
}
