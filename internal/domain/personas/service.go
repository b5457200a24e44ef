package personas

import (
	"context"
	"errors"
	"time"
)

var ErrPersonaNoEncontrada = errors.New("persona no encontrada")

// CambioEstado es una transición de estado de licencia detectada por el
// barrido masivo, pendiente de persistir.
type CambioEstado struct {
	IDPersona uint
	Estado    string
}

// Store abstrae la persistencia del ciclo de vida de licencias. La
// implementación gorm garantiza que cada operación de escritura corre dentro
// de una única transacción.
type Store interface {
	PersonaConCredenciales(ctx context.Context, id uint) (*Persona, error)
	ConLicencia(ctx context.Context) ([]Persona, error)
	AplicarRenovacion(ctx context.Context, p *Persona, c *Credencial) error
	AplicarEstados(ctx context.Context, cambios []CambioEstado) error
}

// LicenciaService implementa la renovación individual y el barrido masivo de
// estados de licencia, manteniendo persona y credencial en sincronía.
type LicenciaService struct {
	store Store
	ahora func() time.Time
}

func NewLicenciaService(store Store) *LicenciaService {
	return &LicenciaService{store: store, ahora: time.Now}
}

// Renovar extiende la licencia de una persona por un año desde hoy y
// sincroniza su credencial vigente, creándola si no existe. Todo o nada.
func (s *LicenciaService) Renovar(ctx context.Context, idPersona uint) (*Persona, error) {
	return s.Sincronizar(ctx, idPersona, s.ahora())
}

// Sincronizar fija la licencia de una persona a partir de la fecha dada y
// refleja el mismo período en su credencial más reciente.
func (s *LicenciaService) Sincronizar(ctx context.Context, idPersona uint, desde time.Time) (*Persona, error) {
	p, err := s.store.PersonaConCredenciales(ctx, idPersona)
	if err != nil {
		return nil, err
	}

	alta, baja := VentanaLicencia(desde)
	estado := EstadoPorVencimiento(baja, s.ahora())

	p.FechaLicencia = &alta
	p.FechaLicenciaBaja = &baja
	p.EstadoLicencia = estado

	var cred *Credencial
	if n := len(p.Credenciales); n > 0 {
		// la credencial vigente es la de alta más reciente
		cred = &p.Credenciales[n-1]
		cred.FechaAlta = alta
		cred.FechaVencimiento = baja
		cred.Estado = estado
	} else {
		nueva := EmitirCredencial(p.IDPersona, alta, baja, s.ahora())
		p.Credenciales = append(p.Credenciales, nueva)
		cred = &p.Credenciales[len(p.Credenciales)-1]
	}

	if err := s.store.AplicarRenovacion(ctx, p, cred); err != nil {
		return nil, err
	}
	return p, nil
}

// ActualizarEstados recorre todas las personas con licencia y recalcula su
// estado contra la fecha actual, cascadeando el cambio a sus credenciales.
// Devuelve cuántas licencias cambiaron y cuántas se revisaron; correrlo dos
// veces seguidas deja la segunda pasada sin cambios.
func (s *LicenciaService) ActualizarEstados(ctx context.Context) (cambiadas, revisadas int, err error) {
	lista, err := s.store.ConLicencia(ctx)
	if err != nil {
		return 0, 0, err
	}

	hoy := s.ahora()
	var cambios []CambioEstado
	for _, p := range lista {
		if p.FechaLicenciaBaja == nil {
			continue
		}
		nuevo := EstadoPorVencimiento(*p.FechaLicenciaBaja, hoy)
		if p.EstadoLicencia != nuevo {
			cambios = append(cambios, CambioEstado{IDPersona: p.IDPersona, Estado: nuevo})
		}
	}

	if len(cambios) > 0 {
		if err := s.store.AplicarEstados(ctx, cambios); err != nil {
			return 0, len(lista), err
		}
	}
	return len(cambios), len(lista), nil
}
