package personas

import (
	"context"
	"errors"
	"testing"
	"time"
)

// storeMemoria implementa Store sobre mapas para probar el servicio sin base
// de datos. Las escrituras replican lo que hace la implementación gorm.
type storeMemoria struct {
	personas map[uint]*Persona
}

func newStoreMemoria() *storeMemoria {
	return &storeMemoria{personas: map[uint]*Persona{}}
}

func (s *storeMemoria) PersonaConCredenciales(_ context.Context, id uint) (*Persona, error) {
	p, ok := s.personas[id]
	if !ok {
		return nil, ErrPersonaNoEncontrada
	}
	copia := *p
	copia.Credenciales = append([]Credencial(nil), p.Credenciales...)
	return &copia, nil
}

func (s *storeMemoria) ConLicencia(_ context.Context) ([]Persona, error) {
	var lista []Persona
	for _, p := range s.personas {
		if p.FechaLicencia != nil {
			lista = append(lista, *p)
		}
	}
	return lista, nil
}

func (s *storeMemoria) AplicarRenovacion(_ context.Context, p *Persona, c *Credencial) error {
	guardada := *p
	guardada.Credenciales = append([]Credencial(nil), p.Credenciales...)
	if c.IDCredencial == 0 {
		c.IDCredencial = uint(len(guardada.Credenciales)) + 100
	}
	s.personas[p.IDPersona] = &guardada
	return nil
}

func (s *storeMemoria) AplicarEstados(_ context.Context, cambios []CambioEstado) error {
	for _, c := range cambios {
		p, ok := s.personas[c.IDPersona]
		if !ok {
			return errors.New("persona inexistente en el cambio de estado")
		}
		p.EstadoLicencia = c.Estado
		for i := range p.Credenciales {
			p.Credenciales[i].Estado = c.Estado
		}
	}
	return nil
}

func servicioEn(store Store, hoy string) *LicenciaService {
	s := NewLicenciaService(store)
	s.ahora = func() time.Time { return fecha(hoy) }
	return s
}

func TestRenovarCreaCredencialSiNoExiste(t *testing.T) {
	store := newStoreMemoria()
	store.personas[1] = &Persona{IDPersona: 1, NombreApellido: "Juan Pérez", EstadoLicencia: LicenciaInactiva}

	s := servicioEn(store, "2024-03-01")
	p, err := s.Renovar(context.Background(), 1)
	if err != nil {
		t.Fatalf("Renovar: %v", err)
	}

	if p.EstadoLicencia != LicenciaActiva {
		t.Errorf("estado = %s, esperaba %s", p.EstadoLicencia, LicenciaActiva)
	}
	if p.FechaLicenciaBaja == nil || !p.FechaLicenciaBaja.Equal(fecha("2025-03-01")) {
		t.Errorf("fecha de baja incorrecta: %v", p.FechaLicenciaBaja)
	}
	if len(p.Credenciales) != 1 {
		t.Fatalf("credenciales = %d, esperaba 1", len(p.Credenciales))
	}
	if p.Credenciales[0].Identificador != "FJV-1-2024" {
		t.Errorf("identificador = %s", p.Credenciales[0].Identificador)
	}
}

func TestRenovarActualizaCredencialVigente(t *testing.T) {
	store := newStoreMemoria()
	store.personas[2] = &Persona{
		IDPersona:      2,
		EstadoLicencia: LicenciaVencida,
		Credenciales: []Credencial{
			{IDCredencial: 10, Identificador: "FJV-2-2022", FechaAlta: fecha("2022-01-01"), FechaVencimiento: fecha("2023-01-01"), Estado: LicenciaVencida, IDPersona: 2},
			{IDCredencial: 11, Identificador: "FJV-2-2023", FechaAlta: fecha("2023-01-01"), FechaVencimiento: fecha("2024-01-01"), Estado: LicenciaVencida, IDPersona: 2},
		},
	}

	s := servicioEn(store, "2024-06-01")
	p, err := s.Renovar(context.Background(), 2)
	if err != nil {
		t.Fatalf("Renovar: %v", err)
	}

	if len(p.Credenciales) != 2 {
		t.Fatalf("no debe emitir una credencial nueva, hay %d", len(p.Credenciales))
	}
	vigente := p.Credenciales[1]
	if vigente.IDCredencial != 11 {
		t.Fatalf("debe actualizar la credencial más reciente, tocó la %d", vigente.IDCredencial)
	}
	if !vigente.FechaVencimiento.Equal(fecha("2025-06-01")) {
		t.Errorf("vencimiento = %s", vigente.FechaVencimiento.Format("2006-01-02"))
	}
	if vigente.Estado != LicenciaActiva {
		t.Errorf("estado de credencial = %s", vigente.Estado)
	}
	// la histórica queda intacta
	if p.Credenciales[0].Estado != LicenciaVencida {
		t.Errorf("la credencial histórica no debe cambiar")
	}
}

func TestRenovarPersonaInexistente(t *testing.T) {
	s := servicioEn(newStoreMemoria(), "2024-03-01")
	if _, err := s.Renovar(context.Background(), 99); !errors.Is(err, ErrPersonaNoEncontrada) {
		t.Fatalf("err = %v, esperaba ErrPersonaNoEncontrada", err)
	}
}

func TestActualizarEstadosEsIdempotente(t *testing.T) {
	store := newStoreMemoria()
	vencida := fecha("2024-01-01")
	vigente := fecha("2026-01-01")
	alta := fecha("2023-01-01")

	store.personas[1] = &Persona{
		IDPersona: 1, EstadoLicencia: LicenciaActiva,
		FechaLicencia: &alta, FechaLicenciaBaja: &vencida,
		Credenciales: []Credencial{{IDCredencial: 1, Estado: LicenciaActiva, IDPersona: 1}},
	}
	store.personas[2] = &Persona{
		IDPersona: 2, EstadoLicencia: LicenciaActiva,
		FechaLicencia: &alta, FechaLicenciaBaja: &vigente,
	}
	store.personas[3] = &Persona{IDPersona: 3, EstadoLicencia: LicenciaInactiva}

	s := servicioEn(store, "2025-06-15")

	cambiadas, revisadas, err := s.ActualizarEstados(context.Background())
	if err != nil {
		t.Fatalf("ActualizarEstados: %v", err)
	}
	if revisadas != 2 {
		t.Errorf("revisadas = %d, esperaba 2 (la persona sin licencia no cuenta)", revisadas)
	}
	if cambiadas != 1 {
		t.Errorf("cambiadas = %d, esperaba 1", cambiadas)
	}
	if store.personas[1].EstadoLicencia != LicenciaVencida {
		t.Errorf("la licencia vencida debe quedar en %s", LicenciaVencida)
	}
	if store.personas[1].Credenciales[0].Estado != LicenciaVencida {
		t.Errorf("el cambio debe cascadear a la credencial")
	}
	if store.personas[2].EstadoLicencia != LicenciaActiva {
		t.Errorf("la licencia vigente no debe cambiar")
	}

	// segunda pasada: nada que hacer
	cambiadas, _, err = s.ActualizarEstados(context.Background())
	if err != nil {
		t.Fatalf("segunda pasada: %v", err)
	}
	if cambiadas != 0 {
		t.Errorf("la segunda pasada cambió %d licencias, esperaba 0", cambiadas)
	}
}
