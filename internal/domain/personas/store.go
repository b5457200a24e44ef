package personas

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// GormStore es la implementación postgres del Store de licencias.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) PersonaConCredenciales(ctx context.Context, id uint) (*Persona, error) {
	var p Persona
	err := s.db.WithContext(ctx).
		Preload("Credenciales", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_alta ASC, id_credencial ASC")
		}).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPersonaNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) ConLicencia(ctx context.Context) ([]Persona, error) {
	var lista []Persona
	err := s.db.WithContext(ctx).
		Where("fecha_licencia IS NOT NULL").
		Find(&lista).Error
	return lista, err
}

func (s *GormStore) AplicarRenovacion(ctx context.Context, p *Persona, c *Credencial) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Persona{}).
			Where("id_persona = ?", p.IDPersona).
			Updates(map[string]any{
				"fecha_licencia":      p.FechaLicencia,
				"fecha_licencia_baja": p.FechaLicenciaBaja,
				"estado_licencia":     p.EstadoLicencia,
			}).Error; err != nil {
			return err
		}

		if c.IDCredencial == 0 {
			return tx.Create(c).Error
		}
		return tx.Model(&Credencial{}).
			Where("id_credencial = ?", c.IDCredencial).
			Updates(map[string]any{
				"fecha_alta":        c.FechaAlta,
				"fecha_vencimiento": c.FechaVencimiento,
				"estado":            c.Estado,
			}).Error
	})
}

func (s *GormStore) AplicarEstados(ctx context.Context, cambios []CambioEstado) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cambio := range cambios {
			if err := tx.Model(&Persona{}).
				Where("id_persona = ?", cambio.IDPersona).
				Update("estado_licencia", cambio.Estado).Error; err != nil {
				return err
			}
			if err := tx.Model(&Credencial{}).
				Where("id_persona = ? AND estado <> ?", cambio.IDPersona, cambio.Estado).
				Update("estado", cambio.Estado).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
