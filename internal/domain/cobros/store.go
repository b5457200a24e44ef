package cobros

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/4lexxe/backend-FJV/internal/domain/notificaciones"
)

// GormStore es la implementación postgres del ReconciliacionStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CrearNotificacion inserta el registro de la entrega. Devuelve false sin
// error cuando la clave (resource_id, topic) ya existe: la notificación es
// un duplicado y no debe reprocesarse.
func (s *GormStore) CrearNotificacion(ctx context.Context, n *notificaciones.MercadoPagoNotification) (bool, error) {
	err := s.db.WithContext(ctx).Create(n).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *GormStore) GuardarNotificacion(ctx context.Context, n *notificaciones.MercadoPagoNotification) error {
	return s.db.WithContext(ctx).Save(n).Error
}

func (s *GormStore) PagoPorPaymentID(ctx context.Context, paymentID string) (*Pago, error) {
	var p Pago
	err := s.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPagoNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) CobroPorID(ctx context.Context, id uint) (*Cobro, error) {
	var c Cobro
	err := s.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCobroNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AplicarPago persiste el pago y, si corresponde, la transición del cobro a
// Pagado. Ambas escrituras van en la misma transacción para que ningún lector
// vea un pago acreditado con su cobro todavía pendiente.
func (s *GormStore) AplicarPago(ctx context.Context, pago *Pago, cobro *Cobro) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(pago).Error; err != nil {
			return err
		}
		if cobro == nil {
			return nil
		}
		return tx.Model(&Cobro{}).
			Where("id_cobro = ?", cobro.IDCobro).
			Updates(map[string]any{
				"estado":           cobro.Estado,
				"comprobante_pago": cobro.ComprobantePago,
				"observaciones":    cobro.Observaciones,
			}).Error
	})
}
