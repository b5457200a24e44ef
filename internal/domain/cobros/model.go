package cobros

import (
	"fmt"
	"time"

	"github.com/4lexxe/backend-FJV/internal/domain/clubes"
	"github.com/4lexxe/backend-FJV/internal/domain/equipos"
)

// Estados de un cobro. Un pago usa los mismos valores más Rechazado.
const (
	EstadoPendiente = "Pendiente"
	EstadoPagado    = "Pagado"
	EstadoVencido   = "Vencido"
	EstadoAnulado   = "Anulado"
	EstadoRechazado = "Rechazado"
)

// Cobro es un cargo emitido a un club, opcionalmente asociado a un equipo.
// Pasa a Pagado cuando alguno de sus pagos alcanza un estado final exitoso.
type Cobro struct {
	IDCobro          uint       `gorm:"primaryKey" json:"idCobro"`
	Concepto         string     `gorm:"size:255;not null" json:"concepto"`
	Monto            float64    `gorm:"type:numeric(10,2);not null" json:"monto"`
	FechaCobro       time.Time  `gorm:"type:date;not null" json:"fechaCobro"`
	FechaVencimiento *time.Time `gorm:"type:date" json:"fechaVencimiento"`
	Estado           string     `gorm:"size:20;not null;default:Pendiente" json:"estado"`
	ComprobantePago  *string    `gorm:"size:255" json:"comprobantePago"`
	Observaciones    *string    `gorm:"type:text" json:"observaciones"`
	PreferenceID     *string    `gorm:"size:128" json:"preferenceId"`

	IDClub   uint           `gorm:"not null;index" json:"idClub"`
	Club     *clubes.Club   `gorm:"foreignKey:IDClub" json:"club,omitempty"`
	IDEquipo *uint          `gorm:"index" json:"idEquipo"`
	Equipo   *equipos.Equipo `gorm:"foreignKey:IDEquipo;constraint:OnDelete:SET NULL" json:"equipo,omitempty"`

	Pagos []Pago `gorm:"foreignKey:IDCobro" json:"pagos,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cobro) TableName() string { return "cobros" }

// Pago registra una transacción del proveedor de pagos contra un cobro.
// PaymentID es el identificador externo y es único: la misma notificación
// entregada dos veces no puede duplicar pagos.
type Pago struct {
	IDPago       uint       `gorm:"primaryKey" json:"idPago"`
	IDCobro      uint       `gorm:"not null;index" json:"idCobro"`
	PaymentID    string     `gorm:"size:64;not null;uniqueIndex" json:"paymentId"`
	Monto        float64    `gorm:"type:numeric(10,2);not null" json:"monto"`
	Estado       string     `gorm:"size:20;not null;default:Pendiente" json:"estado"`
	MetodoPago   string     `gorm:"size:50;not null;default:MercadoPago" json:"metodoPago"`
	PreferenceID *string    `gorm:"size:128" json:"preferenceId"`
	FechaPago    *time.Time `json:"fechaPago"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Pago) TableName() string { return "pagos" }

// ReferenciaCobro arma la referencia externa que viaja en la preferencia de
// pago y vuelve en el webhook: cobro_{id}_{timestamp}.
func ReferenciaCobro(idCobro uint) string {
	return fmt.Sprintf("cobro_%d_%d", idCobro, time.Now().Unix())
}
