package notificaciones

import "time"

// Estados internos de procesamiento de una notificación.
const (
	ProcesoPendiente = "pending"
	ProcesoCompleto  = "processed"
	ProcesoError     = "error"
)

// MercadoPagoNotification es el registro append-only de cada entrega del
// webhook. La clave única (resource_id, topic) es la que garantiza la
// idempotencia: una entrega repetida no vuelve a ejecutar efectos de negocio.
type MercadoPagoNotification struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ResourceID string `gorm:"size:255;not null;uniqueIndex:idx_notificacion_recurso,priority:1" json:"resource_id"`
	Topic      string `gorm:"size:32;not null;uniqueIndex:idx_notificacion_recurso,priority:2" json:"topic"`

	UserID        *int64     `json:"user_id"`
	ApplicationID *int64     `json:"application_id"`
	APIVersion    *string    `gorm:"size:16" json:"api_version"`
	SentAt        *time.Time `json:"sent_at"`

	ProcessingStatus string  `gorm:"size:16;not null;default:pending" json:"processing_status"`
	ProcessingError  *string `gorm:"type:text" json:"processing_error"`

	RawPayload    string  `gorm:"type:jsonb" json:"raw_payload"`
	TransactionID *string `gorm:"size:64" json:"transaction_id"`
	PaymentStatus *string `gorm:"size:32" json:"payment_status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (MercadoPagoNotification) TableName() string { return "mercadopago_notifications" }
