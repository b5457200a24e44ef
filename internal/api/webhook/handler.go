package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/4lexxe/backend-FJV/internal/domain/cobros"

	"github.com/gin-gonic/gin"
)

const maxPayloadBytes = 64 << 10

// Procesador reconcilia una notificación con el estado real del proveedor.
type Procesador interface {
	Procesar(ctx context.Context, resourceID, topic string, raw []byte) (*cobros.Resultado, error)
}

type Handler struct {
	Recon  Procesador
	Secret string
}

func NewHandler(recon Procesador, secret string) *Handler {
	return &Handler{Recon: recon, Secret: secret}
}

// notificacion cubre los dos formatos que manda MercadoPago: el nuevo
// {"type":"payment","data":{"id":"..."}} y el viejo {"topic","resource"}.
type notificacion struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.Number `json:"id"`
	} `json:"data"`
	Resource string `json:"resource"`
}

// Recibir atiende POST y GET /api/webhook/mercadopago. Salvo firma
// inválida, siempre responde 200: MercadoPago reintenta ante cualquier otro
// código y los errores de negocio quedan registrados en la notificación.
func (h *Handler) Recibir(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil {
		raw = nil
	}

	resourceID, topic := datosNotificacion(c, raw)

	if h.Secret != "" {
		err := VerificarFirma(
			h.Secret,
			c.GetHeader("x-signature"),
			c.GetHeader("x-request-id"),
			topic,
			resourceID,
		)
		if err != nil {
			log.Printf("[webhook] firma rechazada (recurso %s): %v", resourceID, err)
			c.JSON(http.StatusUnauthorized, gin.H{"status": "0", "msg": "Firma del webhook inválida."})
			return
		}
	}

	if resourceID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "0", "msg": "Notificación sin identificador de recurso."})
		return
	}

	resultado, err := h.Recon.Procesar(c.Request.Context(), resourceID, topic, raw)
	switch {
	case err != nil:
		log.Printf("[webhook] error procesando recurso %s (%s): %v", resourceID, topic, err)
		if errors.Is(err, cobros.ErrNotificacionInvalida) {
			c.JSON(http.StatusOK, gin.H{"status": "0", "msg": "Notificación sin identificador de recurso."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "0", "msg": "Notificación registrada con errores."})
	case resultado.Duplicada:
		c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Notificación ya procesada."})
	case resultado.Ignorada:
		c.JSON(http.StatusOK, gin.H{"status": "1", "msg": resultado.Mensaje})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "1", "msg": "Notificación procesada exitosamente."})
	}
}

// datosNotificacion resuelve (resourceID, topic) desde el cuerpo JSON o,
// como respaldo, desde los parámetros de query (?id=...&topic=...).
func datosNotificacion(c *gin.Context, raw []byte) (string, string) {
	var n notificacion
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &n)
	}

	topic := n.Type
	if topic == "" {
		topic = n.Topic
	}
	resourceID := n.Data.ID.String()
	if resourceID == "" {
		resourceID = idDeRecurso(n.Resource)
	}

	if resourceID == "" {
		resourceID = c.Query("id")
		if resourceID == "" {
			resourceID = c.Query("data.id")
		}
	}
	if topic == "" {
		topic = c.Query("topic")
		if topic == "" {
			topic = c.Query("type")
		}
	}
	return resourceID, topic
}

// idDeRecurso reduce el campo resource del formato viejo a su identificador:
// MercadoPago manda ahí la URL completa del recurso y sólo interesa el
// segmento final.
func idDeRecurso(resource string) string {
	resource = strings.TrimRight(resource, "/")
	if i := strings.LastIndexByte(resource, '/'); i >= 0 {
		return resource[i+1:]
	}
	return resource
}
