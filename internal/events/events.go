// Package events publishes order lifecycle events to Kafka. The stream is
// strictly optional: without configured brokers the server wires in the Noop
// publisher and nothing else changes.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/TemirB/storefront/internal/domain"
)

const (
	TypeOrderPlaced   = "order_placed"
	TypeOrderUpdated  = "order_updated"
	TypeSellerCreated = "seller_created"
)

type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID   int64   `json:"order_id"`
	SellerID  int64   `json:"seller_id"`
	ProductID int64   `json:"product_id"`
	User      string  `json:"user"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderUpdatedPayload struct {
	OrderID int64          `json:"order_id"`
	Status  *domain.Status `json:"status,omitempty"`
	Paid    *bool          `json:"paid,omitempty"`
}

type SellerCreatedPayload struct {
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
}

// NewEnvelope wraps a payload. Marshal errors cannot happen for the payload
// types above, so the payload is dropped rather than propagated.
func NewEnvelope(eventType string, payload any) Envelope {
	raw, _ := json.Marshal(payload)
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   "storefront",
		Payload:    raw,
	}
}

// Publisher is what the HTTP layer sees. Publish must not block request
// handling on broker availability.
type Publisher interface {
	Publish(key string, e Envelope)
	Close()
}

type Noop struct{}

func (Noop) Publish(string, Envelope) {}
func (Noop) Close()                   {}
