package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EventType represents the kind of event sent to live viewers
type EventType string

const (
	EventTypeReceived  EventType = "received"
	EventTypeWithdrawn EventType = "withdrawn"
	EventTypeUpdated   EventType = "updated"
)

// EntityType represents the entity the event is about
type EntityType string

const (
	EntityTypePayment   EntityType = "payment"
	EntityTypeDashboard EntityType = "dashboard"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "payment.received"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "payment"
	Payload   interface{} `json:"payload"`   // Event data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PaymentPayload is what a live dashboard viewer sees when a settlement is
// reconciled. Fee comes from the funding node in millisats and is reported
// here as fractional sats.
type PaymentPayload struct {
	Name       string          `json:"name"`
	Amount     int64           `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	CheckingID string          `json:"checkingId"`
	Total      int64           `json:"total"`
}

// NewPaymentPayload builds the viewer payload, converting the msat fee
func NewPaymentPayload(name string, amountSats, feeMsat int64, checkingID string, total int64) PaymentPayload {
	return PaymentPayload{
		Name:       name,
		Amount:     amountSats,
		Fee:        decimal.NewFromInt(feeMsat).Div(decimal.NewFromInt(1000)),
		CheckingID: checkingID,
		Total:      total,
	}
}

// PaymentReceived creates a payment.received event
func PaymentReceived(payload interface{}) Event {
	return NewEvent(EventTypeReceived, EntityTypePayment, payload)
}

// PaymentWithdrawn creates a payment.withdrawn event
func PaymentWithdrawn(payload interface{}) Event {
	return NewEvent(EventTypeWithdrawn, EntityTypePayment, payload)
}

// DashboardUpdated creates a dashboard.updated event
func DashboardUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeDashboard, payload)
}
