package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the order lifecycle.
const (
	EventOrderPlaced           = "order.placed"            // to the buyer
	EventOrderReceived         = "order.received"          // to a seller with items in the order
	EventOrderAlert            = "order.alert"             // to admins
	EventCancellationUpdate    = "cancellation.update"     // to the buyer
	EventCancellationRequested = "cancellation.requested"  // to admins
)

// Event is the envelope published to the notification queue. Delivery is a
// collaborator's concern; the core only records who should hear about which
// order and why.
type Event struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	RecipientRole string                 `json:"recipient_role"`         // buyer, seller or admin
	RecipientID   string                 `json:"recipient_id,omitempty"` // empty for role-wide fan-out (admins)
	OrderID       string                 `json:"order_id"`
	OccurredAt    time.Time              `json:"occurred_at"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
}

// NewEvent builds an envelope with a fresh ID and timestamp.
func NewEvent(eventType, recipientRole, recipientID, orderID string, payload map[string]interface{}) Event {
	return Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		RecipientRole: recipientRole,
		RecipientID:   recipientID,
		OrderID:       orderID,
		OccurredAt:    time.Now(),
		Payload:       payload,
	}
}
