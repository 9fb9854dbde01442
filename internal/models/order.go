package models

import "time"

// OrderStatus is the enumerated lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// statusRank orders the fulfilment states. Cancelled sits outside the
// ranking because it is only reachable through the cancellation workflow.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is legal out of s.
func IsTerminal(s OrderStatus) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition is the single source of truth for seller/admin status
// updates. Forward moves along pending -> processing -> shipped -> delivered
// are legal, including jumps (a seller may set an explicit target status);
// backward moves and anything out of a terminal state are not. Cancellation
// is never reached through here: it has its own workflow, gated by CanCancel.
func CanTransition(from, to OrderStatus) bool {
	if IsTerminal(from) {
		return false
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CanCancel reports whether an order in status s may still enter the
// cancellation workflow (buyer request or admin force-cancel).
func CanCancel(s OrderStatus) bool {
	return s == StatusPending || s == StatusProcessing
}

// Order is a buyer's durable purchase record. It is created once, at
// checkout, and afterwards mutated only through the state machine and
// cancellation workflow. Orders are never deleted; cancelled and delivered
// orders are retained for audit.
type Order struct {
	ID                    string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BuyerID               string      `json:"buyer_id" gorm:"index;type:varchar(36)"`
	TotalAmount           float64     `json:"total_amount"`
	ShippingAddress       string      `json:"shipping_address"`
	BillingAddress        string      `json:"billing_address"`
	PaymentMethod         string      `json:"payment_method"` // label only, no settlement
	Status                OrderStatus `json:"status" gorm:"type:varchar(20);index"`
	AdminApprovalRequired bool        `json:"admin_approval_required"`
	CancellationReason    string      `json:"cancellation_reason,omitempty"`
	CancelledAt           *time.Time  `json:"cancelled_at,omitempty"`
	Items                 []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

// OrderItem is one price-frozen line of an order. Price is copied from the
// product at checkout time and never updated, regardless of later price
// changes; ProductID is kept so a cancellation can release the right stock.
type OrderItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
}
