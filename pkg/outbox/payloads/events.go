package payloads

import (
	"github.com/google/uuid"

	"github.com/zelenagryadka/zelena-api/pkg/enums"
)

// OrderCreatedEvent signals a checkout that produced a new order.
type OrderCreatedEvent struct {
	OrderID        uuid.UUID            `json:"order_id"`
	UserID         uuid.UUID            `json:"user_id"`
	Status         enums.OrderStatus    `json:"status"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	ItemCount      int                  `json:"item_count"`
	SkippedItems   int                  `json:"skipped_items,omitempty"`
	Total          string               `json:"total"`
}

// OrderStatusChangedEvent is emitted when an admin moves an order through the
// status workflow.
type OrderStatusChangedEvent struct {
	OrderID uuid.UUID         `json:"order_id"`
	UserID  uuid.UUID         `json:"user_id"`
	From    enums.OrderStatus `json:"from"`
	To      enums.OrderStatus `json:"to"`
}
