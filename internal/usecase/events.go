package usecase

import (
	"context"
	"time"

	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent is published after every committed order mutation and
// consumed by the notifier.
type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"orderId"`
	CustomerID string             `json:"customerId"`
	Status     domain.OrderStatus `json:"status,omitempty"`
	Message    string             `json:"message,omitempty"`
	Total      decimal.Decimal    `json:"total"`
	OccurredAt time.Time          `json:"occurredAt"`
}

func newOrderEvent(typ string, o *domain.Order) OrderEvent {
	return OrderEvent{
		Type:       typ,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Message:    o.Message,
		Total:      o.Total,
		OccurredAt: time.Now().UTC(),
	}
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }
