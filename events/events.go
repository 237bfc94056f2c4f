// Package events publishes order status changes for kitchens, dashboards
// and notification workers.
package events

import (
	"context"
	"log/slog"
	"time"

	"cafe-ordering-api/models"
)

const (
	OrderStatusTopic = "cafe.orders.status"

	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status.changed"
)

// StatusEvent is published whenever an order is created or changes status.
type StatusEvent struct {
	EventType  string                 `json:"event_type"`
	OccurredAt time.Time              `json:"occurred_at"`
	OrderID    string                 `json:"order_id"`
	OrderType  models.FulfillmentType `json:"order_type"`
	From       models.OrderStatus     `json:"from_status,omitempty"`
	To         models.OrderStatus     `json:"to_status"`
	ChangedBy  string                 `json:"changed_by"`

	// Denormalized for display
	TableNumber int          `json:"table_number,omitempty"`
	GrandTotal  models.Money `json:"grand_total"`
}

// Publisher delivers status events. Failures never roll back an order.
type Publisher interface {
	PublishStatus(ctx context.Context, ev StatusEvent) error
	Close() error
}

// LogPublisher writes events to the application log. Used when no broker is configured.
type LogPublisher struct {
	Log *slog.Logger
}

func (p LogPublisher) PublishStatus(ctx context.Context, ev StatusEvent) error {
	p.Log.InfoContext(ctx, "order status event",
		slog.String("event_type", ev.EventType),
		slog.String("order_id", ev.OrderID),
		slog.String("from", string(ev.From)),
		slog.String("to", string(ev.To)),
		slog.String("changed_by", ev.ChangedBy),
	)
	return nil
}

func (LogPublisher) Close() error { return nil }

// NewStatusEvent builds an event from an order's current state.
func NewStatusEvent(o *models.Order, from models.OrderStatus, changedBy string) StatusEvent {
	kind := EventOrderStatusChanged
	if from == "" {
		kind = EventOrderPlaced
	}
	return StatusEvent{
		EventType:   kind,
		OccurredAt:  time.Now().UTC(),
		OrderID:     o.Number,
		OrderType:   o.Fulfillment.Type,
		From:        from,
		To:          o.Status,
		ChangedBy:   changedBy,
		TableNumber: o.Fulfillment.TableNumber,
		GrandTotal:  o.Bill.Total,
	}
}
