package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("cafe-ordering-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

// PublishStatus publishes on OrderStatusTopic suffixed with the order type,
// e.g. cafe.orders.status.room-delivery.
func (p *NATSPublisher) PublishStatus(ctx context.Context, ev StatusEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}
	return p.conn.Publish(OrderStatusTopic+"."+string(ev.OrderType), data)
}

func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
