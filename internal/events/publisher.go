package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"expomall/internal/domain"
)

// OrderPlaced is the event fanned out after a successful checkout. Downstream
// consumers (vendor notifications, fulfillment) key off the store id.
type OrderPlaced struct {
	SessionID     string                 `json:"session_id"`
	StoreID       int                    `json:"store_id"`
	Order         map[string]interface{} `json:"order"`
	InvoiceID     string                 `json:"invoice_id,omitempty"`
	DeliveryPrice string                 `json:"delivery_price"`
	PlacedAt      time.Time              `json:"placed_at"`
}

// Publisher publishes order-placed events to a durable queue.
type Publisher struct {
	pool      *ChannelPool
	queueName string
}

func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{pool: pool, queueName: queueName}
}

// PublishOrderPlaced sends one event per created order. The checkout flow
// treats publish failures as non-fatal since the order already exists
// upstream.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, sessionID string, draft domain.OrderDraft, placed *domain.PlacedOrder) error {
	ch, err := p.pool.Get()
	if err != nil {
		return fmt.Errorf("get channel from pool: %w", err)
	}
	defer p.pool.Put(ch)

	body, err := json.Marshal(newOrderPlaced(sessionID, draft, placed))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(pubCtx,
		"",          // exchange
		p.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func newOrderPlaced(sessionID string, draft domain.OrderDraft, placed *domain.PlacedOrder) OrderPlaced {
	return OrderPlaced{
		SessionID:     sessionID,
		StoreID:       draft.StoreID,
		Order:         placed.Order,
		InvoiceID:     placed.Invoice.InvoiceID,
		DeliveryPrice: draft.DeliveryPrice.String(),
		PlacedAt:      time.Now().UTC(),
	}
}
