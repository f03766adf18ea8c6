package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ActionEventPayload describes a tracked lead action for the gamification
// consumer. Delivery is best-effort from the tracker's point of view.
type ActionEventPayload struct {
	EventType  string            `json:"event_type"`
	UserID     string            `json:"user_id"`
	LeadID     string            `json:"lead_id"`
	ActionID   string            `json:"action_id"`
	ActionType string            `json:"action_type"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type GamificationProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *GamificationProducer {
	return &GamificationProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *GamificationProducer) PublishActionEvent(ctx context.Context, payload ActionEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding action event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing action event: %w", err)
	}

	return nil
}
