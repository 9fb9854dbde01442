package notifications

import (
	"encoding/json"
	"fmt"

	"pasarikan/pkg/rabbitmq"
)

// AMQPPublisher publishes events to the RabbitMQ notification queue.
type AMQPPublisher struct {
	client *rabbitmq.Client
}

// NewAMQPPublisher wraps a connected RabbitMQ client.
func NewAMQPPublisher(client *rabbitmq.Client) *AMQPPublisher {
	return &AMQPPublisher{client: client}
}

// Publish marshals the event to JSON and hands it to the broker.
func (p *AMQPPublisher) Publish(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s to JSON: %w", event.ID, err)
	}
	return p.client.Publish(event.Type, body)
}
