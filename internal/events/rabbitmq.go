package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hemantthp85-ai/Civic-1/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes complaint events to a RabbitMQ queue.
type RabbitPublisher struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	queueDurable bool
}

// NewRabbitPublisher dials RabbitMQ and opens a channel. The queue is
// declared on first publish.
func NewRabbitPublisher(cfg config.RabbitMQConfig) (*RabbitPublisher, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &RabbitPublisher{
		conn:         conn,
		channel:      ch,
		queueDurable: cfg.QueueDurable,
	}, nil
}

func (r *RabbitPublisher) PublishComplaintSubmitted(ctx context.Context, event ComplaintSubmitted) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := r.channel.QueueDeclare(ComplaintSubmittedChannel, r.queueDurable, false, false, false, nil); err != nil {
		return err
	}

	return r.channel.PublishWithContext(ctx, "", ComplaintSubmittedChannel, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.ComplaintID,
		Body:        body,
	})
}

func (r *RabbitPublisher) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
