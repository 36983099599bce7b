package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/logger"
	"github.com/uyumazulvi/eticaret-stok-yonetim/pkg/metrics"
)

const (
	exchangeName = "stok.events"
	exchangeType = "topic"
)

// AMQPPublisher mirrors every domain event onto a RabbitMQ topic exchange
// so external systems (accounting, e-commerce sync) can subscribe. The
// event type is the routing key.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewAMQPPublisher dials the broker and declares the durable exchange.
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events/amqp: dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events/amqp: open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchangeName,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events/amqp: declare exchange: %w", err)
	}

	logger.Info("events: connected to RabbitMQ", "exchange", exchangeName)
	return &AMQPPublisher{conn: conn, channel: channel}, nil
}

func (p *AMQPPublisher) Name() string { return "amqp" }

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("events/amqp: marshal: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		exchangeName,
		e.Type, // routing key
		false,  // mandatory
		false,  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    e.ID,
			Body:         body,
			Headers: amqp.Table{
				"event_type": e.Type,
			},
		},
	)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(p.Name(), "error").Inc()
		return fmt.Errorf("events/amqp: publish %s: %w", e.Type, err)
	}

	metrics.EventsPublished.WithLabelValues(p.Name(), "ok").Inc()
	return nil
}

// IsHealthy reports whether the broker connection is still open.
func (p *AMQPPublisher) IsHealthy() bool {
	return p.conn != nil && !p.conn.IsClosed()
}

// Close shuts the channel and connection down.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			logger.Warn("events: close channel", "error", err)
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
