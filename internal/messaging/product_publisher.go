package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shop-server/internal/interfaces"
	"shop-server/internal/models"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ExchangeProductEvents is the fanout exchange for product change events.
const ExchangeProductEvents = "product_events"

// Compile-time check to ensure RabbitMQProductPublisher implements ProductEventPublisher
var _ interfaces.ProductEventPublisher = (*RabbitMQProductPublisher)(nil)

// RabbitMQProductPublisher publishes product change events to a durable
// fanout exchange. The connection is established and kept alive by the
// caller; the publisher only owns its channel.
type RabbitMQProductPublisher struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	logger *zap.Logger
}

// NewRabbitMQProductPublisher opens a channel and declares the exchange.
func NewRabbitMQProductPublisher(conn *amqp091.Connection, logger *zap.Logger) (*RabbitMQProductPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}
	log := logger.Named("ProductPublisher")

	ch, err := conn.Channel()
	if err != nil {
		log.Error("Failed to open a channel", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// Durable so the exchange survives a broker restart.
	err = ch.ExchangeDeclare(
		ExchangeProductEvents, // name
		"fanout",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		_ = ch.Close()
		log.Error("Failed to declare exchange", zap.Error(err), zap.String("exchange", ExchangeProductEvents))
		return nil, fmt.Errorf("failed to declare exchange %q: %w", ExchangeProductEvents, err)
	}

	log.Info("Product events exchange declared", zap.String("exchange", ExchangeProductEvents))
	return &RabbitMQProductPublisher{conn: conn, ch: ch, logger: log}, nil
}

// PublishProductEvent publishes one event to the exchange.
func (p *RabbitMQProductPublisher) PublishProductEvent(ctx context.Context, event models.ProductEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeProductEvents, // exchange
		"",                    // routing key (unused for fanout)
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish product event", zap.Error(err), zap.String("event", event.Event))
		return fmt.Errorf("failed to publish product event: %w", err)
	}

	p.logger.Debug("Product event published", zap.String("event", event.Event), zap.String("productID", event.Product.ID))
	return nil
}

// Close closes the RabbitMQ channel.
func (p *RabbitMQProductPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
