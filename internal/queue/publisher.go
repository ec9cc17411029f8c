package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"movie-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, BookingCreatedEvent) error { return nil }
func (NopPublisher) Close() error { return nil }

// RabbitPublisher holds one broker connection and opens a short-lived channel
// per publish. Channels are not safe for concurrent use, connections are.
type RabbitPublisher struct {
	conn  *amqp.Connection
	queue string
	log   *zap.Logger
}

func NewRabbitPublisher(config utils.RabbitMQConfig, log *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		config.BookingQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", config.BookingQueue, err)
	}

	return &RabbitPublisher{
		conn:  conn,
		queue: config.BookingQueue,
		log:   log.With(zap.String("publisher", "rabbitmq")),
	}, nil
}

func (p *RabbitPublisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}

	p.log.Debug("Booking event published",
		zap.String("booking_id", event.BookingID.String()),
		zap.String("queue", p.queue),
	)
	return nil
}

func (p *RabbitPublisher) Close() error {
	return p.conn.Close()
}

func newPublishing(event BookingCreatedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.BookingID.String(),
		Type:         "booking.created",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
