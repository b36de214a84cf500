// Package service provides the best-effort publisher for catalog events.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/evergreenmedia/podcast-api/internal/queue"
)

const catalogQueueName = "catalog.events"

// EventPublisher publishes CatalogEvents to RabbitMQ. A zero-value URL
// disables publishing entirely, which is how deployments without a broker
// run.
type EventPublisher struct {
	URL string
}

// NewEventPublisher builds a publisher for the given AMQP URL. An empty URL
// yields a no-op publisher.
func NewEventPublisher(url string) *EventPublisher {
	return &EventPublisher{URL: url}
}

// Publish sends one event to the catalog.events queue. It never panics; any
// error is logged and returned so the caller can choose to ignore it.
// Messages are marked persistent so they survive broker restarts.
func (p *EventPublisher) Publish(ctx context.Context, event q.CatalogEvent) error {
	if p == nil || p.URL == "" {
		return nil
	}
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(catalogQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",               // default exchange
		catalogQueueName, // routing key = queue name
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
	return err
}
