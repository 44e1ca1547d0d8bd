// Package queue_publisher emits roster change events to RabbitMQ. Publishing
// is best effort: by the time a handler publishes, its database change is
// already committed, so errors here are logged and returned for the caller
// to drop rather than fail the request.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mpfops/roster/internal/queue"
)

// PublishRosterChanged pushes one event onto the durable roster.events queue
// as a persistent JSON message. The queue declare is idempotent and matches
// the consumer's, so either side may start first.
func PublishRosterChanged(ctx context.Context, event queue.RosterChangedEvent) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("roster-publish: dial broker: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("roster-publish: open channel: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare("roster.events", true, false, false, false, nil); err != nil {
		log.Printf("roster-publish: declare queue: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("roster-publish: encode event: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", "roster.events", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Printf("roster-publish: publish %s %s: %v", event.Entity, event.Action, err)
		return err
	}
	return nil
}
