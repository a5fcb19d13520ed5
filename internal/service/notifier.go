// Package service hosts the orchestration layer that sits between the
// HTTP handlers and the repositories: event publishing and the
// reservation lifecycle jobs.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/locker-reservation/internal/queue"
)

// Notifier publishes NotificationEvents to the notification.send
// queue.  Publishing is intentionally decoupled from request handling:
// callers log the error and move on, so a broker outage degrades email
// delivery but never fails an API request.
type Notifier struct {
	url string
}

// NewNotifier returns a Notifier that dials the given broker URL on
// each publish.
func NewNotifier(url string) *Notifier {
	return &Notifier{url: url}
}

// Publish marshals the event and sends it to the notification.send
// queue on the default exchange.  The queue is declared durable and
// messages are marked persistent so they survive broker restarts.  Any
// error is logged and returned; the function never panics.
func (n *Notifier) Publish(ctx context.Context, event q.NotificationEvent) error {
	conn, err := amqp.Dial(n.url)
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

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"notification.send", // name
		true,                // durable
		false,               // autoDelete
		false,               // exclusive
		false,               // noWait
		nil,                 // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                  // default exchange
		"notification.send", // routing key = queue name
		false,               // mandatory
		false,               // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
