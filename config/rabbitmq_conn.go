package config

import (
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	RabbitConn    *amqp.Connection
	RabbitChannel *amqp.Channel
)

// ConnectRabbitMQ dials the broker with retry logic, opens a channel and
// declares the event exchange plus the dead-letter topology. Paota declares
// its own task queues; the dead-letter side is owned here so that exhausted
// deliveries stay visible to operators.
func ConnectRabbitMQ() error {
	r := &Config.RabbitMQ

	maxAttempts := 5
	retryInterval := 2 * time.Second

	var conn *amqp.Connection
	var err error

	log.Println("🔌 Connecting to RabbitMQ...")

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		conn, err = amqp.Dial(r.GetRabbitMQURL())
		if err == nil {
			break
		}

		if attempt < maxAttempts {
			log.Printf("⏳ RabbitMQ not ready (attempt %d/%d). Retrying in %v...",
				attempt, maxAttempts, retryInterval)
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxAttempts, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := declareTopology(ch, r); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("failed to declare RabbitMQ topology: %w", err)
	}

	RabbitConn = conn
	RabbitChannel = ch

	log.Println("✅ RabbitMQ connected successfully")
	log.Printf("   Host: %s:%s", r.Host, r.Port)
	log.Printf("   Exchange: %s (%s)", r.Exchange, r.ExchangeType)

	return nil
}

// declareTopology sets up the event exchange, the dead-letter exchange and
// the failed-delivery queue. All declarations are idempotent.
func declareTopology(ch *amqp.Channel, r *RabbitMQConf) error {
	if err := ch.ExchangeDeclare(
		r.Exchange,
		r.ExchangeType,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("exchange %s: %w", r.Exchange, err)
	}

	if err := ch.ExchangeDeclare(
		r.DLX,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("dead-letter exchange %s: %w", r.DLX, err)
	}

	if _, err := ch.QueueDeclare(
		r.FailedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("failed queue %s: %w", r.FailedQueue, err)
	}

	if err := ch.QueueBind(r.FailedQueue, "", r.DLX, false, nil); err != nil {
		return fmt.Errorf("bind %s to %s: %w", r.FailedQueue, r.DLX, err)
	}

	return nil
}

// RabbitHealthCheck checks if the broker connection is alive
func RabbitHealthCheck() error {
	if RabbitConn == nil {
		return fmt.Errorf("rabbitmq not initialized")
	}
	if RabbitConn.IsClosed() {
		return fmt.Errorf("rabbitmq connection closed")
	}
	return nil
}

// CloseRabbitMQ closes the channel and connection
func CloseRabbitMQ() error {
	if RabbitChannel != nil {
		if err := RabbitChannel.Close(); err != nil {
			log.Printf("⚠️  Error closing RabbitMQ channel: %v", err)
		}
	}
	if RabbitConn == nil {
		return nil
	}

	log.Println("🔌 Closing RabbitMQ connection...")
	return RabbitConn.Close()
}
