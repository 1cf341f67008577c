package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/heksoli/Stocks-Watcher/config"
	"github.com/heksoli/Stocks-Watcher/events"
	"github.com/heksoli/Stocks-Watcher/workflow"

	paotaconfig "github.com/surendratiwari3/paota/config"
	"github.com/surendratiwari3/paota/schema"
	"github.com/surendratiwari3/paota/workerpool"
)

type ConsumerService struct {
	createdWorkerPool workerpool.Pool
	rmqConfig         config.RabbitMQConf
	runner            *workflow.Runner
}

// InitializeConsumer initializes the Paota consumer for the user.created queue.
func InitializeConsumer(rmqConfig config.RabbitMQConf, runner *workflow.Runner) (*ConsumerService, error) {
	if err := rmqConfig.ValidateRabbitMQConfig(); err != nil {
		return nil, fmt.Errorf("invalid RabbitMQ configuration: %w", err)
	}

	consumer := &ConsumerService{
		rmqConfig: rmqConfig,
		runner:    runner,
	}

	createdWorkerPool, err := consumer.initWorkerPool(
		rmqConfig.CreatedQueue,
		rmqConfig.CreatedRoutingKey,
		"user_created_consumer",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user.created consumer: %w", err)
	}
	consumer.createdWorkerPool = createdWorkerPool

	log.Println("✅ Paota consumer initialized successfully")
	return consumer, nil
}

// initWorkerPool creates a worker pool for a specific queue
func (c *ConsumerService) initWorkerPool(queueName, routingKey, consumerTag string) (workerpool.Pool, error) {
	paotaConfig := paotaconfig.Config{
		Broker:        "amqp",
		TaskQueueName: queueName,
		AMQP: &paotaconfig.AMQPConfig{
			Url:                c.rmqConfig.GetRabbitMQURL(),
			Exchange:           c.rmqConfig.Exchange,
			ExchangeType:       c.rmqConfig.ExchangeType,
			BindingKey:         routingKey,
			PrefetchCount:      c.rmqConfig.PrefetchCount,
			ConnectionPoolSize: c.rmqConfig.PoolSize,
			DelayedQueue:       "",
			TimeoutQueue:       "",
			FailedQueue:        c.rmqConfig.DLX,
		},
	}

	workerPool, err := workerpool.NewWorkerPoolWithConfig(
		context.Background(),
		uint(c.rmqConfig.PrefetchCount),
		consumerTag,
		paotaConfig,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool for %s: %w", queueName, err)
	}

	if workerPool == nil {
		return nil, fmt.Errorf("worker pool creation returned nil for %s", queueName)
	}

	return workerPool, nil
}

// Start starts consuming messages. Blocks until a shutdown signal is received.
func (c *ConsumerService) Start() error {
	if err := c.registerTaskHandlers(); err != nil {
		return fmt.Errorf("failed to register task handlers: %w", err)
	}

	log.Printf("🎧 Starting user.created consumer for queue: %s", c.rmqConfig.CreatedQueue)

	if err := c.createdWorkerPool.Start(); err != nil {
		return fmt.Errorf("failed to start user.created consumer: %w", err)
	}

	return nil
}

// registerTaskHandlers registers handlers for the consumed event types
func (c *ConsumerService) registerTaskHandlers() error {
	createdTasks := map[string]interface{}{
		events.TaskUserCreated: c.handleUserCreated,
	}
	if err := c.createdWorkerPool.RegisterTasks(createdTasks); err != nil {
		return fmt.Errorf("failed to register %s handler: %w", events.TaskUserCreated, err)
	}

	return nil
}

// handleUserCreated runs the welcome workflow for one user.created delivery.
// A returned error means the delivery is retried by the broker and, after
// exhaustion, dead-lettered; the workflow's step memoization keeps the
// retried attempts from repeating completed side effects.
func (c *ConsumerService) handleUserCreated(ctx context.Context, signature *schema.Signature) error {
	if len(signature.Args) == 0 {
		return fmt.Errorf("no arguments in signature")
	}

	eventJSON, ok := signature.Args[0].Value.(string)
	if !ok {
		return fmt.Errorf("invalid argument type, expected string")
	}

	var event events.UserEvent
	if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
		log.Printf("❌ Failed to unmarshal %s event: %v", events.TaskUserCreated, err)
		return err // Message will be retried or sent to DLQ
	}

	result, err := c.runner.Handle(ctx, event)
	if err != nil {
		log.Printf("❌ [%s] Welcome workflow failed (EventID: %s, Email: %s): %v",
			event.Event, event.ID, event.Data.Email, err)
		return err // Message will be retried or sent to DLQ
	}

	log.Printf("📧 [%s] %s (EventID: %s)", event.Event, result.Message, event.ID)

	return nil // Message will be acknowledged
}

// Close closes all consumer connections
func (c *ConsumerService) Close() error {
	log.Println("🔌 Stopping consumer worker pool...")
	c.createdWorkerPool.Stop()
	log.Println("✅ Consumer worker pool stopped")
	return nil
}
