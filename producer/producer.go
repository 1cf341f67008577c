package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/heksoli/Stocks-Watcher/config"
	"github.com/heksoli/Stocks-Watcher/events"

	paotaconfig "github.com/surendratiwari3/paota/config"
	"github.com/surendratiwari3/paota/schema"
	"github.com/surendratiwari3/paota/workerpool"
)

type ProducerService struct {
	createdPool workerpool.Pool
	rmqConfig   config.RabbitMQConf
	mu          sync.RWMutex
}

var (
	producerInstance *ProducerService
	producerOnce     sync.Once
)

// InitializeProducer initializes the producer pool for user.created events.
// The singleton is established exactly once; concurrent callers share the
// same pending initialization.
func InitializeProducer(rmqConfig config.RabbitMQConf) (*ProducerService, error) {
	var initErr error

	producerOnce.Do(func() {
		if err := rmqConfig.ValidateRabbitMQConfig(); err != nil {
			initErr = fmt.Errorf("invalid RabbitMQ configuration: %w", err)
			return
		}

		producer := &ProducerService{
			rmqConfig: rmqConfig,
		}

		createdPool, err := producer.initProducerPool(
			rmqConfig.CreatedQueue,
			rmqConfig.CreatedRoutingKey,
			"user_created_producer",
		)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize user.created producer: %w", err)
			return
		}
		producer.createdPool = createdPool

		producerInstance = producer
		log.Println("✅ Paota producer initialized successfully")
	})

	if initErr != nil {
		return nil, initErr
	}

	return producerInstance, nil
}

// initProducerPool creates a producer pool for a specific queue
func (p *ProducerService) initProducerPool(queueName, routingKey, tag string) (workerpool.Pool, error) {
	paotaConfig := paotaconfig.Config{
		Broker:        "amqp",
		TaskQueueName: queueName,
		AMQP: &paotaconfig.AMQPConfig{
			Url:                p.rmqConfig.GetRabbitMQURL(),
			Exchange:           p.rmqConfig.Exchange,
			ExchangeType:       p.rmqConfig.ExchangeType,
			BindingKey:         routingKey,
			PrefetchCount:      p.rmqConfig.PrefetchCount,
			ConnectionPoolSize: p.rmqConfig.PoolSize,
			DelayedQueue:       "",
			TimeoutQueue:       "",
			FailedQueue:        p.rmqConfig.DLX,
		},
	}

	workerPool, err := workerpool.NewWorkerPoolWithConfig(
		context.Background(),
		1, // Single worker for producer
		tag,
		paotaConfig,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create producer pool for %s: %w", queueName, err)
	}

	if workerPool == nil {
		return nil, fmt.Errorf("producer pool creation returned nil for %s", queueName)
	}

	return workerPool, nil
}

// GetProducer returns the singleton producer instance
func GetProducer() (*ProducerService, error) {
	if producerInstance == nil {
		return nil, fmt.Errorf("producer not initialized, call InitializeProducer first")
	}
	return producerInstance, nil
}

// PublishUserCreated publishes a user.created event
func (p *ProducerService) PublishUserCreated(event events.UserEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.createdPool == nil {
		return fmt.Errorf("user.created producer pool not initialized")
	}

	return p.publishEvent(p.createdPool, event, p.rmqConfig.CreatedRoutingKey)
}

// publishEvent publishes an event to RabbitMQ using Paota
func (p *ProducerService) publishEvent(pool workerpool.Pool, event events.UserEvent, routingKey string) error {
	// Marshal event to JSON
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Create task signature
	signature := &schema.Signature{
		Name:       events.TaskUserCreated,
		RoutingKey: routingKey,
		Args: []schema.Arg{
			{
				Type:  "string",
				Value: string(eventJSON),
			},
		},
		RetryCount:   3,
		RetryTimeout: 30,
	}

	// Send task asynchronously
	state, err := pool.SendTaskWithContext(context.Background(), signature)
	if err != nil {
		log.Printf("❌ Failed to send %s event: %v", event.Event, err)
		return fmt.Errorf("failed to send %s event: %w", event.Event, err)
	}

	if state != nil {
		log.Printf("✅ [%s] Event published successfully (EventID: %s, Email: %s, TaskID: %s, Status: %s)",
			event.Event, event.ID, event.Data.Email, state.Request.UUID, state.Status)
	} else {
		log.Printf("⚠️ [%s] Event published but state is nil (EventID: %s)", event.Event, event.ID)
	}

	return nil
}

// Close closes all producer connections
func (p *ProducerService) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	log.Println("🔌 Closing producer pool...")

	if p.createdPool != nil {
		p.createdPool.Stop()
	}

	log.Println("✅ Producer pool closed")
	return nil
}
