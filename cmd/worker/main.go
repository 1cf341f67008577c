package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heksoli/Stocks-Watcher/config"
	"github.com/heksoli/Stocks-Watcher/consumer"
	"github.com/heksoli/Stocks-Watcher/inference"
	"github.com/heksoli/Stocks-Watcher/mailer"
	"github.com/heksoli/Stocks-Watcher/workflow"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("❌ Failed to initialize configuration: %v", err)
	}

	// Print configuration (for debugging)
	if config.Config.Server.IsDevelopment() {
		config.PrintConfig()
	}

	ctx := context.Background()

	// Connect to RabbitMQ and declare the event topology
	if err := config.ConnectRabbitMQ(); err != nil {
		log.Fatalf("❌ RabbitMQ not ready: %v", err)
	}
	defer config.CloseRabbitMQ()

	// Open the workflow database
	db, err := sql.Open("sqlite", config.Config.Workflow.DBPath)
	if err != nil {
		log.Fatalf("❌ Failed to open workflow database: %v", err)
	}
	defer db.Close()
	// SQLite allows a single writer; serialize access through one connection
	db.SetMaxOpenConns(1)

	// Initialize the AI inference gateway
	client, err := inference.NewGeminiClient(ctx, config.Config.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize inference client: %v", err)
	}

	// Initialize the mail sender
	sender, err := mailer.NewSMTPSender(config.Config.SMTP, config.Config.Server.Name)
	if err != nil {
		log.Fatalf("❌ Failed to initialize mail sender: %v", err)
	}

	// Initialize the durable workflow runner
	runner, err := workflow.NewRunner(db, client, sender, config.Config.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize workflow runner: %v", err)
	}

	// Mark instances orphaned by a previous crash before taking new work
	if recovered, err := runner.Recover(ctx); err != nil {
		log.Printf("⚠️  Workflow recovery failed: %v", err)
	} else if recovered > 0 {
		log.Printf("⚠️  Marked %d stuck workflow instance(s) as failed", recovered)
	}

	// Get RabbitMQ configuration
	rmqConfig := config.Config.RabbitMQ

	// Initialize Paota consumer
	log.Println("🎧 Initializing consumer service...")
	consumerService, err := consumer.InitializeConsumer(rmqConfig, runner)
	if err != nil {
		log.Fatalf("❌ Failed to initialize consumer: %v", err)
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start consuming in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("🚀 Starting consumer service...")
		log.Printf("📥 Listening to queue: %s (routing key: %s)", rmqConfig.CreatedQueue, rmqConfig.CreatedRoutingKey)
		log.Printf("📍 Environment: %s", config.Config.Server.Env)
		log.Printf("⚙️  Prefetch Count: %d", rmqConfig.PrefetchCount)
		log.Printf("⚙️  Pool Size: %d", rmqConfig.PoolSize)

		if err := consumerService.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("⚠️  Received signal: %v. Shutting down gracefully...", sig)
	case err := <-errChan:
		log.Printf("❌ Consumer error: %v. Shutting down...", err)
	}

	// Cleanup
	if consumerService != nil {
		if err := consumerService.Close(); err != nil {
			log.Printf("⚠️  Error during cleanup: %v", err)
		}
	}

	log.Println("✅ Worker service stopped")
}
