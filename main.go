package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heksoli/Stocks-Watcher/config"
	"github.com/heksoli/Stocks-Watcher/consumer"
	"github.com/heksoli/Stocks-Watcher/handlers"
	"github.com/heksoli/Stocks-Watcher/inference"
	"github.com/heksoli/Stocks-Watcher/mailer"
	"github.com/heksoli/Stocks-Watcher/models"
	"github.com/heksoli/Stocks-Watcher/producer"
	"github.com/heksoli/Stocks-Watcher/routes"
	"github.com/heksoli/Stocks-Watcher/workflow"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "modernc.org/sqlite"
)

func main() {
	// Define command-line flags
	mode := flag.String("mode", "api", "Run mode: 'api' or 'worker'")
	flag.Parse()

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

	// Run based on mode
	switch *mode {
	case "api":
		runAPIServer()
	case "worker":
		runWorker()
	default:
		log.Fatalf("❌ Invalid mode: %s. Use 'api' or 'worker'", *mode)
	}
}

func runAPIServer() {
	log.Println("🚀 Starting in API mode...")

	// Connect to RabbitMQ and declare the event topology
	if err := config.ConnectRabbitMQ(); err != nil {
		log.Printf("⚠️  RabbitMQ connect failed: %v (sign-up events will be dropped)", err)
	}
	defer config.CloseRabbitMQ()

	// Connect to database
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDB()

	// Run database migrations
	if err := config.DB.AutoMigrate(&models.User{}, &models.WatchlistItem{}); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Initialize Paota producer
	log.Println("🔧 Initializing producer...")
	_, err := producer.InitializeProducer(config.Config.RabbitMQ)
	if err != nil {
		log.Printf("⚠️  Failed to initialize producer: %v (sign-up events will be dropped)", err)
	}

	// Cleanup producer on shutdown
	defer func() {
		prod, _ := producer.GetProducer()
		if prod != nil {
			prod.Close()
			log.Println("✅ Producer closed")
		}
	}()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET,
			echo.POST,
			echo.PUT,
			echo.DELETE,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))

	// Register routes
	routes.RegisterRoutes(e)

	// Setup graceful shutdown
	go func() {
		port := config.Config.Server.Port
		log.Printf("🚀 API Server running at http://localhost:%s", port)
		log.Printf("📍 Environment: %s", config.Config.Server.Env)
		log.Println("📍 Health check: http://localhost:" + port + "/health")
		log.Println("📍 Press Ctrl+C to stop")

		if err := e.Start(":" + port); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down API server gracefully...")

	// Cleanup
	if err := e.Close(); err != nil {
		log.Printf("⚠️  Error closing server: %v", err)
	}

	log.Println("✅ API Server stopped")
}

func runWorker() {
	log.Println("🎧 Starting in Worker mode...")

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
	log.Println("🔧 Initializing consumer service...")
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
		log.Println("📍 Press Ctrl+C to stop")

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
