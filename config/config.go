package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v7"
)

// ServerConf holds server configuration
type ServerConf struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"Stocks Watcher"`
}

// DatabaseConf holds database configuration
type DatabaseConf struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:""`
	Name     string `env:"DB_NAME" envDefault:"stocks_watcher"`
}

// SMTPConf holds mail relay configuration
type SMTPConf struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER" envDefault:""`
	Password string `env:"SMTP_PASSWORD" envDefault:""`
	From     string `env:"EMAIL_FROM" envDefault:""`
}

// GeminiConf holds AI inference configuration
type GeminiConf struct {
	APIKey string `env:"GOOGLE_GEMINI_API_KEY" envDefault:""`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-lite"`
}

// WorkflowConf holds the durable workflow runtime configuration
type WorkflowConf struct {
	DBPath string `env:"WORKFLOW_DB_PATH" envDefault:"workflow.db"`
}

// AppConfig holds all application configuration
type AppConfig struct {
	Server   ServerConf
	Database DatabaseConf
	RabbitMQ RabbitMQConf
	SMTP     SMTPConf
	Gemini   GeminiConf
	Workflow WorkflowConf
}

// Config is the global configuration instance
var Config AppConfig

// InitConfig initializes application configuration from environment variables
func InitConfig() error {
	log.Println("🔧 Initializing application configuration...")

	// Parse environment variables into Config struct
	if err := env.Parse(&Config); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Validate configuration
	if err := validateConfig(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Println("✅ Configuration initialized successfully")
	return nil
}

// validateConfig validates the loaded configuration
func validateConfig() error {
	// Validate Server configuration
	if Config.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	// Validate Database configuration
	requiredDBFields := map[string]string{
		"DB_HOST": Config.Database.Host,
		"DB_PORT": Config.Database.Port,
		"DB_USER": Config.Database.User,
		"DB_NAME": Config.Database.Name,
	}

	for field, value := range requiredDBFields {
		if value == "" {
			return fmt.Errorf("%s is required", field)
		}
	}

	// Validate RabbitMQ configuration
	if err := Config.RabbitMQ.ValidateRabbitMQConfig(); err != nil {
		return err
	}

	if Config.Workflow.DBPath == "" {
		return fmt.Errorf("WORKFLOW_DB_PATH is required")
	}

	return nil
}

// GetDatabaseDSN returns the database connection string
func (d *DatabaseConf) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host,
		d.User,
		d.Password,
		d.Name,
		d.Port,
	)
}

// IsProduction returns true if running in production environment
func (s *ServerConf) IsProduction() bool {
	return s.Env == "production" || s.Env == "prod"
}

// IsDevelopment returns true if running in development environment
func (s *ServerConf) IsDevelopment() bool {
	return s.Env == "development" || s.Env == "dev"
}

// IsTest returns true if running in test environment
func (s *ServerConf) IsTest() bool {
	return s.Env == "test"
}

// PrintConfig prints the current configuration (excluding sensitive data)
func PrintConfig() {
	log.Println("📋 Current Configuration:")
	log.Printf("   Environment: %s", Config.Server.Env)
	log.Printf("   Server Port: %s", Config.Server.Port)
	log.Printf("   Database Host: %s:%s", Config.Database.Host, Config.Database.Port)
	log.Printf("   Database Name: %s", Config.Database.Name)
	log.Printf("   RabbitMQ Host: %s:%s", Config.RabbitMQ.Host, Config.RabbitMQ.Port)
	log.Printf("   RabbitMQ Exchange: %s", Config.RabbitMQ.Exchange)
	log.Printf("   Prefetch Count: %d", Config.RabbitMQ.PrefetchCount)
	log.Printf("   Connection Pool Size: %d", Config.RabbitMQ.PoolSize)
	log.Printf("   Workflow DB: %s", Config.Workflow.DBPath)
	log.Printf("   Gemini Model: %s", Config.Gemini.Model)
	log.Printf("   SMTP Host: %s:%d", Config.SMTP.Host, Config.SMTP.Port)
}

// GetEnv returns environment variable value or default
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// MustGetEnv returns environment variable value or panics if not set
func MustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("❌ Required environment variable %s is not set", key)
	}
	return value
}
