package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DevJWTSecret is the insecure development fallback. It is only ever used
// when ENV=development; production startup fails without an explicit secret.
const DevJWTSecret = "dev-secret"

// Config holds the application configuration. It is resolved once at startup
// and passed explicitly to every component; nothing else reads the
// environment.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// AWS / DynamoDB
	AWSRegion     string `envconfig:"AWS_REGION" default:"us-east-1"`
	ProductsTable string `envconfig:"PRODUCTS_TABLE"`
	UsersTable    string `envconfig:"USERS_TABLE"`
	// Optional custom endpoint with static credentials, for local stacks
	// (dynamodb-local, minio). Ignored when empty.
	AWSEndpoint  string `envconfig:"AWS_ENDPOINT"`
	AWSAccessKey string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`

	// Tokens
	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"8h"`

	// Uploads
	S3Bucket        string        `envconfig:"S3_BUCKET"`
	S3PublicURLBase string        `envconfig:"S3_PUBLIC_URL_BASE"`
	S3Prefix        string        `envconfig:"S3_PREFIX" default:"public/"`
	MaxUploadBytes  int64         `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"` // 5 MiB
	PresignTTL      time.Duration `envconfig:"PRESIGN_TTL" default:"60s"`

	// Messaging (optional; noop publisher when empty)
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`
}

// UsersTableName returns the effective users table: a dedicated table when
// configured, otherwise the products table is shared (user items are
// namespaced by key prefix there).
func (c *Config) UsersTableName() string {
	if c.UsersTable != "" {
		return c.UsersTable
	}
	return c.ProductsTable
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadConfig loads configuration from the environment, optionally reading a
// .env file first.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET must be set when ENV is %q", cfg.Env)
		}
		cfg.JWTSecret = DevJWTSecret
		log.Println("WARNING: JWT_SECRET not set, using the insecure development default")
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	return &cfg, nil
}
