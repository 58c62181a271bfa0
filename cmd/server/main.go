package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-server/internal/awsx"
	"shop-server/internal/config"
	"shop-server/internal/handler"
	"shop-server/internal/interfaces"
	"shop-server/internal/logger"
	"shop-server/internal/messaging"
	appMiddleware "shop-server/internal/middleware"
	"shop-server/internal/repository"
	"shop-server/internal/service"
	"shop-server/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: "json",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Configuration loaded", zap.String("env", cfg.Env), zap.String("logLevel", cfg.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// --- Dependency Injection ---
	// Backend selection is resolved once here, never per request: with no
	// table configured the service runs fully in memory.
	productRepo, userRepo, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to set up repositories", zap.Error(err))
	}

	publisher, mqConn := buildPublisher(cfg, log)
	defer publisher.Close()
	if mqConn != nil {
		defer mqConn.Close()
	}

	authSvc := service.NewAuthService(userRepo, cfg, log)
	productSvc := service.NewProductService(productRepo, publisher, log)
	uploadSvc := buildUploadService(ctx, cfg, log)

	apiHandler := handler.NewAPIHandler(productSvc, authSvc, uploadSvc, userRepo, cfg)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(appMiddleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if origins := cfg.GetAllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:4200"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	apiHandler.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// buildRepositories wires the configured backends: DynamoDB when tables are
// set, the in-memory fallback otherwise. Users fall back to sharing the
// products table before dropping to memory.
func buildRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (interfaces.ProductRepository, interfaces.UserRepository, error) {
	var productRepo interfaces.ProductRepository
	var userRepo interfaces.UserRepository

	if cfg.ProductsTable == "" && cfg.UsersTableName() == "" {
		zap.L().Warn("No tables configured, using in-memory stores (data is lost on restart)")
	}

	var client repository.DynamoDBAPI
	if cfg.ProductsTable != "" || cfg.UsersTableName() != "" {
		awsCfg, err := awsx.LoadConfig(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		client = repository.NewDynamoDBClient(awsCfg, cfg.AWSEndpoint)
	}

	if cfg.ProductsTable != "" {
		productRepo = repository.NewDynamoProductRepository(client, cfg.ProductsTable, log)
		zap.L().Info("Products backed by DynamoDB", zap.String("table", cfg.ProductsTable))
	} else {
		productRepo = repository.NewMemoryProductRepository(log)
	}

	if table := cfg.UsersTableName(); table != "" {
		userRepo = repository.NewDynamoUserRepository(client, table, log)
		zap.L().Info("Users backed by DynamoDB", zap.String("table", table))
	} else {
		var err error
		userRepo, err = repository.NewMemoryUserRepository(log)
		if err != nil {
			return nil, nil, err
		}
	}

	return productRepo, userRepo, nil
}

// buildPublisher connects to RabbitMQ when configured; product events are
// dropped silently otherwise.
func buildPublisher(cfg *config.Config, log *zap.Logger) (interfaces.ProductEventPublisher, *amqp091.Connection) {
	if cfg.RabbitMQURL == "" {
		zap.L().Info("RABBITMQ_URL not set, product events disabled")
		return messaging.NoopProductPublisher{}, nil
	}

	conn, err := connectRabbitMQ(cfg.RabbitMQURL, log)
	if err != nil {
		zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}

	publisher, err := messaging.NewRabbitMQProductPublisher(conn, log)
	if err != nil {
		zap.L().Fatal("Failed to create product event publisher", zap.Error(err))
	}
	zap.L().Info("Connected to RabbitMQ")
	return publisher, conn
}

// buildUploadService wires the S3 presigner. Without a bucket the upload
// service still starts and rejects presign requests at call time.
func buildUploadService(ctx context.Context, cfg *config.Config, log *zap.Logger) service.UploadService {
	var presigner interfaces.ObjectPresigner
	if cfg.S3Bucket != "" {
		awsCfg, err := awsx.LoadConfig(ctx, cfg)
		if err != nil {
			zap.L().Fatal("Failed to load AWS config for S3", zap.Error(err))
		}
		presigner = storage.NewS3Presigner(awsCfg, cfg.S3Bucket, cfg.AWSEndpoint, log)
	} else {
		// The upload service rejects presign calls for a missing bucket
		// before the presigner is ever touched.
		zap.L().Warn("S3_BUCKET not set, upload presigning unavailable")
	}
	return service.NewUploadService(presigner, cfg, log)
}

// connectRabbitMQ dials the broker with a few retries; the broker is
// optional, so the retry budget is short.
func connectRabbitMQ(url string, log *zap.Logger) (*amqp091.Connection, error) {
	var conn *amqp091.Connection
	var err error
	maxRetries := 5
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		conn, err = amqp091.Dial(url)
		if err == nil {
			go func() {
				notifyClose := make(chan *amqp091.Error)
				conn.NotifyClose(notifyClose)
				if closeErr := <-notifyClose; closeErr != nil {
					log.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				}
			}()
			return conn, nil
		}
		log.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}
