package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tutorhub/scheduling-service/internal/config"
	"github.com/tutorhub/scheduling-service/internal/events"
	"github.com/tutorhub/scheduling-service/internal/handlers"
	"github.com/tutorhub/scheduling-service/internal/persistence"
	"github.com/tutorhub/scheduling-service/internal/services"
	"github.com/tutorhub/scheduling-service/internal/store"
	"github.com/tutorhub/scheduling-service/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	// Initialize the store, restoring the last snapshot when available
	st := store.New()
	var snapshotStore persistence.SnapshotStore
	if redisClient != nil {
		snapshotStore = persistence.NewRedisStore(redisClient, cfg.SnapshotKey)
		snap, err := snapshotStore.Load(context.Background())
		switch {
		case err == nil:
			st.Restore(*snap)
			logger.Info("state restored from snapshot", "users", len(snap.Users), "slots", len(snap.Slots))
		case errors.Is(err, persistence.ErrNoSnapshot):
			logger.Info("no snapshot found, starting fresh")
		default:
			log.Fatalf("Failed to load snapshot: %v", err)
		}
	}
	if cfg.SeedDemoData {
		st.Seed(time.Now())
	}

	// Initialize the event bus, plus Kafka when brokers are configured
	bus := events.NewBus(logger)
	var publisher events.Publisher = bus
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = events.NewFanout(bus, kafkaPub)
		logger.Info("kafka event feed enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Initialize validator
	v := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(st, publisher, logger)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Start the write-behind persister
	writerCtx, stopWriter := context.WithCancel(context.Background())
	var writer *persistence.Writer
	if snapshotStore != nil {
		writer = persistence.NewWriter(st, snapshotStore, cfg.FlushInterval, logger)
		stream, err := bus.Subscribe(writerCtx)
		if err != nil {
			log.Fatalf("Failed to subscribe persister: %v", err)
		}
		go writer.Run(writerCtx, stream)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, st, v, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Final snapshot flush before closing the stores
	if writer != nil {
		if err := writer.Flush(ctx); err != nil {
			log.Printf("Final snapshot flush failed: %v", err)
		}
	}
	stopWriter()

	if err := publisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
