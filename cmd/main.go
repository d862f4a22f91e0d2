package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"feedbackhub/internal/app/feedback/config"
	"feedbackhub/internal/app/feedback/handler"
	"feedbackhub/internal/app/feedback/infrastructure"
	"feedbackhub/internal/app/feedback/infrastructure/messaging"
	"feedbackhub/internal/app/feedback/repository"
	"feedbackhub/internal/app/feedback/service"
	"feedbackhub/internal/app/feedback/util"
	"feedbackhub/pkg/logger"
	"feedbackhub/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("feedback-service", logLevel)

	repo, mongoClient, healthChecker := setupStore(cfg)
	if mongoClient != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(ctx); err != nil {
				logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}()
	}
	if healthChecker != nil {
		defer healthChecker.Stop()
	}

	var cache service.OverviewCache
	if cfg.Redis.Addr != "" {
		redisClient, err := util.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Redis, overview cache disabled")
		} else {
			defer redisClient.Close()
			cache = redisClient
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
		}
	}

	var publisher infrastructure.MessagePublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")
	} else {
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	adminHash := cfg.Admin.PasswordHash
	if adminHash == "" {
		adminHash, err = util.HashPassword(cfg.Admin.Password)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to hash admin password")
		}
	}

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)

	feedbackService := service.NewFeedbackService(repo, publisher, cache)
	authService := service.NewAuthService(cfg.Admin.Username, adminHash, jwtManager)

	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := handler.NewAuthMiddleware(jwtManager)

	router := handler.SetupRoutes(feedbackHandler, authHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Feedback Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Feedback Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Feedback Service stopped gracefully")
}

// setupStore wires MongoDB behind the failover wrapper. The client dials
// lazily, so the wrapper is built even when Mongo is unreachable at boot: the
// service starts degraded on the in-memory store and the health checker
// restores the primary once it appears. Only a malformed URI forces the bare
// in-memory store.
func setupStore(cfg *config.Config) (repository.FeedbackRepository, *mongo.Client, *repository.StoreHealthChecker) {
	memoryRepo := repository.NewMemoryRepository()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		logger.Error().Err(err).Msg("Invalid MongoDB configuration, running on the in-memory store")
		metrics.StoreDegraded.Set(1)
		return memoryRepo, nil, nil
	}

	db := mongoClient.Database(cfg.MongoDB.Database)
	mongoRepo := repository.NewMongoRepository(db)

	failover := repository.NewFailoverRepository(mongoRepo, memoryRepo)

	if err := pingMongoDB(mongoClient); err != nil {
		logger.Error().Err(err).Msg("MongoDB unreachable, starting degraded on the in-memory store")
		failover.MarkDegraded()
	} else {
		logger.Info().
			Str("database", cfg.MongoDB.Database).
			Msg("Connected to MongoDB")
	}

	healthChecker := repository.NewStoreHealthChecker(failover, func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	if err := healthChecker.Start(cfg.Store.HealthSchedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Store.HealthSchedule).Msg("Failed to start store health checker")
	}

	return failover, mongoClient, healthChecker
}

func pingMongoDB(client *mongo.Client) error {
	var err error

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = client.Ping(ctx, readpref.Primary())
		cancel()
		if err == nil {
			return nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to reach MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return err
}
