package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rgupta87/portfolio-analyzer/internal/api"
	"github.com/rgupta87/portfolio-analyzer/internal/broker"
	"github.com/rgupta87/portfolio-analyzer/internal/cache"
	"github.com/rgupta87/portfolio-analyzer/internal/config"
	"github.com/rgupta87/portfolio-analyzer/internal/database"
	"github.com/rgupta87/portfolio-analyzer/internal/kafka"
	"github.com/rgupta87/portfolio-analyzer/internal/service"
	"github.com/rs/zerolog"
)

const sectorCacheTTL = 15 * time.Minute

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	log.Info().Msg("starting portfolio analyzer")

	cfg := config.Load()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	defer redisClient.Close()
	sectorCache := cache.NewSectorCache(redisClient, sectorCacheTTL)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()

	brokerClient := broker.NewClient(broker.Config{
		APIKey:      cfg.Broker.APIKey,
		APISecret:   cfg.Broker.APISecret,
		RedirectURL: cfg.Broker.RedirectURL,
		BaseURL:     cfg.Broker.BaseURL,
	})

	svc := service.New(db, brokerClient, sectorCache, producer, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot ingestion is opt-in: without a topic the only sync path
	// is the HTTP one.
	if cfg.Kafka.SnapshotTopic != "" {
		consumer := kafka.NewHoldingsConsumer(cfg.Kafka.Brokers, cfg.Kafka.SnapshotTopic, cfg.Kafka.GroupID, db, log)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("holdings consumer stopped")
			}
		}()
	}

	handler := api.NewHandler(svc, db, log)
	router := api.SetupRoutes(handler, cfg.Server.FrontendURL)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
