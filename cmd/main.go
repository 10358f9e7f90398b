package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Mentallyspammed1/neonsearch/api"
	"github.com/Mentallyspammed1/neonsearch/config"
	"github.com/Mentallyspammed1/neonsearch/driver"
	"github.com/Mentallyspammed1/neonsearch/pkg/mongodb"
	"github.com/Mentallyspammed1/neonsearch/search"
	"github.com/Mentallyspammed1/neonsearch/storage"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// MongoDB (status-check audit records)
	// =========
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	statusRepo := mongodb.NewStatusCollection(mongoClient.Database(cfg.DBName))

	// =========
	// Query history (suggestions)
	// =========
	history, err := storage.NewHistoryStore(cfg.HistoryPath)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}
	defer history.Close()

	// =========
	// Driver registry
	// =========
	registry := driver.DefaultRegistry()

	// =========
	// Aggregation engine
	// =========
	fetcher := search.NewFetcher(search.FetcherConfig{
		Timeout:     cfg.FetchTimeout(),
		MaxRetries:  cfg.MaxRetries,
		BackoffBase: cfg.BackoffBase(),
		UserAgent:   cfg.UserAgent,
	}, logger)
	cache := search.NewCache(cfg.CacheSize)
	aggregator := search.NewAggregator(registry, fetcher, cache, nil, logger)

	// =========
	// API server
	// =========
	server := api.NewServer(aggregator, registry, history, statusRepo, cfg.AppPort, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
