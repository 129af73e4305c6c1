package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/halvora/transaction-service/internal/client"
	"github.com/halvora/transaction-service/internal/config"
	"github.com/halvora/transaction-service/internal/infrastructure/kafka"
	"github.com/halvora/transaction-service/internal/infrastructure/metrics"
	"github.com/halvora/transaction-service/internal/infrastructure/migrate"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/repository"
	"github.com/halvora/transaction-service/internal/infrastructure/redisstore"
	usecase "github.com/halvora/transaction-service/internal/usecase/transaction"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.TransactionDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.TransactionDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Redis: lock leases and wallet session correlation
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisService.Host, cfg.RedisService.Port),
		Password: cfg.RedisService.Password,
		DB:       cfg.RedisService.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	lockStore := redisstore.NewRedisLockStore(redisClient)
	tokenValidity := time.Duration(cfg.Payment.TokenValiditySeconds) * time.Second
	walletCache := redisstore.NewRedisWalletSessionCache(redisClient, tokenValidity)

	// Outbound queue
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewTransactionEventPublisher(brokers, cfg.KafkaService.TransactionsTopic)

	// External collaborators
	gatewayClient := client.NewHTTPGatewayClient(cfg.GatewayService.BaseURL, cfg.GatewayService.APIKey)
	nodeClient := client.NewHTTPNodeClient(cfg.NodeService.BaseURL)
	tokenClient := client.NewHTTPTokenClient(cfg.GatewayService.BaseURL)

	// Repositories
	eventRepo := repository.NewDefaultEventRepository(db)
	viewRepo := repository.NewDefaultTransactionViewRepository(db, cfg.Features.TransactionsViewUpdateEnabled)
	paymentRequestsRepo := repository.NewDefaultPaymentRequestsRepository(db)

	txMetrics := metrics.NewTransactionMetrics()

	uc := usecase.NewDefaultTransactionUsecase(
		eventRepo,
		lockStore,
		gatewayClient,
		publisher,
		viewRepo,
		tokenClient,
		gatewayClient,
		walletCache,
		nodeClient,
		paymentRequestsRepo,
		txMetrics,
		cfg,
	)

	// Expiration sweep for transactions nothing advanced in time
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			if err := uc.ExpireStaleTransactions(context.Background()); err != nil {
				log.Printf("Expiration sweep error: %v", err)
			}
		}
	}()

	http.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%s", metricsPort(cfg))
	log.Printf("transaction service started, metrics on %s\n", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func metricsPort(cfg *config.TransactionConfig) string {
	if cfg.Env == "local" {
		return "9091"
	}
	return "9090"
}
