package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gelaboca/gelaboca-backend/api/routes"
	cartsvc "github.com/gelaboca/gelaboca-backend/internal/cart"
	catalogsvc "github.com/gelaboca/gelaboca-backend/internal/catalog"
	chatsvc "github.com/gelaboca/gelaboca-backend/internal/chat"
	ordersvc "github.com/gelaboca/gelaboca-backend/internal/orders"
	"github.com/gelaboca/gelaboca-backend/pkg/config"
	"github.com/gelaboca/gelaboca-backend/pkg/db"
	"github.com/gelaboca/gelaboca-backend/pkg/llm"
	"github.com/gelaboca/gelaboca-backend/pkg/logger"
	"github.com/gelaboca/gelaboca-backend/pkg/metrics"
	"github.com/gelaboca/gelaboca-backend/pkg/migrate"
	"github.com/gelaboca/gelaboca-backend/pkg/pinecone"
	"github.com/gelaboca/gelaboca-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	indexClient, err := pinecone.NewClient(
		cfg.Pinecone.APIKey,
		cfg.Pinecone.IndexHost,
		pinecone.WithTimeout(cfg.Pinecone.Timeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build index client", err)
		os.Exit(1)
	}

	llmClient, err := llm.NewClient(cfg.OpenAI)
	if err != nil {
		logg.Error(context.Background(), "failed to build llm client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	chatMetrics := metrics.NewChatPipelineMetrics(registry)

	catalogService := catalogsvc.NewService(indexClient, logg)
	ordersService := ordersvc.NewService(ordersvc.NewRepository(dbClient), logg)
	cartService := cartsvc.NewService(
		cartsvc.NewRedisStore(redisClient, cfg.Cart.TTL),
		ordersService,
		logg,
	)
	chatService := chatsvc.NewService(
		llmClient,
		llmClient,
		indexClient,
		chatsvc.NewRedisHistory(redisClient, cfg.Chat.HistoryTTL),
		chatMetrics,
		logg,
		cfg.Chat.HistoryLimit,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			indexClient,
			chatService,
			catalogService,
			cartService,
			ordersService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
