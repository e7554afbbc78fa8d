package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tinkerly.io/api/common/id"
	"tinkerly.io/api/common/llm"
	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/common/otel"
	"tinkerly.io/api/core/config"
	"tinkerly.io/api/core/db"
	"tinkerly.io/api/internal/http/middleware"
	httprouter "tinkerly.io/api/internal/http/router"
	"tinkerly.io/api/internal/queue"
	"tinkerly.io/api/internal/service"
	"tinkerly.io/api/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "tinkerly api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to run migrations", "error", err)
			os.Exit(1)
		}
		version, _ := database.MigrationVersion(ctx)
		slog.InfoContext(ctx, "migrations applied", "version", version)
	}

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	billingProducer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default())
	defer billingProducer.Close()

	var llmClient llm.Client
	if cfg.EstimatorLLM.Enabled() {
		llmClient, err = llm.New(llm.Config{
			APIKey:  cfg.EstimatorLLM.APIKey,
			BaseURL: cfg.EstimatorLLM.BaseURL,
			Model:   cfg.EstimatorLLM.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create estimator llm client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "estimator llm enabled", "model", llmClient.Model())
	} else {
		slog.WarnContext(ctx, "estimator llm disabled, every analysis uses the deterministic engine")
	}

	if !cfg.Stripe.Enabled() {
		slog.WarnContext(ctx, "stripe webhook secret not set, billing webhooks will be refused")
	}

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), llmClient, billingProducer, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httprouter.WithCORS(router, []string{cfg.SiteURL}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Analysis waits on the LLM.
		WriteTimeout: cfg.EstimatorLLM.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := redisClient.Close(); err != nil {
		slog.ErrorContext(shutdownCtx, "redis close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → request ID tags the logs → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		Auth: middleware.AuthConfig{
			Secret: []byte(cfg.Auth.JWTSecret),
			Issuer: cfg.Auth.Issuer,
		},
		StripeWebhookSecret: cfg.Stripe.WebhookSecret,
		Database:            database,
	})

	return router
}

const banner = `
████████╗██╗███╗   ██╗██╗  ██╗███████╗██████╗ ██╗  ██╗   ██╗
╚══██╔══╝██║████╗  ██║██║ ██╔╝██╔════╝██╔══██╗██║  ╚██╗ ██╔╝
   ██║   ██║██╔██╗ ██║█████╔╝ █████╗  ██████╔╝██║   ╚████╔╝
   ██║   ██║██║╚██╗██║██╔═██╗ ██╔══╝  ██╔══██╗██║    ╚██╔╝
   ██║   ██║██║ ╚████║██║  ██╗███████╗██║  ██║███████╗██║
   ╚═╝   ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝╚═╝
`
