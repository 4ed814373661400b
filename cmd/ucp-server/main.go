package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	catalogapp "github.com/jcmexdev/ucp-commerce/internal/catalog-service/app"
	checkoutapp "github.com/jcmexdev/ucp-commerce/internal/checkout-service/app"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/discount"
	sessionlogsqlite "github.com/jcmexdev/ucp-commerce/internal/checkout-service/sessionlog/sqlite"
	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/store"
	paymentservice "github.com/jcmexdev/ucp-commerce/internal/payment-service/app"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/cache"
	"github.com/jcmexdev/ucp-commerce/internal/pkg/telemetry"
	"github.com/jcmexdev/ucp-commerce/internal/ucp-server/infra/httpx"
	"github.com/jcmexdev/ucp-commerce/internal/ucp-server/infra/httpx/middlewares"
	"github.com/jcmexdev/ucp-commerce/internal/ucp-server/profile"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Environment: cfg.Environment,
		})
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	catalog, err := catalogapp.LoadDefault()
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	sessionLog, err := sessionlogsqlite.Open(cfg.SessionLogPath)
	if err != nil {
		slog.Error("failed to open session log", "path", cfg.SessionLogPath, "error", err)
		os.Exit(1)
	}
	defer sessionLog.Close()

	payments := paymentservice.NewMockHandler()
	engine := checkoutapp.NewEngine(
		store.NewMemoryStore(),
		catalog,
		discount.NewEngine(discount.DefaultRegistry()),
		checkoutapp.WithPaymentHandler(payments),
		checkoutapp.WithSessionLog(sessionLog),
	)

	prof := profile.Build(profile.Config{
		ServerURL:       cfg.ServerURL,
		BusinessID:      cfg.BusinessID,
		BusinessName:    cfg.BusinessName,
		SupportedTokens: payments.SupportedTokens(),
	})

	var idempotency func(http.Handler) http.Handler
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis not reachable at startup, idempotency replay degraded", "addr", cfg.RedisAddr, "error", err)
		}
		guarded := cache.NewBreakerCache(redisCache, cache.BreakerSettings{Name: "idempotency"})
		idempotency = middlewares.Idempotency(guarded, cfg.IdempotencyTTL)
		slog.Info("idempotency replay enabled", "addr", cfg.RedisAddr, "ttl", cfg.IdempotencyTTL)
	}

	router := httpx.NewRouter(httpx.NewHandler(engine, catalog, prof), idempotency)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(http.TimeoutHandler(router, cfg.RequestTimeout, "request timed out"), "ucp-server"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("UCP server running", "addr", srv.Addr, "server_url", cfg.ServerURL, "tracing", cfg.TracingEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
