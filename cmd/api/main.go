package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/sandwichpos/pos-backend/api"
	"github.com/sandwichpos/pos-backend/api/controllers"
	"github.com/sandwichpos/pos-backend/api/routes"
	"github.com/sandwichpos/pos-backend/internal/checkout"
	"github.com/sandwichpos/pos-backend/internal/sales"
	"github.com/sandwichpos/pos-backend/pkg/config"
	"github.com/sandwichpos/pos-backend/pkg/db"
	"github.com/sandwichpos/pos-backend/pkg/env"
	"github.com/sandwichpos/pos-backend/pkg/instance"
	"github.com/sandwichpos/pos-backend/pkg/logger"
	"github.com/sandwichpos/pos-backend/pkg/metrics"
	"github.com/sandwichpos/pos-backend/pkg/migrate"
	"github.com/sandwichpos/pos-backend/pkg/redis"
	"github.com/sandwichpos/pos-backend/pkg/saleshistory"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	readiness := map[string]controllers.Pinger{"db": dbClient, "redis": nil}
	var idempotencyStore redis.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		readiness["redis"] = redisClient
		idempotencyStore = redisClient
	} else {
		logg.Warn(ctx, "redis.disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	salesService, err := sales.NewService(sales.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	history, err := salesHistory(ctx, cfg, logg, salesService)
	if err != nil {
		return err
	}

	checkoutService, err := checkout.NewService(history, logg, metrics.NewCheckoutMetrics(registry), cfg.Checkout.MaxOrderIDAttempts)
	if err != nil {
		return err
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	handler := routes.NewRouter(
		cfg,
		logg,
		readiness,
		idempotencyStore,
		metrics.NewHTTPMetrics(registry),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		checkoutService,
		salesService,
	)

	return api.Serve(ctx, api.NewServer(addr, handler), logg)
}

// salesHistory picks where checkout records sales: the remote backend when
// one is configured, otherwise the local store.
func salesHistory(ctx context.Context, cfg *config.Config, logg *logger.Logger, local sales.Service) (checkout.SalesHistory, error) {
	if !cfg.SalesHistory.Remote() {
		logg.Info(ctx, "sales_history.local")
		return local, nil
	}
	client, err := saleshistory.NewClient(
		cfg.SalesHistory.BaseURL,
		saleshistory.WithBearerToken(cfg.SalesHistory.Token),
		saleshistory.WithTimeout(cfg.SalesHistory.Timeout),
	)
	if err != nil {
		return nil, err
	}
	logg.Info(logg.WithField(ctx, "base_url", cfg.SalesHistory.BaseURL), "sales_history.remote")
	return client, nil
}
