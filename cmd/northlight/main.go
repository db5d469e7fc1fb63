package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/northlight-bi/northlight/internal/analytics"
	"github.com/northlight-bi/northlight/internal/app"
	"github.com/northlight-bi/northlight/internal/customers"
	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/observability"
	"github.com/northlight-bi/northlight/internal/orders"
	"github.com/northlight-bi/northlight/internal/platform/cache"
	"github.com/northlight-bi/northlight/internal/platform/db"
	"github.com/northlight-bi/northlight/internal/products"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	// View states degrade to defaults when Redis is down, so a failed ping
	// is a warning, not a startup failure.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	states := listview.NewStore(redisClient, cfg.ViewStateTTL)

	analyticsRepo := analytics.NewPgRepository(dbpool, cfg.QueryTimeout)
	analyticsService := analytics.NewService(analyticsRepo, analytics.Options{
		VIPThreshold: cfg.VIPThreshold,
		COGSRatio:    cfg.COGSRatio,
	})
	analyticsHandler := analytics.NewHandler(logger, analyticsService, metrics)

	ordersRepo := orders.NewRepository(dbpool, cfg.QueryTimeout)
	ordersService := orders.NewService(ordersRepo)
	ordersHandler := orders.NewHandler(logger, ordersService, states, cfg.OrdersPerPage)

	productsRepo := products.NewRepository(dbpool, cfg.QueryTimeout)
	productsService := products.NewService(productsRepo, cfg.ProductsPerPage)
	productsHandler := products.NewHandler(logger, productsService, states)

	customersRepo := customers.NewRepository(dbpool, cfg.QueryTimeout)
	customersService := customers.NewService(customersRepo, cfg.CustomersPerPage, cfg.VIPThreshold)
	customersHandler := customers.NewHandler(logger, customersService, states)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AnalyticsHandler: analyticsHandler,
		OrdersHandler:    ordersHandler,
		ProductsHandler:  productsHandler,
		CustomersHandler: customersHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
