package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/craftcollective/craft-market/api/routes"
	"github.com/craftcollective/craft-market/internal/accounts"
	"github.com/craftcollective/craft-market/internal/blog"
	"github.com/craftcollective/craft-market/internal/customizations"
	"github.com/craftcollective/craft-market/internal/orders"
	"github.com/craftcollective/craft-market/internal/products"
	"github.com/craftcollective/craft-market/internal/vendors"
	"github.com/craftcollective/craft-market/pkg/config"
	"github.com/craftcollective/craft-market/pkg/logger"
	"github.com/craftcollective/craft-market/pkg/metrics"
	"github.com/craftcollective/craft-market/pkg/redis"
	"github.com/craftcollective/craft-market/pkg/store"
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
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataStore, err := store.Open(cfg.Store.DataDir)
	if err != nil {
		logg.Error(ctx, "failed to open data directory", err)
		os.Exit(1)
	}
	if err := dataStore.Ping(ctx); err != nil {
		logg.Error(ctx, "data directory is not writable", err)
		os.Exit(1)
	}

	productsRepo := products.NewRepository(dataStore)
	vendorsRepo := vendors.NewRepository(dataStore)

	svc := routes.Services{}
	if svc.Accounts, err = accounts.NewService(accounts.ServiceParams{
		Accounts:       accounts.NewRepository(dataStore),
		Vendors:        vendorsRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	}); err != nil {
		logg.Error(ctx, "failed to create accounts service", err)
		os.Exit(1)
	}
	if svc.Vendors, err = vendors.NewService(vendorsRepo, productsRepo); err != nil {
		logg.Error(ctx, "failed to create vendors service", err)
		os.Exit(1)
	}
	if svc.Products, err = products.NewService(productsRepo); err != nil {
		logg.Error(ctx, "failed to create products service", err)
		os.Exit(1)
	}
	if svc.Customizations, err = customizations.NewService(customizations.NewRepository(dataStore), productsRepo); err != nil {
		logg.Error(ctx, "failed to create customizations service", err)
		os.Exit(1)
	}
	if svc.Orders, err = orders.NewService(orders.NewRepository(dataStore), productsRepo); err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}
	if svc.Blog, err = blog.NewService(dataStore); err != nil {
		logg.Error(ctx, "failed to create blog service", err)
		os.Exit(1)
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		svc.RateLimiter = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limiting disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc.Metrics = metrics.NewHTTPMetrics(reg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"data_dir": dataStore.Dir(),
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      routes.NewRouter(cfg, logg, svc),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logg.Info(groupCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logg.Info(ctx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
