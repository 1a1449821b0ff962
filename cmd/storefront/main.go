package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront/internal/client"
	"storefront/internal/config"
	httpapi "storefront/internal/http"
	"storefront/internal/repository"
	"storefront/internal/service"

	_ "storefront/docs"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "session cart and checkout service",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to YAML config", EnvVars: []string{"STOREFRONT_CONFIG"}},
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides config"},
					&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
				},
				Action: serve,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	if c.Bool("verbose") {
		cfg.Logging.Level = "debug"
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	discounts, err := discountPolicy(cfg.Cart.DiscountPoints)
	if err != nil {
		return err
	}

	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)

	hc := client.NewHTTPClient(cfg.Backend.RequestTimeout)
	regions := client.NewRegionsClient(cfg.Backend.BaseURL, hc)
	orders := client.NewOrdersClient(cfg.Backend.BaseURL, hc, client.BreakerSettings{
		MaxFailures: cfg.Backend.MaxFailures,
		OpenTimeout: cfg.Backend.OpenTimeout,
	})

	sessions := service.NewSessions(service.SessionDeps{
		Repo:      store,
		Tx:        tx,
		Discounts: discounts,
		Regions:   regions,
		Transport: orders,
		Logger:    logger,
	})

	srv := httpapi.NewServer(sessions, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: srv.Engine(),
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessions, cfg.Sessions, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr), zap.String("backend", cfg.Backend.BaseURL))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func discountPolicy(points string) (service.DiscountPolicy, error) {
	if points == "" {
		return service.NoDiscount{}, nil
	}
	d, err := decimal.NewFromString(points)
	if err != nil {
		return nil, fmt.Errorf("discount_points: %w", err)
	}
	if !d.IsPositive() {
		return service.NoDiscount{}, nil
	}
	return service.FixedDiscount{Points: d}, nil
}

// sweepSessions закрывает простаивающие сессии вместе с корзинами
func sweepSessions(ctx context.Context, sessions *service.Sessions, cfg config.SessionsConfig, log *zap.Logger) {
	if cfg.SweepInterval <= 0 || cfg.MaxIdle <= 0 {
		return
	}
	t := time.NewTicker(cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Expire(ctx, cfg.MaxIdle); n > 0 {
				log.Info("sessions expired", zap.Int("count", n))
			}
		}
	}
}
