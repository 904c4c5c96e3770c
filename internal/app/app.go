package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"invsettle/internal/config"
	"invsettle/internal/infrastructure"
	custommiddleware "invsettle/internal/middleware"
	"invsettle/internal/persistence"
	"invsettle/internal/services"
	transporthttp "invsettle/internal/transport/http"
	"invsettle/pkg/contracts"
)

// Application holds the wired web server and its dependencies.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router chi.Router
	Server *http.Server
	Store  *persistence.Store

	invoiceService *services.InvoiceService
	healthService  *services.HealthService
}

// NewApplication creates a fully wired application from configuration.
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required for the web server")
	}
	store, err := persistence.Open(cfg.Database.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	app := &Application{
		Config:         cfg,
		Logger:         logger,
		Store:          store,
		invoiceService: services.NewInvoiceService(store, logger),
		healthService:  services.NewHealthService(contracts.Version),
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	rl := custommiddleware.NewRateLimiter(
		a.Config.Server.RateLimitRPS,
		a.Config.Server.RateLimitBurst,
		a.Logger,
	)

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Metrics)
	r.Use(custommiddleware.Recoverer(a.Logger))
	r.Use(rl.Handler)

	healthHandler := transporthttp.NewHealthHandler(a.healthService, a.Logger)
	invoiceHandler := transporthttp.NewInvoiceHandler(a.invoiceService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)
		r.Mount("/invoices", invoiceHandler.Routes())
	})
	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until an interrupt signal or a
// server failure, then shuts down within the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server starting",
			slog.String("addr", a.Server.Addr),
			slog.String("version", contracts.Version))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	infrastructure.CloseLogFile()
	if err != nil {
		return err
	}

	a.Logger.Info("server stopped", slog.String("uptime", a.uptime()))
	return nil
}

func (a *Application) uptime() string {
	return time.Since(a.healthService.StartedAt()).Round(time.Second).String()
}
