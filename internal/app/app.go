// Package app wires the application together: configuration, logger,
// token service, stores, handlers and the HTTP server lifecycle. All
// dependencies are constructed here and injected; there are no ambient
// globals.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"travlog/internal/config"
	apierrors "travlog/internal/errors"
	custommw "travlog/internal/middleware"
	"travlog/internal/token"
	handlers "travlog/internal/transport/http"
)

// Version is the reported application version
const Version = "v1.0.0"

// Application is the dependency container for the travlog server
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router *chi.Mux
	Server *http.Server

	tokens       *token.Service
	errorHandler *apierrors.ErrorHandler
	registry     *prometheus.Registry
}

// New builds an Application from its injected dependencies. The stores
// are interfaces so tests can compose the full router against fakes.
func New(cfg *config.Config, logger *slog.Logger, services handlers.ServiceStore, bookings handlers.BookingStore) *Application {
	app := &Application{
		Config:       cfg,
		Logger:       logger,
		tokens:       token.NewService([]byte(cfg.Auth.SigningKey), cfg.Auth.TokenTTL, cfg.Auth.Issuer, cfg.Auth.Production),
		errorHandler: apierrors.NewErrorHandler(logger),
		registry:     prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.setupRouter(services, bookings)

	app.Server = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter(services handlers.ServiceStore, bookings handlers.BookingStore) {
	r := chi.NewRouter()

	metrics := custommw.NewHTTPMetrics(a.registry)

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(metrics.Handler)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)

	if a.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins:   a.Config.Security.AllowedOrigins,
			AllowCredentials: true,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommw.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	authHandler := handlers.NewAuthHandler(a.tokens, a.Logger, a.errorHandler)
	serviceHandler := handlers.NewServiceHandler(services, a.Logger, a.errorHandler)
	bookingHandler := handlers.NewBookingHandler(bookings, a.Logger, a.errorHandler)
	healthHandler := handlers.NewHealthHandler(Version, a.Logger)

	authenticate := custommw.Authenticator(a.tokens, a.errorHandler, a.Logger)

	r.Get("/", healthHandler.Home)
	r.Method("GET", "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", healthHandler.Health)

		// Token lifecycle
		r.Post("/jwt", authHandler.CreateToken)
		r.Post("/logout", authHandler.Logout)

		// Public service reads and creation
		r.Get("/services", serviceHandler.List)
		r.Get("/search", serviceHandler.Search)
		r.Get("/services/{id}", serviceHandler.Get)
		r.Post("/services", serviceHandler.Create)

		// Protected routes: authentication, then per-endpoint ownership
		// guards inside the handlers
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/user-services", serviceHandler.ListByProvider)
			r.Put("/services/{id}", serviceHandler.Update)
			r.Delete("/services/{id}", serviceHandler.Delete)

			r.Post("/booking", bookingHandler.Create)
			r.Get("/booking", bookingHandler.ListByCustomer)
			r.Get("/orders", bookingHandler.ListByProvider)
			r.Put("/update-status/{id}", bookingHandler.UpdateStatus)
		})
	})

	a.Router = r
}

// Run starts the HTTP server and blocks until the context is cancelled
// or an interrupt arrives, then shuts down gracefully within the
// configured timeout.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", Version),
			slog.Bool("production", a.Config.Auth.Production),
		)
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		a.Logger.Info("shutting down server",
			slog.String("timeout", a.Config.Server.ShutdownTimeout.String()),
		)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
