package api

import (
	"context"
	"customer-api/internal/api/handler"
	mw "customer-api/internal/api/middleware"
	"customer-api/internal/config"
	"customer-api/internal/domain/customer"
	"customer-api/internal/event"
	"customer-api/internal/infrastructure/token"
	"log/slog"
	"net/http"
	"time"

	_ "customer-api/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Dependencies struct {
	Customers   handler.CustomerServices
	Identifier  customer.CustomerIdentifier
	Verifier    token.Verifier
	Revocations token.RevocationList
	Publisher   event.EventPublisher
}

// SetupRouter wires every route. ctx bounds background work owned by the
// middleware chain, such as rate limiter eviction.
func SetupRouter(ctx context.Context, deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	router.Route("/api", func(r chi.Router) {
		setupAuthRoutes(r, deps, logger)
		setupCustomerRoutes(r, deps, cfg, logger)
	})

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(r chi.Router, deps Dependencies, logger *slog.Logger) {
	h := handler.NewAuthHandler(deps.Identifier, deps.Customers.Getter, deps.Verifier, deps.Revocations, logger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/verify", h.VerifyToken)
		r.Post("/logout", h.Logout)
	})
}

func setupCustomerRoutes(r chi.Router, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCustomerHandler(deps.Customers, deps.Publisher, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.CreateCustomer)

		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(cfg.Server.Auth, deps.Verifier, deps.Revocations, logger))
			r.Get("/", h.ListCustomers)
			r.Get("/{customerID}", h.GetCustomer)
			r.Put("/taxpayer/{taxpayerID}", h.UpdateCustomer)
			r.Delete("/taxpayer/{taxpayerID}", h.DeactivateCustomer)
		})
	})
}
