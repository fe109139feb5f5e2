package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/kounterpro/billing/internal/config"
	"github.com/kounterpro/billing/internal/http/apierr"
	"github.com/kounterpro/billing/internal/http/metric"
	"github.com/kounterpro/billing/internal/http/middleware"
	"github.com/kounterpro/billing/internal/service"
	"github.com/kounterpro/billing/internal/storage/db"
	"github.com/kounterpro/billing/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	invoiceSvc   service.InvoiceService
	inventorySvc service.InventoryService
	health       db.HealthChecker
	validator    validator.Validator
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	invoiceSvc service.InvoiceService,
	inventorySvc service.InventoryService,
	health db.HealthChecker,
) (*Service, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	return &Service{
		cfg:          cfg,
		logger:       log.With(slog.String("service", "http")),
		metrics:      metric.New(),
		invoiceSvc:   invoiceSvc,
		inventorySvc: inventorySvc,
		health:       health,
		validator:    v,
	}, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}

	r := chi.NewRouter()
	s.RegisterMiddlewares(r)
	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	invoiceH := newInvoiceHandler(s.invoiceSvc, s)
	inventoryH := newInventoryHandler(s.inventorySvc, s.validator, s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", invoiceH.create)
			r.Get("/", invoiceH.list)
			r.Get("/{invoiceID}", invoiceH.get)
			r.Delete("/{invoiceID}", invoiceH.delete)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/", inventoryH.create)
			r.Get("/", inventoryH.list)
			r.Get("/low-stock", inventoryH.listLowStock)
			r.Get("/{itemID}", inventoryH.get)
			r.Put("/{itemID}", inventoryH.update)
			r.Delete("/{itemID}", inventoryH.delete)
		})
	})

	r.Get("/healthz", s.handleHealthz)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if healthy, err := s.health.IsHealthy(r.Context()); err != nil || !healthy {
		s.logger.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
		s.writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding response", slog.Any("error", err))
	}
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

func (s *Service) writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.BadRequestErr

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	s.logger.WarnContext(r.Context(), "malformed request", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
