package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feder/internal/platform/metrics"
	"feder/pkg/platform/httputil"
	"feder/pkg/platform/middleware/auth"
	"feder/pkg/platform/middleware/metadata"
	"feder/pkg/platform/middleware/request"
	"feder/pkg/platform/middleware/requesttime"
	"feder/pkg/platform/middleware/secret"
)

// Mount registers one context's routes on a sub-router.
type Mount func(r chi.Router)

// Webhook is the mail gateway endpoint; guards wrap it after the method check.
type Webhook interface {
	RegisterWebhook(r chi.Router, guards ...func(http.Handler) http.Handler)
}

type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config lists what the router mounts. Public routes live under /api, operator
// routes under /admin.
type Config struct {
	Logger  *slog.Logger
	Tokens  auth.TokenValidator
	Metrics *metrics.Metrics
	Health  HealthChecker

	Webhook           Webhook
	WebhookSecret     string
	WebhookRateLimit  int
	WebhookRateWindow time.Duration

	Public []Mount
	Admin  []Mount
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewRouter wires the shared middleware chain and every context's routes.
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/health", healthHandler(cfg.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if cfg.Webhook != nil {
			cfg.Webhook.RegisterWebhook(r,
				httprate.LimitByIP(cfg.WebhookRateLimit, cfg.WebhookRateWindow),
				secret.RequireQuerySecret("secret", cfg.WebhookSecret, cfg.Logger),
			)
		}
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalOperator(cfg.Tokens, cfg.Logger))
			for _, mount := range cfg.Public {
				mount(r)
			}
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireOperator(cfg.Tokens, cfg.Logger))
		for _, mount := range cfg.Admin {
			mount(r)
		}
	})
	return r
}

func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
