package httpserver

import (
	"net/http"

	"github.com/wildwave/safari-admin/internal/server/httpserver/handler"
	"github.com/wildwave/safari-admin/internal/telemetry/logger"
	"github.com/wildwave/safari-admin/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Handler serves the API endpoints.
	Handler *handler.Handler

	// Verifier checks bearer tokens on admin routes.
	Verifier TokenVerifier

	// Logger is stored in every request context.
	Logger logger.Logger

	// Metrics enables request metrics and GET /metrics when set.
	Metrics *metric.Registry

	// BasePath prefixes every API route, e.g. "/api".
	BasePath string

	// CORSOrigins lists allowed browser origins. "*" allows any.
	CORSOrigins []string

	// RateLimit is the sustained request rate per client IP. Zero
	// disables limiting.
	RateLimit float64
	RateBurst int
}

// NewRouter creates the HTTP router with all routes and middleware.
//
// Order: RequestID -> Recover -> Audit -> Metrics -> CORS -> RateLimit -> mux.
// Admin routes additionally pass through Auth inside the mux.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	requireAuth := Auth(cfg.Verifier, cfg.Handler.AccountActive)
	for _, rt := range cfg.Handler.Routes() {
		var h http.Handler = rt.Handler
		if rt.Admin {
			h = requireAuth(h)
		}
		mux.Handle(rt.Method+" "+cfg.BasePath+rt.Path, h)
	}

	middlewares := []Middleware{
		RequestID(cfg.Logger),
		Recover(),
		Audit(),
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
		middlewares = append(middlewares, Metrics(cfg.Metrics))
	}
	if len(cfg.CORSOrigins) > 0 {
		middlewares = append(middlewares, CORS(cfg.CORSOrigins))
	}
	if cfg.RateLimit > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	return Chain(mux, middlewares...)
}
