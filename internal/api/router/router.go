package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SakethSumanBathini/scam-shield-api/internal/http/handlers"
	httpmiddleware "github.com/SakethSumanBathini/scam-shield-api/internal/http/middleware"
	"github.com/SakethSumanBathini/scam-shield-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Honeypot       *handlers.HoneypotHandler
	MetricsHandler http.Handler
	Logger         *logging.Logger
	APIKey         string
	AllowedOrigins []string
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	h := cfg.Honeypot

	// Public endpoints.
	r.Group(func(public chi.Router) {
		if h != nil {
			public.Get("/", h.Root)
			public.Get("/api/health", h.Health)
			public.Get("/api/stats", h.PublicStats)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Everything else requires the x-api-key header.
	r.Group(func(protected chi.Router) {
		protected.Use(httpmiddleware.APIKey(cfg.APIKey))
		if h == nil {
			return
		}
		protected.Post("/api/honeypot", h.ProcessMessage)
		protected.Post("/api/honeypot/minimal", h.ProcessMessageMinimal)
		protected.Get("/api/sessions", h.ListSessions)
		protected.Get("/api/sessions/{sessionID}", h.GetSession)
		protected.Post("/api/sessions/{sessionID}/end", h.EndSession)
		protected.Get("/api/intelligence", h.GetIntelligence)
		protected.Get("/api/intelligence/search", h.SearchIntelligence)
		protected.Get("/api/analytics/dashboard", h.Dashboard)
		protected.Get("/api/analytics/detailed", h.DetailedAnalytics)
		protected.Post("/api/export/report", h.ExportReport)
		protected.Get("/api/sentiment/{sessionID}", h.Sentiment)
		protected.Get("/api/scammer-profiles", h.ScammerProfiles)
		protected.Get("/api/scammer-profile/{identifier}", h.ScammerProfile)
	})

	return r
}
