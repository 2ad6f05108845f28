package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/webigo-agency/webigo-backend/internal/devis"
	httpmiddleware "github.com/webigo-agency/webigo-backend/internal/http/middleware"
	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	DevisHandler       *devis.Handler
	AdminJWTSecret     string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Rate limiting for the public quote form; zero values disable it.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Route("/api", func(api chi.Router) {
			if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
				api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			}
			api.Post("/devis", cfg.DevisHandler.CreateSubmission)
		})
	})

	// Admin routes (protected by HMAC-signed JWT)
	if cfg.AdminJWTSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			admin.Get("/devis", cfg.DevisHandler.ListSubmissions)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
