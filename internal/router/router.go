package router

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-geomapper/docs"
	"github.com/FACorreiaa/go-geomapper/internal/api"
	"github.com/FACorreiaa/go-geomapper/internal/api/locations"
	"github.com/FACorreiaa/go-geomapper/internal/shell"
)

// Probe is one readiness check. A nil error means ready.
type Probe func(ctx context.Context) error

// Config contains dependencies needed for the router setup
type Config struct {
	LocationsHandler    *locations.HandlerImpl
	ShellHandler        *shell.HandlerImpl
	SessionMiddleware   func(http.Handler) http.Handler
	RateLimitMiddleware func(http.Handler) http.Handler
	ReadinessProbes     map[string]Probe
	AllowedOrigins      []string
	StaticFS            fs.FS
	EnableSwagger       bool
}

// SetupRouter initializes and configures the application router.
// Server-wide middleware (request id, logger, recoverer) is applied by the caller.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/ready", readyHandler(cfg.ReadinessProbes))

	if cfg.StaticFS != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(cfg.StaticFS))))
	}
	if cfg.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	limit := cfg.RateLimitMiddleware
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.SessionMiddleware)

		r.Get("/", cfg.ShellHandler.Page)
		r.With(limit).Post("/search", cfg.ShellHandler.Search)
		r.Post("/clear", cfg.ShellHandler.Clear)
		r.Post("/route", cfg.ShellHandler.Route)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/session", cfg.ShellHandler.State)
			r.With(limit).Post("/locations", cfg.LocationsHandler.GenerateLocations)
		})
	})

	return r
}

func readyHandler(probes map[string]Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := api.StatusResponse{Status: "ok", Checks: make(map[string]string, len(probes))}
		status := http.StatusOK
		for name, probe := range probes {
			if err := probe(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		api.WriteJSONResponse(w, r, status, resp)
	}
}
