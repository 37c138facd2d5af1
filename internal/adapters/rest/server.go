package rest

import (
	"context"
	"net/http"
	"time"
	core_port "tool-catalog-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port               string
	CorsAllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter собирает маршруты. Вынесен отдельно, чтобы его можно было поднять в httptest.
func NewRouter(cfg ServerConfig,
	searchHandlers *SearchHandler,
	healthHandlers *HealthHandler,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	allowCredentials := true
	for _, origin := range cfg.CorsAllowedOrigins {
		if origin == "*" {
			allowCredentials = false
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tools/search", searchHandlers.SearchTools)
		r.Get("/tools/filter-options", searchHandlers.GetFilterOptions)
		r.Get("/health", healthHandlers.GetHealth)
	})

	// старый путь веб-клиента
	r.Get("/api/tools/search", searchHandlers.SearchTools)

	return r
}

func NewServer(cfg ServerConfig,
	searchHandlers *SearchHandler,
	healthHandlers *HealthHandler,
	baseLogger core_port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, searchHandlers, healthHandlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
