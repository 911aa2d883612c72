package rest

import (
	"context"
	core_port "listing-service/internal/core/port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// ServerConfig - параметры HTTP-сервера.
type ServerConfig struct {
	Port               string
	CorsAllowedOrigins []string
}

// NewRouter собирает роутер отдельно от http.Server, чтобы его можно было гонять в тестах.
func NewRouter(cfg ServerConfig,
	listingsHandlers *ListingsHandler,
	favoritesHandlers *FavoritesHandler,
	metricsHandler http.Handler,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings", listingsHandlers.Search)
		r.Get("/listings/featured", listingsHandlers.Featured)
		r.Get("/listings/{identifier}", listingsHandlers.GetProperty)
		r.Put("/listings/{identifier}", listingsHandlers.UpdateProperty)

		r.Get("/favorites", favoritesHandlers.List)
		r.Put("/favorites/{propertyID}", favoritesHandlers.Add)
		r.Delete("/favorites/{propertyID}", favoritesHandlers.Remove)
		r.Post("/favorites/{propertyID}/toggle", favoritesHandlers.Toggle)
	})

	return r
}

func NewServer(cfg ServerConfig,
	listingsHandlers *ListingsHandler,
	favoritesHandlers *FavoritesHandler,
	metricsHandler http.Handler,
	baseLogger core_port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: NewRouter(cfg, listingsHandlers, favoritesHandlers, metricsHandler, baseLogger),
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
