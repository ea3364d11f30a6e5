package rest

import (
	"context"
	"net/http"

	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(httpPort string, handlers *SnapshotHandler, logger port.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(NewLoggerMiddleware(logger))

	r.Get("/healthz", handlers.Healthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/snapshot", handlers.GetSnapshot)
		r.Get("/listings", handlers.GetListings)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + httpPort,
			Handler: r,
		},
	}
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
