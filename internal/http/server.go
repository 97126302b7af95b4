// Package http serves the settings and dashboard JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"territory/internal/log"
	"territory/internal/metrics"
	"territory/internal/services"
)

type Server struct {
	http.Server

	logger   *log.Logger
	settings *services.SettingsService
	models   *services.ModelService
	metrics  *metrics.Metrics

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, settingsSvc *services.SettingsService, modelSvc *services.ModelService, m *metrics.Metrics, logger *log.Logger) *Server {
	s := &Server{
		logger:   logger.WithComponent("http"),
		settings: settingsSvc,
		models:   modelSvc,
		metrics:  m,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/userData", s.handleGetUserData)
		r.Post("/userData", s.handlePostUserData)
		r.Delete("/userData", s.handleDeleteUserData)

		r.Get("/dashboard", s.handleGetDashboard)
		r.Post("/dashboard/cell", s.handleEditCell)
		r.Post("/dashboard/refresh", s.handleRefresh)
	})

	s.Server = http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Shutdown flushes pending settings writes before stopping the listener so
// a coalesced save is never lost to a restart.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.settings.Flush()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
