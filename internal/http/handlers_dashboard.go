package http

import (
	"errors"
	"net/http"
	"strings"

	"territory/internal/core"
	"territory/internal/log"
	"territory/internal/services"
)

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	model, err := s.models.Dashboard(r.Context(), email)
	if err != nil {
		s.logger.Error("dashboard build failed", log.FieldOwner, email, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	s.metrics.DashboardRequests.Inc()
	writeJSON(w, http.StatusOK, model)
}

type cellEditPayload struct {
	Email    string  `json:"email"`
	Feed     string  `json:"feed"`
	Customer string  `json:"customer"`
	Month    string  `json:"month"`
	Value    float64 `json:"value"`
}

func (s *Server) handleEditCell(w http.ResponseWriter, r *http.Request) {
	var p cellEditPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if p.Customer == "" {
		writeError(w, http.StatusBadRequest, "customer is required")
		return
	}

	err := s.models.EditCell(r.Context(), email, core.FeedKind(p.Feed), p.Customer, core.MonthKey(p.Month), p.Value)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrRowNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, services.ErrReadOnlyFeed), errors.Is(err, core.ErrBadMonth):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	default:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.metrics.CellEdits.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleRefresh re-fetches the raw feeds, dropping every owner's built
// rows and pending cell edits.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.models.Refresh(r.Context()); err != nil {
		s.logger.Error("feed refresh failed", log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to refresh feeds")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
