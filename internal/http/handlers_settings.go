package http

import (
	"errors"
	"net/http"
	"strings"

	"territory/internal/core"
	"territory/internal/log"
	"territory/internal/settings"
)

// userDataPayload mirrors the stored per-owner record, keyed by email on
// the wire.
type userDataPayload struct {
	Email                   string  `json:"email"`
	NETarget                float64 `json:"neTarget"`
	ConsumptionBaseline     float64 `json:"consumptionBaseline"`
	ConsumptionGrowthTarget float64 `json:"consumptionGrowthTarget"`
}

func (p userDataPayload) settings() core.TargetSettings {
	return core.TargetSettings{
		OwnerID:                 strings.TrimSpace(p.Email),
		NETarget:                p.NETarget,
		ConsumptionBaseline:     p.ConsumptionBaseline,
		ConsumptionGrowthTarget: p.ConsumptionGrowthTarget,
	}
}

func payloadFrom(ts core.TargetSettings) userDataPayload {
	return userDataPayload{
		Email:                   ts.OwnerID,
		NETarget:                ts.NETarget,
		ConsumptionBaseline:     ts.ConsumptionBaseline,
		ConsumptionGrowthTarget: ts.ConsumptionGrowthTarget,
	}
}

func (s *Server) handleGetUserData(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	ts, err := s.settings.Get(r.Context(), email)
	if errors.Is(err, settings.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user data not found")
		return
	}
	if err != nil {
		s.logger.Error("settings read failed", log.FieldOwner, email, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load user data")
		return
	}

	writeJSON(w, http.StatusOK, payloadFrom(ts))
}

func (s *Server) handlePostUserData(w http.ResponseWriter, r *http.Request) {
	var p userDataPayload
	if !decodeJSON(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := s.settings.Save(r.Context(), p.settings()); err != nil {
		s.logger.Error("settings save failed", log.FieldOwner, p.Email, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save user data")
		return
	}

	s.models.Invalidate(p.Email)
	s.metrics.SettingsWrites.Inc()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteUserData(w http.ResponseWriter, r *http.Request) {
	var p struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &p) {
		return
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	err := s.settings.Delete(r.Context(), email)
	if errors.Is(err, settings.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user data not found")
		return
	}
	if err != nil {
		s.logger.Error("settings delete failed", log.FieldOwner, email, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to delete user data")
		return
	}

	s.models.Invalidate(email)
	s.metrics.SettingsDeletes.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
