package server

import (
	"net/http"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/types"
)

// AlertListResponse is one page of alerts plus the caller's total.
type AlertListResponse struct {
	Alerts []db.RiskAlert `json:"alerts"`
	Total  int            `json:"total"`
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	limit := parseQueryInt(r, "limit", 10, 100)
	if limit == 0 {
		limit = 10
	}
	offset := parseQueryInt(r, "offset", 0, 0)

	alerts, total, err := s.store.ListRiskAlerts(r.Context(), userID, limit, offset)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AlertListResponse{Alerts: orEmpty(alerts), Total: total})
}

func (s *Server) handleUnacknowledgedAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	alerts, err := s.store.ListUnacknowledgedAlerts(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(alerts))
}

// handleCreateAlert records an alert raised by the client.
func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.AlertRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	alert, err := s.store.CreateRiskAlert(r.Context(), userID, req.Type, req.Source, req.Message, req.Severity)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, alert)
}

// handleAcknowledgeAlert marks one of the caller's alerts as seen. Alerts of
// other users are reported as missing and left untouched.
func (s *Server) handleAcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r, "id", "alert")
	if !ok {
		return
	}

	alert, err := s.store.AcknowledgeAlert(r.Context(), userID, id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if alert == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "alert"})
		return
	}
	s.jsonResponse(w, http.StatusOK, alert)
}
