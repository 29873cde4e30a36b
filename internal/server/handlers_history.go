package server

import (
	"net/http"

	"github.com/jonathan/mindwell/internal/types"
)

// handleHistory returns the caller's activity grouped by day, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	days, err := s.feed.Build(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(days))
}

// handleChecklistToday returns today's checklist, creating it if needed.
func (s *Server) handleChecklistToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	checklist, err := s.store.GetOrCreateChecklist(r.Context(), userID, s.today())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, checklist)
}

// handleChecklistComplete ticks one task on today's checklist.
func (s *Server) handleChecklistComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.CompleteTaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	checklist, err := s.store.CompleteChecklistTask(r.Context(), userID, s.today(), req.Task)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, checklist)
}
