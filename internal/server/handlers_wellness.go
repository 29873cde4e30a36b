package server

import (
	"net/http"

	"github.com/jonathan/mindwell/internal/types"
)

// handleWellnessCurrent recomputes and returns this week's score.
func (s *Server) handleWellnessCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	score, err := s.aggregator.Current(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, score)
}

// handleWellnessHistory lists stored weekly scores, newest first.
func (s *Server) handleWellnessHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	limit := parseQueryInt(r, "limit", 10, 52)
	if limit == 0 {
		limit = 10
	}

	scores, err := s.store.ListWellnessScores(r.Context(), userID, limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(scores))
}

// handleWellnessCalculate recomputes the week containing the given date.
func (s *Server) handleWellnessCalculate(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.CalculateWellnessRequest
	if !s.decodeOptionalJSON(w, r, &req) {
		return
	}
	ref, err := s.parseDate(req.Date)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	score, err := s.aggregator.Calculate(r.Context(), userID, ref)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, score)
}
