package server

import (
	"net/http"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/trends"
	"github.com/jonathan/mindwell/internal/types"
)

// handleCreateCognitive records an exercise result. Entries tied to a video
// also tick videoSummary.
func (s *Server) handleCreateCognitive(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.CognitiveRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	entry, err := s.store.CreateCognitiveEntry(r.Context(), userID, &db.CognitiveEntryInput{
		ExerciseType: req.ExerciseType,
		Score:        req.Score,
		Duration:     req.Duration,
		Metadata:     req.Metadata,
		VideoID:      req.VideoID,
		Summary:      req.Summary,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if req.VideoID != nil && *req.VideoID != "" {
		s.markTask(r, userID, db.TaskVideoSummary)
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleCognitiveHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := s.window(r, 30)
	entries, err := s.store.ListCognitiveEntries(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(entries))
}

// handleCognitiveTrends returns one daily series per exercise type.
func (s *Server) handleCognitiveTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := s.window(r, 30)
	entries, err := s.store.ListCognitiveEntries(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(trends.ByExerciseType(entries, s.loc)))
}

// handleCognitiveRecommendations names the weakest and strongest exercise
// types over the last 30 days.
func (s *Server) handleCognitiveRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := s.window(r, 30)
	entries, err := s.store.ListCognitiveEntries(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, trends.Recommend(entries))
}
