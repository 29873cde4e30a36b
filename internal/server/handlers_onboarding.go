package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/mindwell/internal/server/middleware"
	"github.com/jonathan/mindwell/internal/survey"
	"github.com/jonathan/mindwell/internal/types"
)

// SurveySubmission is returned after a survey is scored and stored.
type SurveySubmission struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Score    float64 `json:"score"`
	Baseline bool    `json:"baseline"`
}

// BaselineStatus reports whether onboarding surveys are done.
type BaselineStatus struct {
	BaselineCompleted bool `json:"baselineCompleted"`
}

func (s *Server) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	profile, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile.ConsentSettings)
}

// handleUpdateConsent replaces the caller's consent settings. Omitted fields
// fall back to their defaults.
func (s *Server) handleUpdateConsent(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.ConsentRequest
	if !s.decodeOptionalJSON(w, r, &req) {
		return
	}

	email := middleware.GetEmail(r)
	if email == "" {
		email = PlaceholderEmail(userID)
	}
	profile, err := s.store.UpsertConsent(r.Context(), userID, email, req.Settings())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile.ConsentSettings)
}

// handleSubmitSurvey scores one onboarding survey. baseline=true also marks
// the baseline as completed.
func (s *Server) handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := survey.Score(r.PathValue("type"), body)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp, err := s.store.CreateSurveyResponse(r.Context(), userID, result.Type, result.Answers, result.Score)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	baseline := r.URL.Query().Get("baseline") == "true"
	if baseline {
		if err := s.store.SetBaselineCompleted(r.Context(), userID); err != nil {
			s.handleError(w, r, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, SurveySubmission{
		ID:       resp.ID.String(),
		Type:     result.Type,
		Score:    result.Score,
		Baseline: baseline,
	})
}

func (s *Server) handleBaselineStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	profile, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, BaselineStatus{BaselineCompleted: profile.BaselineCompleted})
}

// handleProfileMe returns the caller's profile.
func (s *Server) handleProfileMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	profile, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

