package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/quiz"
	"github.com/jonathan/mindwell/internal/schemas"
	"github.com/jonathan/mindwell/internal/trends"
	"github.com/jonathan/mindwell/internal/types"
	"github.com/jonathan/mindwell/internal/wellness"
)

// QuizSubmission is returned after a quiz response is stored.
type QuizSubmission struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// QuizTrendResponse is the daily average score of one quiz.
type QuizTrendResponse struct {
	QuizID string         `json:"quizId"`
	Data   []trends.Point `json:"data"`
}

// handleWeeklyQuizCurrent returns this week's quiz, materializing it if needed.
func (s *Server) handleWeeklyQuizCurrent(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}

	q, err := s.weekly.Current(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, q)
}

// handleWeeklyQuizRespond scores an answer set against this week's quiz.
func (s *Server) handleWeeklyQuizRespond(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.WeeklyQuizResponseRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.weekly.Respond(r.Context(), userID, req.QuizAnswers())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if resp == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "weekly quiz"})
		return
	}
	s.jsonResponse(w, http.StatusCreated, QuizSubmission{ID: resp.ID.String(), Score: resp.Score})
}

// handleCreateQuiz lets an admin author a quiz.
func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	if err := s.profiles.RequireAdmin(r.Context(), userID, "create quiz"); err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.CreateQuizRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := schemas.ValidateQuizQuestions(req.Questions); err != nil {
		s.handleError(w, r, err)
		return
	}
	var questions []db.QuizQuestion
	if err := json.Unmarshal(req.Questions, &questions); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "questions", Message: "questions must be an array of question objects"})
		return
	}

	q := &db.Quiz{
		Title:     req.Title,
		Type:      req.Type,
		Questions: questions,
		CreatedBy: &userID,
	}
	if req.Description != "" {
		q.Description = &req.Description
	}
	if req.Category != "" {
		q.Category = &req.Category
	}
	if req.Frequency != "" {
		q.Frequency = &req.Frequency
	}

	created, err := s.store.CreateQuiz(r.Context(), q)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleAvailableQuizzes lists quizzes the caller can still take. Daily
// quizzes answered today and weekly quizzes answered this week are hidden.
func (s *Server) handleAvailableQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	quizzes, err := s.store.ListQuizzes(ctx)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	now := s.now()
	startOfDay, _ := trends.Window(now, 1, s.loc)
	startOfWeek := wellness.WeekOf(now, s.loc).Start

	available := make([]db.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		var since time.Time
		switch q.Type {
		case db.QuizDaily, db.QuizDailyAssessment:
			since = startOfDay
		case db.QuizWeekly:
			since = startOfWeek
		default:
			available = append(available, q)
			continue
		}
		responses, err := s.store.ListQuizResponses(ctx, userID, q.ID, since)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		if len(responses) == 0 {
			available = append(available, q)
		}
	}
	s.jsonResponse(w, http.StatusOK, available)
}

// handleGetQuiz returns one quiz.
func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireCaller(w, r); !ok {
		return
	}
	id, ok := s.pathUUID(w, r, "id", "quiz")
	if !ok {
		return
	}

	q, err := s.store.GetQuiz(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if q == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "quiz"})
		return
	}
	s.jsonResponse(w, http.StatusOK, q)
}

// handleQuizRespond scores and stores a response to any quiz.
func (s *Server) handleQuizRespond(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.QuizResponseRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	q, err := s.store.GetQuiz(r.Context(), req.QuizID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if q == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "quiz"})
		return
	}

	answers := types.ToAnswers(req.Answers)
	resp, err := s.store.CreateQuizResponse(r.Context(), userID, q.ID, answers, quiz.Score(q, answers))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if q.Type == db.QuizDailyAssessment {
		s.markTask(r, userID, db.TaskQuizCompleted)
	}
	s.jsonResponse(w, http.StatusCreated, QuizSubmission{ID: resp.ID.String(), Score: resp.Score})
}

// handleQuizHistory lists the caller's responses to one quiz.
func (s *Server) handleQuizHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	quizID, ok := s.pathUUID(w, r, "quizId", "quiz")
	if !ok {
		return
	}

	responses, err := s.store.ListQuizResponses(r.Context(), userID, quizID, time.Time{})
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, responses)
}

// handleQuizTrends averages the caller's quiz scores per day.
func (s *Server) handleQuizTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	quizID, ok := s.pathUUID(w, r, "quizId", "quiz")
	if !ok {
		return
	}

	from, _ := trends.Window(s.now(), parseDays(r, 90), s.loc)
	responses, err := s.store.ListQuizResponses(r.Context(), userID, quizID, from)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	samples := make([]trends.Sample, len(responses))
	for i, resp := range responses {
		samples[i] = trends.Sample{At: resp.CreatedAt, Value: resp.Score}
	}
	s.jsonResponse(w, http.StatusOK, QuizTrendResponse{QuizID: quizID.String(), Data: trends.Daily(samples, s.loc)})
}
