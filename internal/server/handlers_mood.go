package server

import (
	"net/http"
	"time"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/trends"
	"github.com/jonathan/mindwell/internal/types"
)

// handleCreateMood records a check-in, applies the low-mood rule and ticks
// moodCheckin.
func (s *Server) handleCreateMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.MoodRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	entry, err := s.store.CreateMoodEntry(r.Context(), userID, req.Score, req.Emoji, req.Note)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if _, err := s.monitor.MoodEntry(r.Context(), userID, entry.Score); err != nil {
		s.log.Warn("failed to record mood alert", "user_id", userID, "error", err)
	}
	s.markTask(r, userID, db.TaskMoodCheckin)

	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleMoodHistory lists check-ins in the days window, oldest first.
func (s *Server) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := trends.Window(s.now(), parseDays(r, 7), s.loc)
	entries, err := s.store.ListMoodEntries(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(entries))
}

// handleMoodToday returns today's latest check-in.
func (s *Server) handleMoodToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := trends.Window(s.now(), 1, s.loc)
	entry, err := s.store.LatestMoodEntry(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if entry == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "mood entry for today"})
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleMoodTrends returns daily averages and runs the sustained low mood rule.
func (s *Server) handleMoodTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	points, err := s.moodTrend(r, userID, parseDays(r, 30))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if _, err := s.monitor.MoodTrend(r.Context(), userID, points); err != nil {
		s.log.Warn("failed to record mood trend alert", "user_id", userID, "error", err)
	}
	s.jsonResponse(w, http.StatusOK, points)
}

func (s *Server) moodTrend(r *http.Request, userID string, days int) ([]trends.Point, error) {
	from, to := trends.Window(s.now(), days, s.loc)
	entries, err := s.store.ListMoodEntries(r.Context(), userID, from, to)
	if err != nil {
		return nil, err
	}
	return trends.Daily(trends.MoodSamples(entries), s.loc), nil
}

// window is the [from, to) range of the days query parameter.
func (s *Server) window(r *http.Request, defaultDays int) (time.Time, time.Time) {
	return trends.Window(s.now(), parseDays(r, defaultDays), s.loc)
}
