package server

import (
	"net/http"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/insight"
	"github.com/jonathan/mindwell/internal/trends"
	"github.com/jonathan/mindwell/internal/types"
)

// handleCreateJournal stores an entry with best-effort AI analysis. Risk
// flags raise an alert but are never echoed back.
func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	var req types.JournalRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	analysis, err := s.analyzer.AnalyzeJournal(r.Context(), req.Content)
	if err != nil {
		s.log.Warn("journal analysis unavailable", "user_id", userID, "error", err)
	}
	result := analysis.OrElse(insight.JournalAnalysis{})

	entry, err := s.store.CreateJournalEntry(r.Context(), userID, req.Content,
		result.SentimentScore, orEmpty(result.Keywords), orEmpty(result.RiskFlags))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, err := s.monitor.Journal(r.Context(), userID, result.RiskFlags); err != nil {
		s.log.Warn("failed to record journal alert", "user_id", userID, "error", err)
	}
	s.markTask(r, userID, db.TaskCreativeTask)

	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleJournalHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := s.window(r, 30)
	entries, err := s.store.ListJournalEntries(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(entries))
}

// handleGetJournal returns one of the caller's entries. Another user's entry
// is reported as missing.
func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := s.pathUUID(w, r, "id", "journal entry")
	if !ok {
		return
	}

	entry, err := s.store.GetJournalEntry(r.Context(), userID, id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if entry == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "journal entry"})
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleJournalSentimentTrends averages sentiment per day over scored entries.
func (s *Server) handleJournalSentimentTrends(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireCaller(w, r)
	if !ok {
		return
	}

	from, to := s.window(r, 30)
	entries, err := s.store.ListJournalEntries(r.Context(), userID, from, to)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, orEmpty(trends.Sentiment(entries, s.loc)))
}
