package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/mindwell/internal/content"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/history"
	"github.com/jonathan/mindwell/internal/quiz"
	"github.com/jonathan/mindwell/internal/risk"
	"github.com/jonathan/mindwell/internal/wellness"
)

// Store is everything the API reads and writes. *db.DB implements it.
type Store interface {
	wellness.Store
	quiz.Store
	history.Store
	risk.Store
	ProfileStore

	Ping(ctx context.Context) error

	ListWellnessScores(ctx context.Context, userID string, limit int) ([]db.WellnessScore, error)

	GetQuiz(ctx context.Context, id uuid.UUID) (*db.Quiz, error)
	ListQuizzes(ctx context.Context) ([]db.Quiz, error)
	ListQuizResponses(ctx context.Context, userID string, quizID uuid.UUID, since time.Time) ([]db.QuizResponse, error)

	GetOrCreateChecklist(ctx context.Context, userID string, date time.Time) (*db.DailyChecklist, error)
	CompleteChecklistTask(ctx context.Context, userID string, date time.Time, task string) (*db.DailyChecklist, error)

	CreateMoodEntry(ctx context.Context, userID string, score int, emoji, note *string) (*db.MoodEntry, error)
	LatestMoodEntry(ctx context.Context, userID string, from, to time.Time) (*db.MoodEntry, error)

	CreateCognitiveEntry(ctx context.Context, userID string, in *db.CognitiveEntryInput) (*db.CognitiveEntry, error)

	CreateJournalEntry(ctx context.Context, userID, content string, sentiment *float64, keywords, riskFlags []string) (*db.JournalEntry, error)
	GetJournalEntry(ctx context.Context, userID string, id uuid.UUID) (*db.JournalEntry, error)

	CreateDrawing(ctx context.Context, userID string, scene json.RawMessage, inputType string, textContent *string) (*db.Drawing, error)
	SetDrawingInsight(ctx context.Context, id uuid.UUID, insight string) error

	ListRiskAlerts(ctx context.Context, userID string, limit, offset int) ([]db.RiskAlert, int, error)
	ListUnacknowledgedAlerts(ctx context.Context, userID string) ([]db.RiskAlert, error)
	AcknowledgeAlert(ctx context.Context, userID string, id uuid.UUID) (*db.RiskAlert, error)

	UpsertConsent(ctx context.Context, userID, email string, consent db.ConsentSettings) (*db.UserProfile, error)
	SetBaselineCompleted(ctx context.Context, userID string) error
	CreateSurveyResponse(ctx context.Context, userID, surveyType string, answers json.RawMessage, score float64) (*db.SurveyResponse, error)

	ListBooks(ctx context.Context) ([]db.Book, error)
	ListVideos(ctx context.Context) ([]db.Video, error)
}

// BookSource searches and pages public-domain books.
type BookSource interface {
	Search(ctx context.Context, query string, page int) (*content.BookPage, error)
	Content(ctx context.Context, id string, page, pageSize int) (*content.BookContent, error)
}

// VideoSearcher searches an external video catalog.
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]content.VideoResult, error)
}

// MusicSource lists calm-music playlists and their previewable tracks.
type MusicSource interface {
	Playlists(ctx context.Context) ([]content.Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string) ([]content.Track, error)
}

var _ Store = (*db.DB)(nil)
