package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/wellness"
)

const weeklyDescription = "A brief weekly check-in to understand your well-being."

// Store is the quiz persistence the weekly service needs.
type Store interface {
	FindQuizByType(ctx context.Context, quizType string, from, to time.Time) (*db.Quiz, error)
	CreateQuiz(ctx context.Context, q *db.Quiz) (*db.Quiz, error)
	CreateQuizResponse(ctx context.Context, userID string, quizID uuid.UUID, answers []db.QuizAnswer, score float64) (*db.QuizResponse, error)
}

// Weekly materializes and scores the shared weekly check-in.
type Weekly struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewWeekly creates the weekly quiz service for weeks reported in loc.
func NewWeekly(store Store, loc *time.Location) *Weekly {
	return &Weekly{store: store, loc: loc, now: time.Now}
}

// WithClock overrides the clock used to pick the current week.
func (w *Weekly) WithClock(now func() time.Time) *Weekly {
	w.now = now
	return w
}

// Title returns the weekly quiz title for a week starting at weekStart.
func Title(weekStart time.Time) string {
	return fmt.Sprintf("Weekly Wellness Check (%s)", weekStart.Format(time.DateOnly))
}

// Current returns this week's quiz, creating it on first access. An existing
// row is reused unchanged.
func (w *Weekly) Current(ctx context.Context) (*db.Quiz, error) {
	week := wellness.WeekOf(w.now(), w.loc)

	existing, err := w.store.FindQuizByType(ctx, db.QuizWeekly, week.Start, week.End)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	desc := weeklyDescription
	created, err := w.store.CreateQuiz(ctx, &db.Quiz{
		Title:       Title(week.Start),
		Description: &desc,
		Type:        db.QuizWeekly,
		Questions:   WeeklyQuestions(week.Start),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to materialize weekly quiz: %w", err)
	}
	return created, nil
}

// Respond scores answers against this week's quiz and stores the response.
// It returns nil, nil when no weekly quiz exists for the current week.
func (w *Weekly) Respond(ctx context.Context, userID string, answers []db.QuizAnswer) (*db.QuizResponse, error) {
	week := wellness.WeekOf(w.now(), w.loc)

	q, err := w.store.FindQuizByType(ctx, db.QuizWeekly, week.Start, week.End)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}

	return w.store.CreateQuizResponse(ctx, userID, q.ID, answers, Percentage(q.Questions, answers))
}
