package wellness

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/mindwell/internal/db"
	"golang.org/x/sync/errgroup"
)

// Weights of each sub-score in the overall score, in percent.
const (
	moodWeight       = 35
	cognitiveWeight  = 25
	checklistWeight  = 25
	weeklyQuizWeight = 15
)

// Recommendations appended when the matching sub-score is below 50.
const (
	RecommendMood       = "Try a quick mood check-in and a short gratitude note today."
	RecommendCognitive  = "Do one focused cognitive exercise to boost attention."
	RecommendChecklist  = "Aim to complete at least two checklist items today."
	RecommendWeeklyQuiz = "Take the weekly check-in to get personalized recommendations."
)

// Store is the data the aggregator reads and writes.
type Store interface {
	ListMoodEntries(ctx context.Context, userID string, from, to time.Time) ([]db.MoodEntry, error)
	ListCognitiveEntries(ctx context.Context, userID string, from, to time.Time) ([]db.CognitiveEntry, error)
	ListChecklists(ctx context.Context, userID string, from, to time.Time) ([]db.DailyChecklist, error)
	FindQuizByType(ctx context.Context, quizType string, from, to time.Time) (*db.Quiz, error)
	LatestQuizResponse(ctx context.Context, userID string, quizID uuid.UUID) (*db.QuizResponse, error)
	UpsertWellnessScore(ctx context.Context, w *db.WellnessScore) (*db.WellnessScore, error)
}

// Scores are the four normalized sub-scores of a week.
type Scores struct {
	Mood       int
	Cognitive  int
	Checklist  int
	WeeklyQuiz int
}

// Overall combines the sub-scores with the fixed weights, rounding half up.
func (s Scores) Overall() int {
	weighted := s.Mood*moodWeight + s.Cognitive*cognitiveWeight +
		s.Checklist*checklistWeight + s.WeeklyQuiz*weeklyQuizWeight
	return clamp((weighted + 50) / 100)
}

// Recommendations returns one suggestion per sub-score below 50, in the
// order mood, cognitive, checklist, weekly quiz.
func (s Scores) Recommendations() []string {
	recs := []string{}
	if s.Mood < 50 {
		recs = append(recs, RecommendMood)
	}
	if s.Cognitive < 50 {
		recs = append(recs, RecommendCognitive)
	}
	if s.Checklist < 50 {
		recs = append(recs, RecommendChecklist)
	}
	if s.WeeklyQuiz < 50 {
		recs = append(recs, RecommendWeeklyQuiz)
	}
	return recs
}

// Aggregator computes and persists weekly wellness scores.
type Aggregator struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewAggregator creates an aggregator reporting weeks in loc.
func NewAggregator(store Store, loc *time.Location) *Aggregator {
	return &Aggregator{store: store, loc: loc, now: time.Now}
}

// WithClock overrides the clock used for "today" in the checklist score.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Current recomputes the score for the week containing now.
func (a *Aggregator) Current(ctx context.Context, userID string) (*db.WellnessScore, error) {
	return a.Calculate(ctx, userID, a.now())
}

// Calculate recomputes the score for the week containing ref and upserts it.
// Nothing is written unless every source read succeeds.
func (a *Aggregator) Calculate(ctx context.Context, userID string, ref time.Time) (*db.WellnessScore, error) {
	week := WeekOf(ref, a.loc)

	scores, err := a.Compute(ctx, userID, week)
	if err != nil {
		return nil, err
	}

	saved, err := a.store.UpsertWellnessScore(ctx, &db.WellnessScore{
		UserID:          userID,
		WeekOf:          db.DateOf(week.Start, a.loc),
		OverallScore:    scores.Overall(),
		MoodScore:       scores.Mood,
		CognitiveScore:  scores.Cognitive,
		ChecklistScore:  scores.Checklist,
		WeeklyQuizScore: scores.WeeklyQuiz,
		Recommendations: scores.Recommendations(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save wellness score: %w", err)
	}
	return saved, nil
}

// Compute reads the week's sources concurrently and normalizes them.
func (a *Aggregator) Compute(ctx context.Context, userID string, week Week) (Scores, error) {
	var (
		moods      []db.MoodEntry
		cognitive  []db.CognitiveEntry
		checklists []db.DailyChecklist
		latest     *db.QuizResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		moods, err = a.store.ListMoodEntries(gctx, userID, week.Start, week.End)
		return err
	})
	g.Go(func() error {
		var err error
		cognitive, err = a.store.ListCognitiveEntries(gctx, userID, week.Start, week.End)
		return err
	})
	g.Go(func() error {
		var err error
		checklists, err = a.store.ListChecklists(gctx, userID, db.DateOf(week.Start, a.loc), db.DateOf(week.LastDay(), a.loc))
		return err
	})
	g.Go(func() error {
		quiz, err := a.store.FindQuizByType(gctx, db.QuizWeekly, week.Start, week.End)
		if err != nil || quiz == nil {
			return err
		}
		latest, err = a.store.LatestQuizResponse(gctx, userID, quiz.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Scores{}, fmt.Errorf("failed to load weekly activity: %w", err)
	}

	return Scores{
		Mood:       MoodScore(moods),
		Cognitive:  CognitiveScore(cognitive),
		Checklist:  ChecklistScore(week, checklists, a.now(), a.loc),
		WeeklyQuiz: WeeklyQuizScore(latest),
	}, nil
}
