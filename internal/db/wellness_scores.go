package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const wellnessColumns = `id, user_id, week_of, overall_score, mood_score, cognitive_score, checklist_score, weekly_quiz_score, stress_score, recommendations, created_at, updated_at`

func scanWellness(row pgx.Row) (*WellnessScore, error) {
	var w WellnessScore
	if err := row.Scan(&w.ID, &w.UserID, &w.WeekOf, &w.OverallScore, &w.MoodScore, &w.CognitiveScore,
		&w.ChecklistScore, &w.WeeklyQuizScore, &w.StressScore, &w.Recommendations, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// UpsertWellnessScore writes the score for (UserID, WeekOf) in one statement,
// overwriting every score field and keeping created_at.
func (db *DB) UpsertWellnessScore(ctx context.Context, w *WellnessScore) (*WellnessScore, error) {
	saved, err := scanWellness(db.pool.QueryRow(ctx,
		`INSERT INTO wellness_scores
		   (user_id, week_of, overall_score, mood_score, cognitive_score, checklist_score, weekly_quiz_score, stress_score, recommendations)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id, week_of) DO UPDATE SET
		   overall_score = EXCLUDED.overall_score,
		   mood_score = EXCLUDED.mood_score,
		   cognitive_score = EXCLUDED.cognitive_score,
		   checklist_score = EXCLUDED.checklist_score,
		   weekly_quiz_score = EXCLUDED.weekly_quiz_score,
		   stress_score = EXCLUDED.stress_score,
		   recommendations = EXCLUDED.recommendations,
		   updated_at = NOW()
		 RETURNING `+wellnessColumns,
		w.UserID, w.WeekOf, w.OverallScore, w.MoodScore, w.CognitiveScore,
		w.ChecklistScore, w.WeeklyQuizScore, w.StressScore, nonNil(w.Recommendations),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert wellness score: %w", err)
	}
	return saved, nil
}

// ListWellnessScores returns the user's most recent scores, newest week first.
func (db *DB) ListWellnessScores(ctx context.Context, userID string, limit int) ([]WellnessScore, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+wellnessColumns+` FROM wellness_scores
		 WHERE user_id = $1 ORDER BY week_of DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wellness scores: %w", err)
	}
	defer rows.Close()

	var scores []WellnessScore
	for rows.Next() {
		w, err := scanWellness(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, *w)
	}
	return scores, rows.Err()
}
