package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const cognitiveColumns = `id, user_id, exercise_type, score, comprehension_score, duration, metadata, video_id, summary, created_at`

func scanCognitive(row pgx.Row) (*CognitiveEntry, error) {
	var c CognitiveEntry
	if err := row.Scan(&c.ID, &c.UserID, &c.ExerciseType, &c.Score, &c.ComprehensionScore,
		&c.Duration, &c.Metadata, &c.VideoID, &c.Summary, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CognitiveEntryInput holds the fields for a new cognitive entry. A nil Score
// is stored as NULL, as for video summaries.
type CognitiveEntryInput struct {
	ExerciseType string
	Score        *float64
	Duration     int
	Metadata     map[string]any
	VideoID      *string
	Summary      string
}

// CreateCognitiveEntry inserts a cognitive exercise result.
func (db *DB) CreateCognitiveEntry(ctx context.Context, userID string, in *CognitiveEntryInput) (*CognitiveEntry, error) {
	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	c, err := scanCognitive(db.pool.QueryRow(ctx,
		`INSERT INTO cognitive_entries (user_id, exercise_type, score, duration, metadata, video_id, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+cognitiveColumns,
		userID, in.ExerciseType, in.Score, in.Duration, metadata, in.VideoID, in.Summary,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create cognitive entry: %w", err)
	}
	return c, nil
}

// ListCognitiveEntries returns a user's entries with from <= created_at < to, oldest first.
// A zero to leaves the range open.
func (db *DB) ListCognitiveEntries(ctx context.Context, userID string, from, to time.Time) ([]CognitiveEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+cognitiveColumns+` FROM cognitive_entries
		 WHERE user_id = $1 AND created_at >= $2 AND ($3::timestamptz IS NULL OR created_at < $3)
		 ORDER BY created_at ASC`,
		userID, from, nullTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cognitive entries: %w", err)
	}
	defer rows.Close()

	var entries []CognitiveEntry
	for rows.Next() {
		c, err := scanCognitive(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *c)
	}
	return entries, rows.Err()
}
