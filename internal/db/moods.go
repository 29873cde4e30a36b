package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const moodColumns = `id, user_id, score, emoji, note, created_at`

func scanMood(row pgx.Row) (*MoodEntry, error) {
	var m MoodEntry
	if err := row.Scan(&m.ID, &m.UserID, &m.Score, &m.Emoji, &m.Note, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMoodEntry inserts a mood check-in.
func (db *DB) CreateMoodEntry(ctx context.Context, userID string, score int, emoji, note *string) (*MoodEntry, error) {
	m, err := scanMood(db.pool.QueryRow(ctx,
		`INSERT INTO mood_entries (user_id, score, emoji, note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+moodColumns,
		userID, score, emoji, note,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}
	return m, nil
}

// ListMoodEntries returns a user's entries with from <= created_at < to, oldest first.
// A zero to leaves the range open.
func (db *DB) ListMoodEntries(ctx context.Context, userID string, from, to time.Time) ([]MoodEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+moodColumns+` FROM mood_entries
		 WHERE user_id = $1 AND created_at >= $2 AND ($3::timestamptz IS NULL OR created_at < $3)
		 ORDER BY created_at ASC`,
		userID, from, nullTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []MoodEntry
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	return entries, rows.Err()
}

// LatestMoodEntry returns the newest entry in [from, to), or nil, nil.
func (db *DB) LatestMoodEntry(ctx context.Context, userID string, from, to time.Time) (*MoodEntry, error) {
	m, err := scanMood(db.pool.QueryRow(ctx,
		`SELECT `+moodColumns+` FROM mood_entries
		 WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at DESC LIMIT 1`,
		userID, from, to,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest mood entry: %w", err)
	}
	return m, nil
}
