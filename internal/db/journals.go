package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const journalColumns = `id, user_id, content, sentiment_score, keywords, risk_flags, created_at`

func scanJournal(row pgx.Row) (*JournalEntry, error) {
	var j JournalEntry
	if err := row.Scan(&j.ID, &j.UserID, &j.Content, &j.SentimentScore, &j.Keywords, &j.RiskFlags, &j.CreatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJournalEntry inserts a journal entry with whatever enrichment is available.
func (db *DB) CreateJournalEntry(ctx context.Context, userID, content string, sentiment *float64, keywords, riskFlags []string) (*JournalEntry, error) {
	j, err := scanJournal(db.pool.QueryRow(ctx,
		`INSERT INTO journal_entries (user_id, content, sentiment_score, keywords, risk_flags)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+journalColumns,
		userID, content, sentiment, nonNil(keywords), nonNil(riskFlags),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return j, nil
}

// ListJournalEntries returns a user's entries with from <= created_at < to, newest first.
// A zero to leaves the range open.
func (db *DB) ListJournalEntries(ctx context.Context, userID string, from, to time.Time) ([]JournalEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+journalColumns+` FROM journal_entries
		 WHERE user_id = $1 AND created_at >= $2 AND ($3::timestamptz IS NULL OR created_at < $3)
		 ORDER BY created_at DESC`,
		userID, from, nullTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *j)
	}
	return entries, rows.Err()
}

// GetJournalEntry retrieves one of the user's entries. Returns nil, nil when
// absent or owned by someone else.
func (db *DB) GetJournalEntry(ctx context.Context, userID string, id uuid.UUID) (*JournalEntry, error) {
	j, err := scanJournal(db.pool.QueryRow(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return j, nil
}
