package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const quizColumns = `id, title, description, type, category, frequency, questions, created_by, created_at`

func scanQuiz(row pgx.Row) (*Quiz, error) {
	var q Quiz
	if err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Type, &q.Category, &q.Frequency,
		&q.Questions, &q.CreatedBy, &q.CreatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuiz inserts a quiz.
func (db *DB) CreateQuiz(ctx context.Context, q *Quiz) (*Quiz, error) {
	created, err := scanQuiz(db.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, description, type, category, frequency, questions, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+quizColumns,
		q.Title, q.Description, q.Type, q.Category, q.Frequency, nonNil(q.Questions), q.CreatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	return created, nil
}

// GetQuiz retrieves a quiz by ID. Returns nil, nil when absent.
func (db *DB) GetQuiz(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	q, err := scanQuiz(db.pool.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return q, nil
}

// FindQuizByType returns the oldest quiz of quizType created in [from, to), or nil, nil.
func (db *DB) FindQuizByType(ctx context.Context, quizType string, from, to time.Time) (*Quiz, error) {
	q, err := scanQuiz(db.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes
		 WHERE type = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at ASC LIMIT 1`,
		quizType, from, to,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find quiz: %w", err)
	}
	return q, nil
}

// ListQuizzes returns every quiz, newest first.
func (db *DB) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

const responseColumns = `id, user_id, quiz_id, answers, score, created_at`

func scanResponse(row pgx.Row) (*QuizResponse, error) {
	var r QuizResponse
	if err := row.Scan(&r.ID, &r.UserID, &r.QuizID, &r.Answers, &r.Score, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateQuizResponse inserts a scored quiz submission.
func (db *DB) CreateQuizResponse(ctx context.Context, userID string, quizID uuid.UUID, answers []QuizAnswer, score float64) (*QuizResponse, error) {
	r, err := scanResponse(db.pool.QueryRow(ctx,
		`INSERT INTO quiz_responses (user_id, quiz_id, answers, score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+responseColumns,
		userID, quizID, nonNil(answers), score,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz response: %w", err)
	}
	return r, nil
}

// LatestQuizResponse returns the user's newest response to a quiz, or nil, nil.
func (db *DB) LatestQuizResponse(ctx context.Context, userID string, quizID uuid.UUID) (*QuizResponse, error) {
	r, err := scanResponse(db.pool.QueryRow(ctx,
		`SELECT `+responseColumns+` FROM quiz_responses
		 WHERE user_id = $1 AND quiz_id = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, quizID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest quiz response: %w", err)
	}
	return r, nil
}

// ListQuizResponses returns the user's responses created at or after since,
// newest first. A uuid.Nil quizID matches every quiz.
func (db *DB) ListQuizResponses(ctx context.Context, userID string, quizID uuid.UUID, since time.Time) ([]QuizResponse, error) {
	var quizParam *uuid.UUID
	if quizID != uuid.Nil {
		quizParam = &quizID
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+responseColumns+` FROM quiz_responses
		 WHERE user_id = $1 AND ($2::uuid IS NULL OR quiz_id = $2) AND created_at >= $3
		 ORDER BY created_at DESC`,
		userID, quizParam, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz responses: %w", err)
	}
	defer rows.Close()

	var responses []QuizResponse
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *r)
	}
	return responses, rows.Err()
}
