package db

import (
	"context"
	"encoding/json"
	"fmt"
)

// CreateSurveyResponse inserts a scored survey submission.
func (db *DB) CreateSurveyResponse(ctx context.Context, userID, surveyType string, answers json.RawMessage, score float64) (*SurveyResponse, error) {
	var s SurveyResponse
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`INSERT INTO survey_responses (user_id, survey_type, answers, score)
		 VALUES ($1, $2, $3::jsonb, $4)
		 RETURNING id, user_id, survey_type, answers, score, created_at`,
		userID, surveyType, string(answers), score,
	).Scan(&s.ID, &s.UserID, &s.SurveyType, &raw, &s.Score, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create survey response: %w", err)
	}
	s.Answers = raw
	return &s, nil
}
