// Package survey scores the onboarding questionnaires.
package survey

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/types"
)

// UnknownTypeError is returned for a survey type with no scorer.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("invalid survey type: %q", e.Type)
}

// DecodeError wraps a malformed survey body.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid survey data: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Result is a scored submission ready to be stored.
type Result struct {
	Type    string
	Answers json.RawMessage
	Score   float64
}

// Score decodes, validates and scores a survey body of the given type.
// Validation failures are returned as validator.ValidationErrors.
func Score(surveyType string, body []byte) (*Result, error) {
	var (
		target any
		score  func() float64
	)

	switch surveyType {
	case db.SurveyPHQ9:
		s := &types.PHQ9Survey{}
		target, score = s, func() float64 { return SumItems(s.Questions) }
	case db.SurveyGAD7:
		s := &types.GAD7Survey{}
		target, score = s, func() float64 { return SumItems(s.Questions) }
	case db.SurveySleep:
		s := &types.SleepSurvey{}
		target, score = s, func() float64 { return Sleep(s) }
	case db.SurveySocial:
		s := &types.SocialSurvey{}
		target, score = s, func() float64 { return Social(s) }
	default:
		return nil, &UnknownTypeError{Type: surveyType}
	}

	if err := json.NewDecoder(bytes.NewReader(body)).Decode(target); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	if err := types.Validator().Struct(target); err != nil {
		return nil, err
	}

	answers, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	return &Result{Type: surveyType, Answers: answers, Score: score()}, nil
}

// SumItems is the PHQ-9 and GAD-7 score.
func SumItems(items []types.SurveyItem) float64 {
	var sum float64
	for _, it := range items {
		if it.Score != nil {
			sum += *it.Score
		}
	}
	return sum
}

// Sleep is the weighted sleep score on a 0–10 scale. Seven to nine hours
// per night earns full credit for duration.
func Sleep(s *types.SleepSurvey) float64 {
	hours := 5.0
	if h := *s.HoursPerNight; h >= 7 && h <= 9 {
		hours = 10
	}
	return *s.QualityRating*0.3 +
		hours*0.3 +
		(3-*s.TroubleFallingAsleep)*0.15 +
		(3-*s.TroubleStayingAsleep)*0.15 +
		*s.FeelingRested*0.1
}

// Social is the weighted connectedness score scaled to 0–10.
func Social(s *types.SocialSurvey) float64 {
	return (*s.SocialInteractions*0.25 +
		*s.FeelingConnected*0.3 +
		*s.SupportNetwork*0.25 +
		(3-*s.Loneliness)*0.2) * 10 / 3
}
