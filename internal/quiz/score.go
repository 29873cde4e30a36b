package quiz

import (
	"math"
	"strings"

	"github.com/jonathan/mindwell/internal/db"
)

// neutralPercentage is used when a question set has no scorable maximum.
const neutralPercentage = 50

// Percentage scores numeric answers against the quiz's own question set:
// round(100 × Σanswers / Σmax), where a question without maxValue counts as 3.
// Answers to unknown question ids are ignored.
func Percentage(questions []db.QuizQuestion, answers []db.QuizAnswer) float64 {
	maxTotal := 0.0
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
		if q.MaxValue != nil {
			maxTotal += *q.MaxValue
		} else {
			maxTotal += scaleMax
		}
	}
	if maxTotal == 0 {
		return neutralPercentage
	}

	sum := 0.0
	for _, a := range answers {
		if !known[a.QuestionID] {
			continue
		}
		if v, ok := Numeric(a.Answer); ok {
			sum += v
		}
	}
	return math.Floor(100*sum/maxTotal + 0.5)
}

// Score computes the stored score for a generic quiz submission. PHQ-9 and
// GAD-7 quizzes score as the raw sum of answers, all-scale quizzes as a
// percentage, and anything else as 0.
func Score(q *db.Quiz, answers []db.QuizAnswer) float64 {
	switch strings.ToLower(q.Type) {
	case db.QuizPHQ9, db.QuizGAD7:
		sum := 0.0
		for _, a := range answers {
			if v, ok := Numeric(a.Answer); ok {
				sum += v
			}
		}
		return sum
	}
	if allScale(q.Questions) {
		return Percentage(q.Questions, answers)
	}
	return 0
}

func allScale(questions []db.QuizQuestion) bool {
	if len(questions) == 0 {
		return false
	}
	for _, q := range questions {
		if q.Type != "scale" {
			return false
		}
	}
	return true
}

// Numeric extracts a number from a decoded JSON answer.
func Numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
