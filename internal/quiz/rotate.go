package quiz

import (
	"time"

	"github.com/jonathan/mindwell/internal/db"
)

const msPerDay = 86_400_000

// Seed is the whole number of days between the Unix epoch and weekStart.
func Seed(weekStart time.Time) int64 {
	ms := weekStart.UnixMilli()
	seed := ms / msPerDay
	if ms%msPerDay < 0 {
		seed-- // floor for pre-epoch dates
	}
	return seed
}

// WeeklyQuestions returns the week's question set: the pool rotated to start
// at Seed(weekStart) mod len(pool), truncated to WeeklyQuestionCount.
// The result depends only on weekStart.
func WeeklyQuestions(weekStart time.Time) []db.QuizQuestion {
	n := int64(len(pool))
	start := ((Seed(weekStart) % n) + n) % n

	out := make([]db.QuizQuestion, 0, WeeklyQuestionCount)
	for i := int64(0); i < int64(WeeklyQuestionCount); i++ {
		out = append(out, pool[(start+i)%n])
	}
	return out
}
