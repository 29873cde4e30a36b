// Package quiz builds the rotating weekly check-in and scores quiz submissions.
package quiz

import "github.com/jonathan/mindwell/internal/db"

// WeeklyQuestionCount is the number of pool questions asked each week.
const WeeklyQuestionCount = 7

const (
	scaleMin = 0.0
	scaleMax = 3.0
)

// pool is the fixed, ordered weekly question pool. Order matters: rotation
// indexes into it.
var pool = []db.QuizQuestion{
	scale("mood", "Over the past week, how often did you feel down, depressed, or hopeless?"),
	scale("interest", "Over the past week, how often did you have little interest or pleasure in doing things?"),
	scale("worry", "Over the past week, how often did you feel nervous, anxious, or on edge?"),
	scale("control", "Over the past week, how often did you find it hard to control your worrying?"),
	scale("sleep", "Over the past week, how often did you have trouble falling or staying asleep, or sleeping too much?"),
	scale("energy", "Over the past week, how often did you feel tired or have little energy?"),
	scale("appetite", "Over the past week, how often did you have poor appetite or overeating?"),
	scale("concentration", "Over the past week, how often did you have trouble concentrating on things?"),
	scale("restless", "Over the past week, how often did you become easily annoyed or irritable?"),
	scale("support", "Over the past week, how supported did you feel by people around you?"),
}

func scale(id, text string) db.QuizQuestion {
	lo, hi := scaleMin, scaleMax
	return db.QuizQuestion{ID: id, Text: text, Type: "scale", MinValue: &lo, MaxValue: &hi}
}

// Pool returns a copy of the weekly question pool.
func Pool() []db.QuizQuestion {
	out := make([]db.QuizQuestion, len(pool))
	copy(out, pool)
	return out
}
