// Package trends computes per-day averages for the trend endpoints.
package trends

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/mindwell/internal/db"
)

// Sample is one observation at an instant.
type Sample struct {
	At    time.Time
	Value float64
}

// Point is the average of a day's samples.
type Point struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
}

// Window returns the half-open range covering the last days calendar days in
// loc, today included. days below 1 is treated as 1.
func Window(now time.Time, days int, loc *time.Location) (from, to time.Time) {
	if days < 1 {
		days = 1
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, -(days - 1)), today.AddDate(0, 0, 1)
}

// Daily groups samples by calendar day in loc and averages each group.
// Points are returned oldest first.
func Daily(samples []Sample, loc *time.Location) []Point {
	type acc struct {
		sum   float64
		count int
	}
	byDay := make(map[string]*acc)
	for _, s := range samples {
		key := s.At.In(loc).Format(time.DateOnly)
		a, ok := byDay[key]
		if !ok {
			a = &acc{}
			byDay[key] = a
		}
		a.sum += s.Value
		a.count++
	}

	points := make([]Point, 0, len(byDay))
	for key, a := range byDay {
		points = append(points, Point{Date: key, AverageScore: a.sum / float64(a.count), Count: a.count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// MoodSamples adapts mood entries.
func MoodSamples(entries []db.MoodEntry) []Sample {
	out := make([]Sample, len(entries))
	for i, e := range entries {
		out[i] = Sample{At: e.CreatedAt, Value: float64(e.Score)}
	}
	return out
}

// SentimentSamples adapts journal entries, skipping unscored ones.
func SentimentSamples(entries []db.JournalEntry) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		if e.SentimentScore == nil {
			continue
		}
		out = append(out, Sample{At: e.CreatedAt, Value: *e.SentimentScore})
	}
	return out
}

// ExerciseScore is the value a cognitive entry contributes to trends:
// score, else comprehensionScore×10, else 0.
func ExerciseScore(e db.CognitiveEntry) float64 {
	switch {
	case e.Score != nil:
		return *e.Score
	case e.ComprehensionScore != nil:
		return *e.ComprehensionScore * 10
	default:
		return 0
	}
}

// Series is the daily trend of one exercise type.
type Series struct {
	ExerciseType string  `json:"exerciseType"`
	Data         []Point `json:"data"`
}

// ByExerciseType builds one series per exercise type that has entries, in
// the order of db.ExerciseTypes followed by any unknown types by name.
func ByExerciseType(entries []db.CognitiveEntry, loc *time.Location) []Series {
	grouped := make(map[string][]Sample)
	for _, e := range entries {
		t := e.ExerciseType
		if t == "" {
			t = "unknown"
		}
		grouped[t] = append(grouped[t], Sample{At: e.CreatedAt, Value: ExerciseScore(e)})
	}

	var order []string
	for _, t := range db.ExerciseTypes {
		if _, ok := grouped[t]; ok {
			order = append(order, t)
		}
	}
	var extra []string
	for t := range grouped {
		if !isKnownExercise(t) {
			extra = append(extra, t)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	series := make([]Series, 0, len(order))
	for _, t := range order {
		series = append(series, Series{ExerciseType: t, Data: Daily(grouped[t], loc)})
	}
	return series
}

func isKnownExercise(t string) bool {
	for _, known := range db.ExerciseTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ExerciseAverage is the average score of one exercise type.
type ExerciseAverage struct {
	Type         string  `json:"type"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
}

// Highlight names an exercise type and why it was chosen.
type Highlight struct {
	ExerciseType string `json:"exerciseType"`
	Reason       string `json:"reason"`
}

// Recommendations is the cognitive recommendation payload.
type Recommendations struct {
	FocusArea Highlight         `json:"focusArea"`
	Strengths Highlight         `json:"strengths"`
	AllScores []ExerciseAverage `json:"allScores"`
}

// defaultExerciseAverage applies to a type with no entries.
const defaultExerciseAverage = 50

// Recommend picks the weakest and strongest exercise types. Ties go to the
// type listed first in db.ExerciseTypes.
func Recommend(entries []db.CognitiveEntry) Recommendations {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range entries {
		t := e.ExerciseType
		if !isKnownExercise(t) {
			t = db.ExerciseProcessing
		}
		sums[t] += ExerciseScore(e)
		counts[t]++
	}

	lowest, highest := 100.0, 0.0
	lowestType, highestType := db.ExerciseTypes[0], db.ExerciseTypes[0]
	all := make([]ExerciseAverage, 0, len(db.ExerciseTypes))
	for _, t := range db.ExerciseTypes {
		avg := float64(defaultExerciseAverage)
		if counts[t] > 0 {
			avg = sums[t] / float64(counts[t])
		}
		if avg < lowest {
			lowest, lowestType = avg, t
		}
		if avg > highest {
			highest, highestType = avg, t
		}
		all = append(all, ExerciseAverage{Type: t, AverageScore: avg, Count: counts[t]})
	}

	return Recommendations{
		FocusArea: Highlight{
			ExerciseType: lowestType,
			Reason:       fmt.Sprintf("This is your lowest scoring area with an average of %.1f", lowest),
		},
		Strengths: Highlight{
			ExerciseType: highestType,
			Reason:       fmt.Sprintf("This is your strongest area with an average of %.1f", highest),
		},
		AllScores: all,
	}
}

// SentimentPoint is a daily journal sentiment average.
type SentimentPoint struct {
	Date             string  `json:"date"`
	AverageSentiment float64 `json:"averageSentiment"`
}

// Sentiment averages scored journal entries per day.
func Sentiment(entries []db.JournalEntry, loc *time.Location) []SentimentPoint {
	points := Daily(SentimentSamples(entries), loc)
	out := make([]SentimentPoint, len(points))
	for i, p := range points {
		out[i] = SentimentPoint{Date: p.Date, AverageSentiment: p.AverageScore}
	}
	return out
}
