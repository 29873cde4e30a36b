package wellness

import (
	"math"
	"time"

	"github.com/jonathan/mindwell/internal/db"
)

const (
	neutralMoodAverage = 5.0
	neutralScore       = 50
	trackedTasks       = 3
)

// MoodScore maps the week's mean mood (1-10) to 0-100. No entries count as a
// neutral average of 5.
func MoodScore(entries []db.MoodEntry) int {
	avg := neutralMoodAverage
	if len(entries) > 0 {
		sum := 0
		for _, e := range entries {
			sum += e.Score
		}
		avg = float64(sum) / float64(len(entries))
	}
	return clamp(roundHalfUp(avg * 10))
}

// CognitiveScore averages each entry's score, falling back to
// comprehensionScore×10 and then to 50. No entries yield 50.
func CognitiveScore(entries []db.CognitiveEntry) int {
	if len(entries) == 0 {
		return neutralScore
	}
	sum := 0.0
	for _, e := range entries {
		switch {
		case e.Score != nil:
			sum += *e.Score
		case e.ComprehensionScore != nil:
			sum += *e.ComprehensionScore * 10
		default:
			sum += neutralScore
		}
	}
	return clamp(roundHalfUp(sum / float64(len(entries))))
}

// ChecklistScore averages the per-day completion of describedDay, videoSummary
// and readBook over the week's days up to and including now's day. A day
// without a checklist row counts as 0%. No elapsed days yield 0.
func ChecklistScore(week Week, lists []db.DailyChecklist, now time.Time, loc *time.Location) int {
	byDay := make(map[string]db.DailyChecklist, len(lists))
	for _, c := range lists {
		byDay[c.Date.UTC().Format(time.DateOnly)] = c
	}

	total, days := 0, 0
	for _, day := range week.Days() {
		if day.After(now) {
			break
		}
		days++
		c, ok := byDay[db.DateOf(day, loc).Format(time.DateOnly)]
		if !ok {
			continue
		}
		completed := 0
		for _, done := range []bool{c.DescribedDay, c.VideoSummary, c.ReadBook} {
			if done {
				completed++
			}
		}
		total += roundHalfUp(float64(completed) / trackedTasks * 100)
	}
	if days == 0 {
		return 0
	}
	return clamp(roundHalfUp(float64(total) / float64(days)))
}

// WeeklyQuizScore returns the latest response's score, or 50 when there is none.
func WeeklyQuizScore(latest *db.QuizResponse) int {
	if latest == nil {
		return neutralScore
	}
	return clamp(roundHalfUp(latest.Score))
}

func clamp(v int) int {
	return max(0, min(100, v))
}

// roundHalfUp rounds .5 toward +Inf, matching the scores shown to users.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
