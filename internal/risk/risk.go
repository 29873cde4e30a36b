// Package risk decides when user activity warrants a risk alert and records it.
package risk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/mindwell/internal/db"
	"github.com/jonathan/mindwell/internal/logger"
	"github.com/jonathan/mindwell/internal/trends"
)

// Thresholds on the 1–10 mood scale.
const (
	LowMoodMedium = 3
	LowMoodHigh   = 2

	TrendDays      = 3
	TrendThreshold = 4.0
	TrendHigh      = 3.0

	// JournalHighFlags is the flag count above which a journal alert is high.
	JournalHighFlags = 2
)

// Alert is an alert that a rule wants raised.
type Alert struct {
	Type     string
	Source   string
	Message  string
	Severity string
}

// ForMood checks a single mood check-in.
func ForMood(score int) (Alert, bool) {
	if score > LowMoodMedium {
		return Alert{}, false
	}
	severity := db.SeverityMedium
	if score <= LowMoodHigh {
		severity = db.SeverityHigh
	}
	return Alert{
		Type:     db.AlertMood,
		Source:   db.SourceMoodEntry,
		Message:  fmt.Sprintf("Low mood score detected: %d/10", score),
		Severity: severity,
	}, true
}

// ForMoodTrend checks the most recent daily mood averages. points must be
// oldest first.
func ForMoodTrend(points []trends.Point) (Alert, bool) {
	if len(points) < TrendDays {
		return Alert{}, false
	}
	var sum float64
	for _, p := range points[len(points)-TrendDays:] {
		sum += p.AverageScore
	}
	avg := sum / TrendDays
	if avg > TrendThreshold {
		return Alert{}, false
	}
	severity := db.SeverityMedium
	if avg <= TrendHigh {
		severity = db.SeverityHigh
	}
	return Alert{
		Type:     db.AlertMoodTrend,
		Source:   db.SourceMoodAnalysis,
		Message:  fmt.Sprintf("Persistent low mood detected over the past 3 days (avg: %.1f/10)", avg),
		Severity: severity,
	}, true
}

// ForJournal checks the risk flags extracted from a journal entry.
func ForJournal(flags []string) (Alert, bool) {
	if len(flags) == 0 {
		return Alert{}, false
	}
	severity := db.SeverityMedium
	if len(flags) > JournalHighFlags {
		severity = db.SeverityHigh
	}
	return Alert{
		Type:     db.AlertJournal,
		Source:   db.SourceJournalEntry,
		Message:  "Potential concerns detected in journal: " + strings.Join(flags, ", "),
		Severity: severity,
	}, true
}

// Store persists alerts.
type Store interface {
	CreateRiskAlert(ctx context.Context, userID, alertType, source, message, severity string) (*db.RiskAlert, error)
	HasOpenAlertSince(ctx context.Context, userID, alertType string, since time.Time) (bool, error)
}

// Monitor applies the rules and records the resulting alerts.
type Monitor struct {
	store Store
	log   *logger.Logger
	loc   *time.Location
	now   func() time.Time
}

// NewMonitor creates a Monitor reporting days in loc.
func NewMonitor(store Store, log *logger.Logger, loc *time.Location) *Monitor {
	return &Monitor{store: store, log: log, loc: loc, now: time.Now}
}

// WithClock overrides the clock used for same-day suppression.
func (m *Monitor) WithClock(now func() time.Time) *Monitor {
	m.now = now
	return m
}

// MoodEntry raises a low-mood alert when the score warrants one.
func (m *Monitor) MoodEntry(ctx context.Context, userID string, score int) (*db.RiskAlert, error) {
	a, ok := ForMood(score)
	if !ok {
		return nil, nil
	}
	return m.raise(ctx, userID, a)
}

// MoodTrend raises a trend alert unless an unacknowledged one was already
// raised today.
func (m *Monitor) MoodTrend(ctx context.Context, userID string, points []trends.Point) (*db.RiskAlert, error) {
	a, ok := ForMoodTrend(points)
	if !ok {
		return nil, nil
	}
	local := m.now().In(m.loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, m.loc)
	open, err := m.store.HasOpenAlertSince(ctx, userID, db.AlertMoodTrend, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to check open trend alerts: %w", err)
	}
	if open {
		return nil, nil
	}
	return m.raise(ctx, userID, a)
}

// Journal raises an alert for a journal entry's risk flags.
func (m *Monitor) Journal(ctx context.Context, userID string, flags []string) (*db.RiskAlert, error) {
	a, ok := ForJournal(flags)
	if !ok {
		return nil, nil
	}
	return m.raise(ctx, userID, a)
}

func (m *Monitor) raise(ctx context.Context, userID string, a Alert) (*db.RiskAlert, error) {
	alert, err := m.store.CreateRiskAlert(ctx, userID, a.Type, a.Source, a.Message, a.Severity)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s alert: %w", a.Type, err)
	}
	m.log.Warn("risk alert raised", "user_id", userID, "alert_type", a.Type, "severity", a.Severity)
	return alert, nil
}
