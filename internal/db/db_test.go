package db

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DeclaresEveryTable(t *testing.T) {
	tables := []string{
		"user_profiles", "mood_entries", "cognitive_entries", "journal_entries", "drawings",
		"daily_checklists", "quizzes", "quiz_responses", "survey_responses",
		"wellness_scores", "risk_alerts", "books", "videos",
	}
	ddl := Schema()
	for _, table := range tables {
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+table+" ", "missing table %s", table)
	}
	assert.Contains(t, ddl, "UNIQUE (user_id, date)")
	assert.Contains(t, ddl, "UNIQUE (user_id, week_of)")
	assert.NotContains(t, strings.ToUpper(ddl), "DROP ")
}

func TestDateOf(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-03-10 20:00 UTC is already 2024-03-11 in Tokyo
	ts := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(ts, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), DateOf(ts, tokyo))
}

func TestIsChecklistTask(t *testing.T) {
	for _, task := range []string{TaskDescribedDay, TaskVideoSummary, TaskReadBook, TaskCreativeTask, TaskQuizCompleted, TaskMoodCheckin} {
		assert.True(t, IsChecklistTask(task), task)
	}
	assert.False(t, IsChecklistTask("cognitiveTask"))
	assert.False(t, IsChecklistTask("read_book; DROP TABLE daily_checklists"))
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil[string](nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, nullTime(time.Time{}))
	now := time.Now()
	require.NotNil(t, nullTime(now))
	assert.True(t, now.Equal(*nullTime(now)))
}

func TestJournalEntry_HidesRiskFlags(t *testing.T) {
	entry := JournalEntry{Content: "hello", Keywords: []string{"work"}, RiskFlags: []string{"self-harm"}}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "riskFlags")
	assert.NotContains(t, string(data), "self-harm")
	assert.Contains(t, string(data), `"keywords":["work"]`)
}

func TestDefaultConsentSettings(t *testing.T) {
	c := DefaultConsentSettings()
	assert.True(t, c.ReceiveAlerts)
	assert.True(t, c.StoreCreativeContent)
	assert.False(t, c.DataUsage)
	assert.False(t, c.ShareClinical)
	assert.False(t, c.AllowAnonymizedResearch)
}
