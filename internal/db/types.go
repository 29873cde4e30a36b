package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Exercise types for cognitive entries
const (
	ExerciseMemory         = "memory"
	ExerciseAttention      = "attention"
	ExerciseProblemSolving = "problemSolving"
	ExerciseProcessing     = "processing"
)

// ExerciseTypes lists every cognitive exercise type in display order.
var ExerciseTypes = []string{ExerciseMemory, ExerciseAttention, ExerciseProblemSolving, ExerciseProcessing}

// Drawing input types
const (
	InputDraw     = "draw"
	InputThoughts = "thoughts"
	InputIssues   = "issues"
)

// Quiz types
const (
	QuizDaily           = "daily"
	QuizWeekly          = "weekly"
	QuizMonthly         = "monthly"
	QuizOnce            = "once"
	QuizDailyAssessment = "daily_assessment"
	QuizPHQ9            = "phq9"
	QuizGAD7            = "gad7"
)

// Risk alert types, sources and severities
const (
	AlertJournal   = "journal"
	AlertMood      = "mood"
	AlertMoodTrend = "mood_trend"
	AlertQuiz      = "quiz"
	AlertOther     = "other"

	SourceJournalEntry = "journal_entry"
	SourceMoodEntry    = "mood_entry"
	SourceMoodAnalysis = "mood_analysis"
	SourceQuizResult   = "quiz_result"
	SourceSystem       = "system"

	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Survey types
const (
	SurveyPHQ9   = "PHQ9"
	SurveyGAD7   = "GAD7"
	SurveySleep  = "sleep"
	SurveySocial = "social"
)

// ConsentSettings are the per-user data sharing preferences.
type ConsentSettings struct {
	DataUsage               bool `json:"dataUsage"`
	ShareClinical           bool `json:"shareClinical"`
	ReceiveAlerts           bool `json:"receiveAlerts"`
	StoreCreativeContent    bool `json:"storeCreativeContent"`
	AllowAnonymizedResearch bool `json:"allowAnonymizedResearch"`
}

// DefaultConsentSettings returns the settings applied when a field is omitted.
func DefaultConsentSettings() ConsentSettings {
	return ConsentSettings{ReceiveAlerts: true, StoreCreativeContent: true}
}

// UserProfile mirrors the identity provider's user plus app-specific flags.
type UserProfile struct {
	ID                string          `json:"id"`
	Email             string          `json:"email"`
	DisplayName       *string         `json:"displayName,omitempty"`
	ConsentSettings   ConsentSettings `json:"consentSettings"`
	BaselineCompleted bool            `json:"baselineCompleted"`
	IsAdmin           bool            `json:"isAdmin"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// MoodEntry is a single mood check-in.
type MoodEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	Score     int       `json:"score"`
	Emoji     *string   `json:"emoji,omitempty"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CognitiveEntry records a completed exercise or a video summary.
type CognitiveEntry struct {
	ID                 uuid.UUID      `json:"id"`
	UserID             string         `json:"userId"`
	ExerciseType       string         `json:"exerciseType"`
	Score              *float64       `json:"score"`
	ComprehensionScore *float64       `json:"comprehensionScore,omitempty"`
	Duration           int            `json:"duration"`
	Metadata           map[string]any `json:"metadata"`
	VideoID            *string        `json:"videoId,omitempty"`
	Summary            string         `json:"summary"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// JournalEntry is a free-text journal submission. RiskFlags never leave the server.
type JournalEntry struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"userId"`
	Content        string    `json:"content"`
	SentimentScore *float64  `json:"sentimentScore"`
	Keywords       []string  `json:"keywords"`
	RiskFlags      []string  `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Drawing is a canvas scene or a text capture.
type Drawing struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId"`
	SceneJSON   json.RawMessage `json:"sceneJson"`
	InputType   string          `json:"inputType"`
	TextContent *string         `json:"textContent,omitempty"`
	AIInsight   *string         `json:"aiInsight,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DailyChecklist is the one-per-day task list. Date carries only a calendar day.
type DailyChecklist struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"userId"`
	Date          time.Time `json:"date"`
	DescribedDay  bool      `json:"describedDay"`
	VideoSummary  bool      `json:"videoSummary"`
	ReadBook      bool      `json:"readBook"`
	CreativeTask  bool      `json:"creativeTask"`
	QuizCompleted bool      `json:"quizCompleted"`
	MoodCheckin   bool      `json:"moodCheckin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// QuizQuestion is one question inside a quiz's ordered question set.
type QuizQuestion struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	MinValue *float64 `json:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// Quiz is an authored or materialized questionnaire.
type Quiz struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Type        string         `json:"type"`
	Category    *string        `json:"category,omitempty"`
	Frequency   *string        `json:"frequency,omitempty"`
	Questions   []QuizQuestion `json:"questions"`
	CreatedBy   *string        `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// QuizAnswer is a single answer. Answer holds a number, string, bool or list.
type QuizAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

// QuizResponse is one submission of a quiz.
type QuizResponse struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"userId"`
	QuizID    uuid.UUID    `json:"quizId"`
	Answers   []QuizAnswer `json:"answers"`
	Score     float64      `json:"score"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SurveyResponse is a scored onboarding survey submission.
type SurveyResponse struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"userId"`
	SurveyType string          `json:"surveyType"`
	Answers    json.RawMessage `json:"answers"`
	Score      float64         `json:"score"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// WellnessScore is the derived weekly score, one row per (user, week).
type WellnessScore struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"userId"`
	WeekOf          time.Time `json:"weekOf"`
	OverallScore    int       `json:"overallScore"`
	MoodScore       int       `json:"moodScore"`
	CognitiveScore  int       `json:"cognitiveScore"`
	ChecklistScore  int       `json:"checklistScore"`
	WeeklyQuizScore int       `json:"weeklyQuizScore"`
	StressScore     int       `json:"stressScore"`
	Recommendations []string  `json:"recommendations"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RiskAlert is raised when an entry crosses a risk threshold.
type RiskAlert struct {
	ID           uuid.UUID `json:"id"`
	UserID       string    `json:"userId"`
	Type         string    `json:"type"`
	Source       string    `json:"source"`
	Message      string    `json:"message"`
	Severity     string    `json:"severity"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Book is a curated library book.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	CoverURL    *string   `json:"coverUrl,omitempty"`
	Description *string   `json:"description,omitempty"`
	LinkURL     *string   `json:"linkUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Video is a curated library video.
type Video struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	YouTubeID    string    `json:"youtubeId"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
