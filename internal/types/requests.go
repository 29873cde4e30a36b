// Package types holds the request payloads accepted by the MindWell API and
// their validation rules.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/mindwell/internal/db"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// CalculateWellnessRequest asks for a recompute of the week containing Date.
// Date is RFC3339 or YYYY-MM-DD; empty means now.
type CalculateWellnessRequest struct {
	Date string `json:"date,omitempty"`
}

// AnswerInput is a single submitted quiz answer.
type AnswerInput struct {
	QuestionID string `json:"questionId" validate:"required"`
	Answer     any    `json:"answer"`
}

// ToAnswers converts validated inputs to stored answers.
func ToAnswers(in []AnswerInput) []db.QuizAnswer {
	out := make([]db.QuizAnswer, len(in))
	for i, a := range in {
		out[i] = db.QuizAnswer{QuestionID: a.QuestionID, Answer: a.Answer}
	}
	return out
}

// WeeklyAnswerInput is one answer on the weekly 0-3 frequency scale.
type WeeklyAnswerInput struct {
	QuestionID string   `json:"questionId" validate:"required"`
	Answer     *float64 `json:"answer" validate:"required,min=0,max=3"`
}

// WeeklyQuizResponseRequest answers the current weekly quiz. Each question may
// be answered once.
type WeeklyQuizResponseRequest struct {
	Answers []WeeklyAnswerInput `json:"answers" validate:"required,min=1,unique=QuestionID,dive"`
}

// Validate validates the WeeklyQuizResponseRequest.
func (r *WeeklyQuizResponseRequest) Validate() error {
	return Validator().Struct(r)
}

// QuizAnswers converts the validated answers to stored answers.
func (r *WeeklyQuizResponseRequest) QuizAnswers() []db.QuizAnswer {
	out := make([]db.QuizAnswer, len(r.Answers))
	for i, a := range r.Answers {
		out[i] = db.QuizAnswer{QuestionID: a.QuestionID, Answer: *a.Answer}
	}
	return out
}

// QuizResponseRequest answers any quiz.
type QuizResponseRequest struct {
	QuizID  uuid.UUID     `json:"quizId" validate:"required"`
	Answers []AnswerInput `json:"answers" validate:"required,min=1,unique=QuestionID,dive"`
}

// Validate validates the QuizResponseRequest.
func (r *QuizResponseRequest) Validate() error {
	return Validator().Struct(r)
}

// CreateQuizRequest authors a new quiz. Questions are checked against the
// quiz question schema separately.
type CreateQuizRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description"`
	Type        string          `json:"type" validate:"required,oneof=daily weekly monthly once daily_assessment phq9 gad7"`
	Category    string          `json:"category"`
	Frequency   string          `json:"frequency" validate:"omitempty,oneof=daily weekly monthly once"`
	Questions   json.RawMessage `json:"questions" validate:"required"`
}

// Validate validates the CreateQuizRequest.
func (r *CreateQuizRequest) Validate() error {
	return Validator().Struct(r)
}

// CompleteTaskRequest ticks a checklist task for today.
type CompleteTaskRequest struct {
	Task string `json:"task" validate:"required,oneof=describedDay videoSummary readBook creativeTask quizCompleted moodCheckin"`
}

// Validate validates the CompleteTaskRequest.
func (r *CompleteTaskRequest) Validate() error {
	return Validator().Struct(r)
}

// MoodRequest is a mood check-in.
type MoodRequest struct {
	Score int     `json:"score" validate:"required,min=1,max=10"`
	Emoji *string `json:"emoji,omitempty"`
	Note  *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// Validate validates the MoodRequest.
func (r *MoodRequest) Validate() error {
	return Validator().Struct(r)
}

// CognitiveRequest records a completed exercise.
type CognitiveRequest struct {
	ExerciseType string         `json:"exerciseType" validate:"required,oneof=memory attention problemSolving processing"`
	Score        *float64       `json:"score" validate:"required,min=0,max=100"`
	Duration     int            `json:"duration" validate:"required,min=1"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Summary      string         `json:"summary,omitempty"`
	VideoID      *string        `json:"videoId,omitempty"`
}

// Validate validates the CognitiveRequest.
func (r *CognitiveRequest) Validate() error {
	return Validator().Struct(r)
}

// JournalRequest is a new journal entry.
type JournalRequest struct {
	Content string `json:"content" validate:"required,min=1,max=20000"`
}

// Validate validates the JournalRequest.
func (r *JournalRequest) Validate() error {
	return Validator().Struct(r)
}

// DrawingRequest is a canvas scene or a text capture. At least one of
// SceneJSON and TextContent must be present.
type DrawingRequest struct {
	SceneJSON   json.RawMessage `json:"sceneJson,omitempty"`
	InputType   string          `json:"inputType,omitempty" validate:"omitempty,oneof=draw thoughts issues"`
	TextContent *string         `json:"textContent,omitempty" validate:"omitempty,max=20000"`
}

// Validate validates the DrawingRequest.
func (r *DrawingRequest) Validate() error {
	return Validator().Struct(r)
}

// HasScene reports whether a non-null scene was submitted.
func (r *DrawingRequest) HasScene() bool {
	return len(r.SceneJSON) > 0 && string(r.SceneJSON) != "null"
}

// HasText reports whether non-empty text was submitted.
func (r *DrawingRequest) HasText() bool {
	return r.TextContent != nil && *r.TextContent != ""
}

// AlertRequest creates an alert directly.
type AlertRequest struct {
	Type     string `json:"type" validate:"required,oneof=journal mood mood_trend quiz other"`
	Source   string `json:"source" validate:"required,oneof=journal_entry mood_entry mood_analysis quiz_result system"`
	Message  string `json:"message" validate:"required,min=1"`
	Severity string `json:"severity" validate:"required,oneof=low medium high"`
}

// Validate validates the AlertRequest.
func (r *AlertRequest) Validate() error {
	return Validator().Struct(r)
}

// ConsentRequest updates consent settings. Omitted fields take their defaults.
type ConsentRequest struct {
	DataUsage               *bool `json:"dataUsage,omitempty"`
	ShareClinical           *bool `json:"shareClinical,omitempty"`
	ReceiveAlerts           *bool `json:"receiveAlerts,omitempty"`
	StoreCreativeContent    *bool `json:"storeCreativeContent,omitempty"`
	AllowAnonymizedResearch *bool `json:"allowAnonymizedResearch,omitempty"`
}

// Settings applies defaults to omitted fields.
func (r *ConsentRequest) Settings() db.ConsentSettings {
	s := db.DefaultConsentSettings()
	pick := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	pick(&s.DataUsage, r.DataUsage)
	pick(&s.ShareClinical, r.ShareClinical)
	pick(&s.ReceiveAlerts, r.ReceiveAlerts)
	pick(&s.StoreCreativeContent, r.StoreCreativeContent)
	pick(&s.AllowAnonymizedResearch, r.AllowAnonymizedResearch)
	return s
}

// VideoSummaryRequest records a summary written after watching a video.
type VideoSummaryRequest struct {
	VideoID string `json:"videoId" validate:"required"`
	Summary string `json:"summary" validate:"required,min=1,max=20000"`
}

// Validate validates the VideoSummaryRequest.
func (r *VideoSummaryRequest) Validate() error {
	return Validator().Struct(r)
}
