//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }
func sp(v string) *string   { return &v }
func bp(v bool) *bool       { return &v }

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
	var out []string
	for _, fe := range verrs {
		out = append(out, fe.Field())
	}
	return out
}

func TestMoodRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     MoodRequest
		wantErr bool
	}{
		{"valid", MoodRequest{Score: 7}, false},
		{"with emoji", MoodRequest{Score: 1, Emoji: sp("🙂")}, false},
		{"zero", MoodRequest{Score: 0}, true},
		{"too high", MoodRequest{Score: 11}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCognitiveRequest_Validate(t *testing.T) {
	valid := CognitiveRequest{ExerciseType: "memory", Score: fp(0), Duration: 30}
	assert.NoError(t, valid.Validate(), "a zero score is allowed")

	bad := CognitiveRequest{ExerciseType: "juggling", Duration: 0}
	assert.ElementsMatch(t, []string{"ExerciseType", "Score", "Duration"}, failedFields(t, bad.Validate()))

	over := CognitiveRequest{ExerciseType: "attention", Score: fp(101), Duration: 1}
	assert.Equal(t, []string{"Score"}, failedFields(t, over.Validate()))
}

func TestCompleteTaskRequest_Validate(t *testing.T) {
	for _, task := range []string{"describedDay", "videoSummary", "readBook", "creativeTask", "quizCompleted", "moodCheckin"} {
		r := CompleteTaskRequest{Task: task}
		assert.NoError(t, r.Validate(), task)
	}
	r := CompleteTaskRequest{Task: "cognitiveTask"}
	assert.Error(t, r.Validate())
}

func TestQuizResponseRequest_Validate(t *testing.T) {
	r := QuizResponseRequest{QuizID: uuid.New(), Answers: []AnswerInput{{QuestionID: "q1", Answer: 2.0}}}
	assert.NoError(t, r.Validate())

	r = QuizResponseRequest{Answers: []AnswerInput{{QuestionID: "", Answer: 1.0}}}
	assert.ElementsMatch(t, []string{"QuizID", "QuestionID"}, failedFields(t, r.Validate()))
}

func TestAnswerInput_DecodesMixedAnswers(t *testing.T) {
	var r QuizResponseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"quizId":"6f1c2b1e-5d0a-4c59-9d3e-0a8e1f6b2c11","answers":[{"questionId":"mood","answer":2},{"questionId":"note","answer":"ok"},{"questionId":"tags","answer":["a"]}]}`), &r))
	require.NoError(t, r.Validate())

	answers := ToAnswers(r.Answers)
	require.Len(t, answers, 3)
	assert.Equal(t, 2.0, answers[0].Answer)
	assert.Equal(t, "ok", answers[1].Answer)
	assert.Equal(t, []any{"a"}, answers[2].Answer)
}

func TestQuizResponseRequest_RejectsRepeatedQuestion(t *testing.T) {
	r := QuizResponseRequest{QuizID: uuid.New(), Answers: []AnswerInput{
		{QuestionID: "q1", Answer: 1.0},
		{QuestionID: "q1", Answer: 2.0},
	}}
	assert.Equal(t, []string{"Answers"}, failedFields(t, r.Validate()))
}

func TestWeeklyQuizResponseRequest_Validate(t *testing.T) {
	decode := func(body string) (*WeeklyQuizResponseRequest, error) {
		var r WeeklyQuizResponseRequest
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	r, err := decode(`{"answers":[{"questionId":"mood","answer":0},{"questionId":"sleep","answer":3},{"questionId":"worry","answer":1.5}]}`)
	require.NoError(t, err)
	require.NoError(t, r.Validate())
	answers := r.QuizAnswers()
	require.Len(t, answers, 3)
	assert.Equal(t, 0.0, answers[0].Answer)
	assert.Equal(t, 1.5, answers[2].Answer)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"above scale", `{"answers":[{"questionId":"mood","answer":9}]}`, "Answer"},
		{"below scale", `{"answers":[{"questionId":"mood","answer":-3}]}`, "Answer"},
		{"missing answer", `{"answers":[{"questionId":"mood"}]}`, "Answer"},
		{"repeated question", `{"answers":[{"questionId":"mood","answer":1},{"questionId":"mood","answer":2}]}`, "Answers"},
		{"no answers", `{"answers":[]}`, "Answers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := decode(tt.body)
			require.NoError(t, err)
			assert.Contains(t, failedFields(t, r.Validate()), tt.field)
		})
	}

	_, err = decode(`{"answers":[{"questionId":"mood","answer":"abc"}]}`)
	assert.Error(t, err, "non-numeric answers do not decode")
}

func TestDrawingRequest(t *testing.T) {
	var r DrawingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"sceneJson":null,"inputType":"thoughts","textContent":"hi"}`), &r))
	assert.False(t, r.HasScene())
	assert.True(t, r.HasText())
	assert.NoError(t, r.Validate())

	r = DrawingRequest{InputType: "paint"}
	assert.Error(t, r.Validate())
	assert.False(t, r.HasText())
}

func TestAlertRequest_Validate(t *testing.T) {
	r := AlertRequest{Type: "other", Source: "system", Message: "m", Severity: "low"}
	assert.NoError(t, r.Validate())

	r = AlertRequest{Type: "panic", Source: "system", Message: "", Severity: "extreme"}
	assert.ElementsMatch(t, []string{"Type", "Message", "Severity"}, failedFields(t, r.Validate()))
}

func TestConsentRequest_Settings(t *testing.T) {
	s := (&ConsentRequest{}).Settings()
	assert.False(t, s.DataUsage)
	assert.True(t, s.ReceiveAlerts)
	assert.True(t, s.StoreCreativeContent)

	s = (&ConsentRequest{ReceiveAlerts: bp(false), DataUsage: bp(true)}).Settings()
	assert.True(t, s.DataUsage)
	assert.False(t, s.ReceiveAlerts)
	assert.True(t, s.StoreCreativeContent)
}

func TestSurveyValidation(t *testing.T) {
	items := func(n int, score float64) []SurveyItem {
		out := make([]SurveyItem, n)
		for i := range out {
			out[i] = SurveyItem{ID: i + 1, Score: fp(score)}
		}
		return out
	}

	assert.NoError(t, Validator().Struct(PHQ9Survey{Questions: items(9, 0)}))
	assert.Error(t, Validator().Struct(PHQ9Survey{Questions: items(8, 1)}))
	assert.Error(t, Validator().Struct(GAD7Survey{Questions: items(7, 4)}))

	sleep := SleepSurvey{QualityRating: fp(0), HoursPerNight: fp(8), TroubleFallingAsleep: fp(0), TroubleStayingAsleep: fp(0), FeelingRested: fp(3)}
	assert.Equal(t, []string{"QualityRating"}, failedFields(t, Validator().Struct(sleep)))

	social := SocialSurvey{SocialInteractions: fp(3), FeelingConnected: fp(3), SupportNetwork: fp(3)}
	assert.Equal(t, []string{"Loneliness"}, failedFields(t, Validator().Struct(social)))
}
