package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/mindwell/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response   string
	err        error
	lastPrompt string
	lastTier   llm.ModelTier
	deadline   bool
	wait       bool
}

func (f *fakeLLM) generate(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.lastPrompt = prompt
	f.lastTier = tier
	_, f.deadline = ctx.Deadline()
	if f.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.generate(ctx, prompt, tier)
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.generate(ctx, prompt, tier)
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeLLM) Close() error                  { return nil }

func TestOptional(t *testing.T) {
	v, ok := Some(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	none := None[string]()
	assert.False(t, none.Present())
	assert.Equal(t, "x", none.OrElse("x"))
}

func TestAnalyzeJournal(t *testing.T) {
	fake := &fakeLLM{response: "Sure! ```json\n{\"sentimentScore\": 12, \"keywords\": [\"work\",\" \",\"sleep\",\"a\",\"b\",\"c\",\"d\"], \"riskFlags\": [\"hopelessness\"]}\n```"}
	a := NewAnalyzer(fake, time.Second)

	res, err := a.AnalyzeJournal(context.Background(), "Long day at work.")
	require.NoError(t, err)
	got, ok := res.Get()
	require.True(t, ok)
	require.NotNil(t, got.SentimentScore)
	assert.Equal(t, 10.0, *got.SentimentScore)
	assert.Equal(t, []string{"work", "sleep", "a", "b", "c"}, got.Keywords)
	assert.Equal(t, []string{"hopelessness"}, got.RiskFlags)

	assert.Contains(t, fake.lastPrompt, "Long day at work.")
	assert.Equal(t, llm.TierLite, fake.lastTier)
	assert.True(t, fake.deadline)
}

func TestAnalyzeJournal_Disabled(t *testing.T) {
	res, err := NewAnalyzer(nil, time.Second).AnalyzeJournal(context.Background(), "text")
	require.NoError(t, err)
	assert.False(t, res.Present())

	var nilAnalyzer *Analyzer
	res, err = nilAnalyzer.AnalyzeJournal(context.Background(), "text")
	require.NoError(t, err)
	assert.False(t, res.Present())

	fake := &fakeLLM{}
	res, err = NewAnalyzer(fake, time.Second).AnalyzeJournal(context.Background(), "   ")
	require.NoError(t, err)
	assert.False(t, res.Present())
	assert.Empty(t, fake.lastPrompt, "blank text never reaches the model")
}

func TestAnalyzeJournal_Failures(t *testing.T) {
	res, err := NewAnalyzer(&fakeLLM{err: errors.New("quota")}, time.Second).AnalyzeJournal(context.Background(), "x")
	assert.Error(t, err)
	assert.False(t, res.Present())

	res, err = NewAnalyzer(&fakeLLM{response: "I cannot help with that."}, time.Second).AnalyzeJournal(context.Background(), "x")
	assert.Error(t, err)
	assert.False(t, res.Present())
}

func TestAnalyzeJournal_Timeout(t *testing.T) {
	res, err := NewAnalyzer(&fakeLLM{wait: true}, 10*time.Millisecond).AnalyzeJournal(context.Background(), "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, res.Present())
}

func TestDrawingInsight_PromptByInputType(t *testing.T) {
	tests := []struct {
		inputType string
		want      string
	}{
		{"draw", "following drawing and text"},
		{"", "following drawing and text"},
		{"thoughts", "thought journal entry"},
		{"issues", "mental health coach"},
	}
	for _, tt := range tests {
		fake := &fakeLLM{response: "  Breathe slowly.  "}
		res, err := NewAnalyzer(fake, time.Second).DrawingInsight(context.Background(), tt.inputType, "I feel stuck")
		require.NoError(t, err)
		assert.Equal(t, "Breathe slowly.", res.OrElse(""))
		assert.Contains(t, fake.lastPrompt, tt.want, tt.inputType)
		assert.Contains(t, fake.lastPrompt, "I feel stuck")
		assert.Equal(t, llm.TierStandard, fake.lastTier)
	}
}

func TestDrawingInsight_TruncatesLongAnswers(t *testing.T) {
	fake := &fakeLLM{response: strings.Repeat("word ", 200)}
	res, err := NewAnalyzer(fake, time.Second).DrawingInsight(context.Background(), "thoughts", "x")
	require.NoError(t, err)
	got, _ := res.Get()
	assert.Len(t, strings.Fields(got), 120)
}

func TestSceneText(t *testing.T) {
	scene := json.RawMessage(`{"elements":[{"type":"rectangle"},{"type":"text","text":"tired"},{"type":"text","text":""},{"type":"text","text":"but ok"}]}`)
	assert.Equal(t, "tired\nbut ok", SceneText(scene))
	assert.Equal(t, "", SceneText(json.RawMessage(`[1,2]`)))
	assert.Equal(t, "", SceneText(nil))
}

func TestTextToAnalyze(t *testing.T) {
	scene := json.RawMessage(`{"elements":[{"type":"text","text":"from scene"}]}`)
	typed := "typed"

	assert.Equal(t, "from scene", TextToAnalyze("draw", scene, &typed))
	assert.Equal(t, "from scene", TextToAnalyze("", scene, nil))
	assert.Equal(t, "typed", TextToAnalyze("thoughts", scene, &typed))
	assert.Equal(t, "", TextToAnalyze("issues", nil, nil))
}
