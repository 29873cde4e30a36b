package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, int32(512), cfg.MaxOutputTokens)
}

func TestGetModel_Fallback(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierLite: "lite-only"}}
	assert.Equal(t, "lite-only", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "lite-only", cfg.GetModel("unknown"))

	assert.Empty(t, (&Config{}).GetModel(TierStandard))
}

func TestWithModel_Copies(t *testing.T) {
	cfg := DefaultConfig()
	pinned := cfg.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", pinned.GetModel(TierAdvanced))
	assert.Equal(t, cfg.Temperature, pinned.Temperature)

	empty := (&Config{}).WithModel(TierLite, "x")
	assert.Equal(t, "x", empty.GetModel(TierLite))
}

func TestConfigForModel(t *testing.T) {
	assert.Equal(t, DefaultConfig(), ConfigForModel(""))

	cfg := ConfigForModel("gemini-custom")
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.Equal(t, "gemini-custom", cfg.GetModel(tier))
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	assert.ErrorContains(t, err, "API key")

	_, err = NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.ErrorContains(t, err, "unsupported")
}

func TestResponseText(t *testing.T) {
	text := func(parts ...genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		}
	}

	got, err := responseText(text(genai.Text("calm "), genai.Text("day")))
	require.NoError(t, err)
	assert.Equal(t, "calm day", got)

	_, err = responseText(text())
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(nil)
	assert.Error(t, err)

	blocked := &genai.GenerateContentResponse{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	_, err = responseText(blocked)
	assert.True(t, errors.Is(err, ErrBlocked))

	stopped := text(genai.Text("partial"))
	stopped.Candidates[0].FinishReason = genai.FinishReasonSafety
	_, err = responseText(stopped)
	assert.True(t, errors.Is(err, ErrBlocked))
}
