package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrBlocked is returned when the provider refuses a prompt or stops a reply
// on safety grounds.
var ErrBlocked = errors.New("response blocked by provider safety filters")

// Client generates text from a prompt at a model tier.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON asks for a JSON reply and strips any wrapping prose.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	GetModel(tier ModelTier) string
	Close() error
}

// NewClient creates the configured provider's client. Only Gemini exists.
func NewClient(ctx context.Context, config *Config, apiKey string, opts ...option.ClientOption) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey, opts...)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient talks to the Gemini generative language API.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a Gemini client. opts are appended after the API key.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string, opts ...option.ClientOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, false)
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, true)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, asJSON bool) (string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}
	model := c.client.GenerativeModel(name)
	model.SetTemperature(c.config.Temperature)
	if c.config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	}
	if asJSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%s generate failed: %w", name, err)
	}
	return responseText(resp)
}

func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty response")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return "", ErrBlocked
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", ErrBlocked
	}
	if cand.Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return b.String(), nil
}
