// Package llm provides the generative-language client used for journal and
// drawing enrichment, with model selection by tier.
package llm

import "maps"

// ModelTier picks a model by how much work a call needs.
type ModelTier string

const (
	// TierLite is for classification-style calls such as journal sentiment.
	TierLite ModelTier = "lite"
	// TierStandard is for short free-text reflections.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for longer reasoning.
	TierAdvanced ModelTier = "advanced"
)

// Provider names a model vendor.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config selects models per tier and sampling settings.
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32 // 0 leaves the provider default
}

// DefaultConfig uses Gemini flash models. Insights are capped at 120 words,
// so replies never need more than a few hundred tokens.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     0.4,
		MaxOutputTokens: 512,
	}
}

// ConfigForModel returns the default configuration, with every tier pinned
// to model when it is non-empty.
func ConfigForModel(model string) *Config {
	cfg := DefaultConfig()
	if model == "" {
		return cfg
	}
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		cfg = cfg.WithModel(tier, model)
	}
	return cfg
}

// GetModel returns the tier's model, falling back to standard and then lite.
// It returns "" when none of them is configured.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = maps.Clone(c.Models)
	if out.Models == nil {
		out.Models = make(map[ModelTier]string)
	}
	out.Models[tier] = model
	return &out
}
