// Package llm wraps the generative model used to turn résumé text into a
// candidate résumé and to optimize one against a job description.
package llm

import (
	"os"
	"strconv"
)

// ModelTier selects a model by capability.
type ModelTier string

const (
	// TierLite is for cheap, simple calls.
	TierLite ModelTier = "lite"
	// TierStandard handles structured extraction and optimization.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for heavier reasoning.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM backend.
type Provider string

const (
	// ProviderGemini is Google Gemini, the only provider implemented.
	ProviderGemini Provider = "gemini"
)

// DefaultTemperature keeps extraction output stable between calls.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// ConfigFromEnv returns DefaultConfig with GEMINI_MODEL overriding the
// standard tier and GEMINI_TEMPERATURE the sampling temperature.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg = cfg.WithModel(TierStandard, model)
	}
	if raw := os.Getenv("GEMINI_TEMPERATURE"); raw != "" {
		if t, err := strconv.ParseFloat(raw, 32); err == nil && t >= 0 && t <= 2 {
			cfg.Temperature = float32(t)
		}
	}
	return cfg
}

// GetModel returns the model for a tier, falling back to standard and then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
