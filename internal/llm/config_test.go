package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "fallback-model"}}
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierAdvanced))
}

func TestWithModel_DoesNotMutate(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", next.GetModel(TierStandard))
	assert.Equal(t, config.GetModel(TierAdvanced), next.GetModel(TierAdvanced))
	assert.Equal(t, config.Temperature, next.Temperature)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-test")
	t.Setenv("GEMINI_TEMPERATURE", "0.4")

	config := ConfigFromEnv()
	assert.Equal(t, "gemini-test", config.GetModel(TierStandard))
	assert.InDelta(t, 0.4, config.Temperature, 0.0001)

	t.Setenv("GEMINI_TEMPERATURE", "hot")
	assert.Equal(t, DefaultTemperature, ConfigFromEnv().Temperature)
}

func TestNewClient_Errors(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
