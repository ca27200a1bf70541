package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the budget for requests matching Path and Method.
type EndpointConfig struct {
	Path   string        // Exact path, "*" for one segment, or a trailing "/" for a prefix
	Method string        // HTTP method
	Limit  int           // Requests per Window
	Window time.Duration // Refill period for Limit tokens
	Burst  int           // Bucket capacity; Limit when 0
}

// Tier is a budget shared by a class of endpoints.
type Tier struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// Budgets for the API, most expensive first. Reads and preview renders use
// Config.DefaultLimit; GET /health is never limited.
var (
	// ModelTier covers calls that reach the language model.
	ModelTier = Tier{Limit: 20, Window: time.Hour, Burst: 5}
	// ExportTier covers PDF capture, which starts a browser per request.
	ExportTier = Tier{Limit: 60, Window: time.Hour, Burst: 10}
	// CredentialTier covers password checks.
	CredentialTier = Tier{Limit: 20, Window: time.Minute, Burst: 5}
	// WriteTier covers résumé writes.
	WriteTier = Tier{Limit: 100, Window: time.Minute, Burst: 10}
	// DraftTier covers autosave, which the editor fires on every change.
	DraftTier = Tier{Limit: 300, Window: time.Minute, Burst: 30}
)

// On binds the tier to one route.
func (t Tier) On(method, path string) EndpointConfig {
	return EndpointConfig{Path: path, Method: method, Limit: t.Limit, Window: t.Window, Burst: t.Burst}
}

// DefaultEndpointConfigs returns the per-route budgets of the résumé API.
func DefaultEndpointConfigs() []EndpointConfig {
	return DefaultEndpointConfigsWith(ModelTier)
}

// DefaultEndpointConfigsWith is DefaultEndpointConfigs with the model budget
// replaced.
func DefaultEndpointConfigsWith(model Tier) []EndpointConfig {
	return []EndpointConfig{
		model.On("POST", "/resume/upload"),
		model.On("POST", "/resume/optimize"),
		ExportTier.On("GET", "/resume/*/pdf"),

		CredentialTier.On("POST", "/auth/register"),
		CredentialTier.On("POST", "/auth/login"),
		CredentialTier.On("PUT", "/auth/password"),

		WriteTier.On("POST", "/resume/save"),
		WriteTier.On("PUT", "/resume/"),
		WriteTier.On("DELETE", "/resume/"),

		DraftTier.On("PUT", "/drafts"),
	}
}

// LoadConfig reads RATE_LIMIT_* variables. RATE_LIMIT_MODEL_PER_HOUR adjusts
// the upload and optimize budget, which is the one tied to API spend.
func LoadConfig() *Config {
	if !env("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	model := ModelTier
	model.Limit = env("RATE_LIMIT_MODEL_PER_HOUR", model.Limit, strconv.Atoi)
	model.Burst = min(model.Burst, model.Limit)

	return &Config{
		Enabled:         true,
		DefaultLimit:    env("RATE_LIMIT_DEFAULT_LIMIT", 600, strconv.Atoi),
		DefaultWindow:   env("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: env("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       addressSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       addressSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigsWith(model),
	}
}

// env parses the variable named key, keeping def when it is unset or malformed.
func env[T any](key string, def T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func addressSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			set[addr] = true
		}
	}
	return set
}
