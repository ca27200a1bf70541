// Package prompts loads the LLM prompt templates used for résumé extraction
// and optimization. Prompt files are JSON objects embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ResumeFile holds the extraction and optimization prompts.
const ResumeFile = "resume.json"

// Keys in ResumeFile.
const (
	KeyExtraction   = "extraction"
	KeyOptimization = "optimization"
	KeyGeneralRole  = "general-role"
)

//go:embed *.json
var promptFiles embed.FS

var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get returns the prompt stored under key in filename.
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	if prompt, ok := prompts[key]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
}

// MustGet is Get for prompts that must exist; it panics otherwise.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data. Placeholders
// without a value are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	// A single pass keeps substituted values from being expanded again.
	return strings.NewReplacer(pairs...).Replace(template)
}

// loadFile parses an embedded prompt file once and serves it from the cache
// afterwards.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	prompts, ok := cache[filename]
	cacheMu.RUnlock()
	if ok {
		return prompts, nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if prompts, ok := cache[filename]; ok {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	cache[filename] = prompts
	return prompts, nil
}

// ClearCache drops every parsed prompt file.
func ClearCache() {
	cacheMu.Lock()
	clear(cache)
	cacheMu.Unlock()
}

// List returns the prompt keys of a file in sorted order.
func List(filename string) ([]string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(prompts)), nil
}
