package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/normalize"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/prompts"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

const (
	// MinResumeLength is the shortest extracted text worth sending to the model.
	MinResumeLength = 20
	// MaxResumeChars bounds the résumé text placed in a prompt.
	MaxResumeChars = 8000
	// MaxJobDescriptionChars bounds the job description placed in a prompt.
	MaxJobDescriptionChars = 4000

	DefaultATSScore  = 70
	FallbackATSScore = 50
)

// DefaultSuggestions are returned when the model gives none.
var DefaultSuggestions = []string{
	"Add quantifiable metrics to your achievements",
	"Use stronger action verbs to begin bullet points",
	"Include more keywords from the job description",
}

// FallbackSuggestion is the only suggestion when the model response is not JSON.
const FallbackSuggestion = "AI parsing failed - please try again with a clearer resume format"

// ErrEmptyResume is returned by Optimize when there is no résumé text.
var ErrEmptyResume = errors.New("resumeText is required")

// OptimizeResult is an optimized candidate plus the model's ATS assessment.
type OptimizeResult struct {
	Improved        types.Candidate `json:"improved"`
	ATSScore        int             `json:"atsScore"`
	MatchedKeywords []string        `json:"matchedKeywords"`
	Suggestions     []string        `json:"suggestions"`
}

// ExtractResume asks the model to structure raw résumé text. Text too short
// to be a résumé yields an empty candidate without a model call. A response
// that is not a JSON object is logged and also yields an empty candidate;
// only a failed model call is returned as an error.
func ExtractResume(ctx context.Context, client Client, text string) (types.Candidate, error) {
	text = strings.TrimSpace(text)
	if len(text) < MinResumeLength {
		return types.Candidate{}, nil
	}

	prompt := prompts.Format(prompts.MustGet(prompts.ResumeFile, prompts.KeyExtraction), map[string]string{
		"ResumeText": truncate(text, MaxResumeChars),
	})

	resp, err := client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("resume extraction failed: %w", err)
	}

	var candidate types.Candidate
	if err := json.Unmarshal([]byte(CleanJSONBlock(resp)), &candidate); err != nil {
		log.Printf("[llm] extraction returned non-JSON, using empty candidate: %v", err)
		return types.Candidate{}, nil
	}
	return candidate, nil
}

// Optimize rewrites résumé text for ATS compatibility against an optional job
// description. A response that is not JSON produces a fallback result that
// carries the résumé text as experience.
func Optimize(ctx context.Context, client Client, resumeText, jobDescription string) (OptimizeResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return OptimizeResult{}, ErrEmptyResume
	}
	resumeText = truncate(resumeText, MaxResumeChars)
	jobDescription = truncate(jobDescription, MaxJobDescriptionChars)
	if strings.TrimSpace(jobDescription) == "" {
		jobDescription = prompts.MustGet(prompts.ResumeFile, prompts.KeyGeneralRole)
	}

	prompt := prompts.Format(prompts.MustGet(prompts.ResumeFile, prompts.KeyOptimization), map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": jobDescription,
	})

	resp, err := client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return OptimizeResult{}, fmt.Errorf("resume optimization failed: %w", err)
	}

	result, err := parseOptimizeResponse(CleanJSONBlock(resp))
	if err != nil {
		log.Printf("[llm] optimize returned non-JSON, fallback used: %v", err)
		return fallbackResult(resumeText), nil
	}
	return result, nil
}

func parseOptimizeResponse(body string) (OptimizeResult, error) {
	var candidate types.Candidate
	if err := json.Unmarshal([]byte(body), &candidate); err != nil {
		return OptimizeResult{}, err
	}

	var assessment struct {
		ATSScore        json.RawMessage `json:"atsScore"`
		MatchedKeywords json.RawMessage `json:"matchedKeywords"`
		Suggestions     json.RawMessage `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(body), &assessment); err != nil {
		return OptimizeResult{}, err
	}

	result := OptimizeResult{
		Improved:        candidate,
		ATSScore:        atsScore(assessment.ATSScore),
		MatchedKeywords: normalize.Normalize(assessment.MatchedKeywords, normalize.Skills),
		Suggestions:     normalize.Normalize(assessment.Suggestions, normalize.Experience),
	}
	if len(result.Suggestions) == 0 {
		result.Suggestions = append([]string(nil), DefaultSuggestions...)
	}
	return result, nil
}

func fallbackResult(resumeText string) OptimizeResult {
	experience, _ := json.Marshal(resumeText)
	return OptimizeResult{
		Improved:        types.Candidate{Experience: experience},
		ATSScore:        FallbackATSScore,
		MatchedKeywords: []string{},
		Suggestions:     []string{FallbackSuggestion},
	}
}

// atsScore reads a score given as a number or numeric string, clamped to
// 0..100. Missing, zero and unreadable scores become DefaultATSScore.
func atsScore(raw json.RawMessage) int {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return DefaultATSScore
	}

	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(t), "%"), 64)
		if err != nil || math.IsNaN(parsed) {
			return DefaultATSScore
		}
		f = parsed
	default:
		return DefaultATSScore
	}

	score := int(math.Round(math.Max(0, math.Min(100, f))))
	if score == 0 {
		return DefaultATSScore
	}
	return score
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
