package providers

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dipu67/analyzer/internal/types"
)

// requiredKeys is the canonical schema's key set. A remote payload missing
// any of them is malformed and routes to the local fallback.
var requiredKeys = []string{
	"content_summary",
	"category",
	"potential_score",
	"has_opportunity",
	"summary",
	"key_points",
	"action_steps",
	"opportunity_type",
	"mentioned_entities",
	"risk_level",
	"confidence_level",
	"estimated_timeline",
	"additional_context",
}

var validLevels = map[string]bool{
	types.LevelNone:   true,
	types.LevelLow:    true,
	types.LevelMedium: true,
	types.LevelHigh:   true,
}

// ParseAnalysisResult parses the raw text an inference service returned into
// the canonical schema. Each provider assembles the complete text before
// calling this. Any deviation from the contract is an error; the analyzer
// treats that error as a fallback signal, never a caller-visible failure.
func ParseAnalysisResult(text string) (types.AnalysisResult, error) {
	var zero types.AnalysisResult

	jsonText := extractJSONObject(strings.TrimSpace(text))

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &keys); err != nil {
		return zero, fmt.Errorf("response is not a JSON object: %w (response was: %.300s)", err, text)
	}
	for _, k := range requiredKeys {
		if _, ok := keys[k]; !ok {
			return zero, fmt.Errorf("response missing key %q", k)
		}
	}

	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return zero, fmt.Errorf("response does not match analysis schema: %w", err)
	}

	if !validLevels[result.RiskLevel] {
		return zero, fmt.Errorf("invalid risk_level %q", result.RiskLevel)
	}
	if !validLevels[result.ConfidenceLevel] {
		return zero, fmt.Errorf("invalid confidence_level %q", result.ConfidenceLevel)
	}
	if !validCategory(result.Category) {
		return zero, fmt.Errorf("invalid category %q", result.Category)
	}

	// The score invariant is clamped, not rejected.
	if result.PotentialScore < 0 {
		result.PotentialScore = 0
	}
	if result.PotentialScore > 10 {
		result.PotentialScore = 10
	}
	if len(result.MentionedEntities) > 5 {
		result.MentionedEntities = result.MentionedEntities[:5]
	}

	return result, nil
}

func validCategory(category string) bool {
	if category == types.CategoryGeneral {
		return true
	}
	for _, c := range types.Categories {
		if c == category {
			return true
		}
	}
	return false
}

var (
	fencedObject = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*?\\})\\s*\\n?```")
	rawObject    = regexp.MustCompile(`(?s)(\{.*\})`)
)

// extractJSONObject tolerates models that wrap the object in markdown code
// fences despite the no-other-text instruction.
func extractJSONObject(text string) string {
	if m := fencedObject.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	if m := rawObject.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return text
}
