// Package analyzer classifies a merged post corpus for opportunity signals.
// It prefers a remote inference service and degrades deterministically to a
// local keyword heuristic when the service is unavailable, slow, or returns
// malformed output.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dipu67/analyzer/internal/analyzer/providers"
	"github.com/dipu67/analyzer/internal/config"
	"github.com/dipu67/analyzer/internal/types"
)

// Strategy is one interchangeable classification implementation.
type Strategy interface {
	Analyze(ctx context.Context, corpus string) (types.AnalysisResult, error)
}

// Analyzer holds the remote and local strategies. Immutable after
// construction; safe to share across concurrent batch calls.
type Analyzer struct {
	remote Strategy // nil when no credential is configured
	local  Strategy
}

// New creates an analyzer from configuration. The remote strategy is wired
// only when an API key is present; otherwise every call goes straight to the
// local heuristic.
func New(cfg config.AnalysisConfig) (*Analyzer, error) {
	a := &Analyzer{local: NewHeuristic()}

	if cfg.APIKey == "" {
		return a, nil
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		a.remote = providers.NewOpenAIProvider(cfg.Endpoint, cfg.Model, cfg.APIKey)
	case config.ProviderAnthropic:
		a.remote = providers.NewAnthropicProvider(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown inference provider: %s", cfg.Provider)
	}

	return a, nil
}

// NewWithStrategies wires explicit strategies; used by tests and by callers
// that manage provider construction themselves.
func NewWithStrategies(remote, local Strategy) *Analyzer {
	if local == nil {
		local = NewHeuristic()
	}
	return &Analyzer{remote: remote, local: local}
}

// Analyze classifies the corpus. An empty or whitespace-only corpus returns
// the fixed empty-analysis constant without invoking either strategy. A
// remote failure of any kind falls back to the local heuristic immediately,
// without retrying.
func (a *Analyzer) Analyze(ctx context.Context, corpus string) types.AnalysisResult {
	if strings.TrimSpace(corpus) == "" {
		return EmptyAnalysis()
	}

	if a.remote != nil {
		result, err := a.remote.Analyze(ctx, corpus)
		if err == nil {
			return result
		}
		log.Printf("analyzer: remote analysis failed, using local heuristic: %v", err)
	}

	// The heuristic is a pure function and cannot fail.
	result, _ := a.local.Analyze(ctx, corpus)
	return result
}

// EmptyAnalysis is the canonical result for an empty corpus. Every call
// returns a fresh value so the constant can never be mutated through a
// shared slice.
func EmptyAnalysis() types.AnalysisResult {
	return types.AnalysisResult{
		ContentSummary:    "No content was available for analysis.",
		Category:          types.CategoryGeneral,
		PotentialScore:    0,
		HasOpportunity:    false,
		Summary:           "No content to analyze.",
		KeyPoints:         []string{"No posts produced any readable text"},
		ActionSteps:       []string{"Provide post URLs with readable content"},
		OpportunityType:   "None",
		MentionedEntities: []string{},
		RiskLevel:         types.LevelNone,
		ConfidenceLevel:   types.LevelNone,
		EstimatedTimeline: "uncertain",
		AdditionalContext: "The corpus was empty or whitespace-only.",
	}
}
