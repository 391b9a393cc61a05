package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dipu67/analyzer/internal/types"
)

// Heuristic is the deterministic, keyword-driven classifier of record when
// no remote inference service is reachable. It is a pure function of the
// corpus and never fails.
type Heuristic struct{}

// NewHeuristic creates the local strategy.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// matchState carries everything the scoring pass learned, for the rule lists
// that build the textual fields.
type matchState struct {
	lower       string
	category    string
	matched     map[string]bool // category name -> had >=1 match
	airdropHits int
	actionHits  int
	score       int
	entities    []string
}

// Analyze classifies the corpus with weighted keyword occurrence counts:
// direct airdrop indicators x3, category sets x2, action keywords x1,
// clamped to [0,10].
func (h *Heuristic) Analyze(_ context.Context, corpusText string) (types.AnalysisResult, error) {
	lower := strings.ToLower(corpusText)

	st := matchState{
		lower:   lower,
		matched: make(map[string]bool),
	}

	st.airdropHits = countOccurrences(lower, airdropKeywords)

	categoryHits := 0
	for _, set := range categorySets {
		if n := countOccurrences(lower, set.Keywords); n > 0 {
			// Last matched set wins the category; iteration order of
			// categorySets is the contract.
			st.category = set.Category
			st.matched[set.Category] = true
			categoryHits += n
		}
	}

	st.actionHits = countOccurrences(lower, actionKeywords)

	st.score = clampScore(st.airdropHits*3 + categoryHits*2 + st.actionHits)
	st.entities = extractEntities(corpusText)

	hasOpportunity := st.score >= 4

	category := st.category
	if category == "" {
		category = types.CategoryGeneral
	}

	return types.AnalysisResult{
		ContentSummary:    buildContentSummary(st),
		Category:          category,
		PotentialScore:    st.score,
		HasOpportunity:    hasOpportunity,
		Summary:           buildSummary(st, hasOpportunity),
		KeyPoints:         buildKeyPoints(st),
		ActionSteps:       buildActionSteps(st),
		OpportunityType:   opportunityType(st.category),
		MentionedEntities: st.entities,
		RiskLevel:         riskLevel(st),
		ConfidenceLevel:   confidenceLevel(st.score),
		EstimatedTimeline: estimateTimeline(st),
		AdditionalContext: buildAdditionalContext(st),
	}, nil
}

// countOccurrences sums substring occurrences of every keyword in the set.
func countOccurrences(lower string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(lower, kw)
	}
	return total
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func confidenceLevel(score int) string {
	switch {
	case score >= 7:
		return types.LevelHigh
	case score >= 4:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

func riskLevel(st matchState) string {
	for _, phrase := range highRiskPhrases {
		if strings.Contains(st.lower, phrase) {
			return types.LevelHigh
		}
	}
	if len(st.entities) > 0 && (containsAny(st.lower, lowRiskSignals) || st.airdropHits > 0) {
		return types.LevelLow
	}
	return types.LevelMedium
}

// estimateTimeline is an ordered phrase cascade; the first bucket that
// matches wins.
func estimateTimeline(st matchState) string {
	switch {
	case containsAny(st.lower, []string{"now", "today", "live"}):
		return "immediate"
	case containsAny(st.lower, []string{"week", "7 days"}):
		return "within 1 week"
	case containsAny(st.lower, []string{"month", "30 days"}):
		return "within 1 month"
	case containsAny(st.lower, []string{"quarter", "q1", "q2"}):
		return "within 3 months"
	case st.airdropHits > 0 || st.actionHits >= 3:
		return "within 1 month"
	default:
		return "uncertain"
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

var entityPattern = regexp.MustCompile(`[@#][A-Za-z0-9_]+`)

// extractEntities pulls @handle and #tag tokens from the original-case
// corpus, sigil stripped, keeping tokens longer than two characters and
// truncating to the first five in document order. Duplicates are kept;
// collaborators that want unique entities dedupe on their side.
func extractEntities(original string) []string {
	entities := []string{}
	for _, token := range entityPattern.FindAllString(original, -1) {
		name := token[1:]
		if len(name) <= 2 {
			continue
		}
		entities = append(entities, name)
		if len(entities) == 5 {
			break
		}
	}
	return entities
}

func opportunityType(category string) string {
	if category == "" {
		return "General Information"
	}
	if t, ok := opportunityTypes[category]; ok {
		return t
	}
	return "Early Access"
}

// The builders below are ordered rule lists: each rule that fires appends a
// fixed line, and an empty result falls back to one generic entry.

func buildKeyPoints(st matchState) []string {
	var points []string
	if st.airdropHits > 0 {
		points = append(points, "Direct airdrop language appears in the posts")
	}
	if st.matched["Layer1/Layer2 Infrastructure"] {
		points = append(points, "New network launches often reward their earliest users")
	}
	if st.matched["Testnet Program"] {
		points = append(points, "Testnet participation is a common criterion for retroactive rewards")
	}
	if st.matched["DeFi"] {
		points = append(points, "Early liquidity providers frequently receive boosted incentives")
	}
	if st.matched["NFT"] {
		points = append(points, "Mint allocations usually favor allowlisted wallets")
	}
	if st.matched["Quest Platform"] {
		points = append(points, "Quest completions are tracked on-chain and count toward eligibility")
	}
	if st.matched["Points/Farming"] {
		points = append(points, "Points balances often convert to token allocations at launch")
	}
	if len(points) == 0 {
		points = append(points, "General crypto/web3 information")
	}
	return points
}

func buildActionSteps(st matchState) []string {
	var steps []string
	if containsAny(st.lower, []string{"early access", "whitelist", "allowlist"}) {
		steps = append(steps, "Register for the whitelist or early-access list")
	}
	if st.airdropHits > 0 {
		steps = append(steps, "Check eligibility criteria and claim windows")
	}
	if st.matched["Testnet Program"] {
		steps = append(steps, "Complete testnet tasks with a dedicated wallet")
	}
	if st.matched["Quest Platform"] {
		steps = append(steps, "Finish the listed quests before the campaign closes")
	}
	if st.matched["Cross-chain/Bridge"] {
		steps = append(steps, "Generate bridge volume on the mentioned routes")
	}
	if len(steps) == 0 {
		steps = append(steps, "Follow official channels for updates")
	}
	return steps
}

func buildSummary(st matchState, hasOpportunity bool) string {
	if !hasOpportunity {
		return "No strong opportunity signals were detected in the posts."
	}
	return fmt.Sprintf("Potential %s opportunity detected (score %d/10).", opportunityType(st.category), st.score)
}

func buildContentSummary(st matchState) string {
	if st.category == "" {
		return "The posts contain general crypto/web3 commentary without a dominant project category."
	}
	return fmt.Sprintf("The posts discuss %s activity with %d weighted opportunity signals.", st.category, st.score)
}

func buildAdditionalContext(st matchState) string {
	for _, phrase := range highRiskPhrases {
		if strings.Contains(st.lower, phrase) {
			return "Promotional language detected; verify every claim through official sources before acting."
		}
	}
	if st.airdropHits > 0 {
		return "Airdrop-related wording is present; confirm the distribution details on the project's official channels."
	}
	return "No additional context extracted."
}
