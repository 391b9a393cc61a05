// Package providers implements the remote analysis strategies that call an
// external inference service with a fixed prompt/taxonomy contract.
package providers

import (
	"fmt"
	"strings"

	"github.com/dipu67/analyzer/internal/types"
)

// systemInstruction asserts the classifier's role and the required response
// language for every remote call.
const systemInstruction = `You are a specialized crypto opportunity analyst. You evaluate social media posts for early-stage participation value: airdrops, testnet programs, quest campaigns, points systems, and similar opportunities. You are precise, skeptical of promotional language, and always respond in English.`

// scoringRubric is the additive scorecard the remote model applies.
var scoringRubric = []string{
	"+3 direct airdrop/token distribution mention",
	"+2 testnet or beta access program",
	"+2 new project or network launch",
	"+2 early access or whitelist opportunity",
	"+2 points or farming system",
	"+1 quest or task campaign",
	"+1 fundraising news",
	"+1 partnership announcement",
}

// buildPrompt constructs the user message: corpus, taxonomy, rubric, and the
// exact-one-JSON-object response contract.
func buildPrompt(corpus string) string {
	var sb strings.Builder

	sb.WriteString("Analyze the following social media posts for opportunity signals.\n\n")
	sb.WriteString("## Posts\n\n")
	sb.WriteString(corpus)
	sb.WriteString("\n\n## Categories\n\n")
	sb.WriteString("Classify the content into exactly one of these categories, or \"General\" if none apply:\n")
	for _, c := range types.Categories {
		sb.WriteString(fmt.Sprintf("- %s\n", c))
	}

	sb.WriteString("\n## Scoring\n\n")
	sb.WriteString("Compute potential_score additively, capped at 10:\n")
	for _, r := range scoringRubric {
		sb.WriteString(fmt.Sprintf("- %s\n", r))
	}

	sb.WriteString("\n## Response format\n\n")
	sb.WriteString("Respond with exactly ONE JSON object and no other text. No markdown, no code fences, no explanation. The object must have exactly these keys:\n\n")
	sb.WriteString(`{
  "content_summary": "one-paragraph description of the posts, in English",
  "category": "one of the categories above or General",
  "potential_score": 0,
  "has_opportunity": false,
  "summary": "one sentence verdict",
  "key_points": ["..."],
  "action_steps": ["..."],
  "opportunity_type": "...",
  "mentioned_entities": ["up to 5 project/account names"],
  "risk_level": "none|low|medium|high",
  "confidence_level": "none|low|medium|high",
  "estimated_timeline": "...",
  "additional_context": "..."
}`)
	sb.WriteString("\n")

	return sb.String()
}
