package types

import "time"

// Author identifies the account that published a post.
type Author struct {
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}

// ExtractedPost is the result of extracting a single post URL.
// Either Text/Timestamp or Error is meaningfully populated; a post with a
// non-empty Error is excluded from the merged corpus. Created once per URL
// and never mutated afterwards.
type ExtractedPost struct {
	URL       string    `json:"url"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	Timestamp string    `json:"timestamp"`
	ScrapedAt time.Time `json:"scraped_at"`
	Error     string    `json:"error,omitempty"`
}

// Risk and confidence levels shared by both analysis strategies.
const (
	LevelNone   = "none"
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// CategoryGeneral is the category reported when nothing else matched.
const CategoryGeneral = "General"

// Categories is the fixed project taxonomy used by both analysis strategies.
// The remote prompt enumerates all fourteen; the local heuristic carries
// keyword sets for twelve of them (fundraising and governance signals are too
// diffuse for keyword matching).
var Categories = []string{
	"Layer1/Layer2 Infrastructure",
	"DeFi",
	"NFT",
	"AI/ML",
	"Gaming/Metaverse",
	"Testnet Program",
	"Quest Platform",
	"Fundraising",
	"Points/Farming",
	"Cross-chain/Bridge",
	"Privacy/Security",
	"Infrastructure",
	"SocialFi/Creator Economy",
	"Governance/DAO",
}

// AnalysisResult is the canonical classification schema. Every code path,
// remote or local, produces exactly this shape.
type AnalysisResult struct {
	ContentSummary    string   `json:"content_summary"`
	Category          string   `json:"category"`
	PotentialScore    int      `json:"potential_score"`
	HasOpportunity    bool     `json:"has_opportunity"`
	Summary           string   `json:"summary"`
	KeyPoints         []string `json:"key_points"`
	ActionSteps       []string `json:"action_steps"`
	OpportunityType   string   `json:"opportunity_type"`
	MentionedEntities []string `json:"mentioned_entities"`
	RiskLevel         string   `json:"risk_level"`
	ConfidenceLevel   string   `json:"confidence_level"`
	EstimatedTimeline string   `json:"estimated_timeline"`
	AdditionalContext string   `json:"additional_context"`
}

// BatchResult is the envelope returned to collaborators for one batch of
// post URLs. Success is false only when the browser session itself could not
// be created. Per-post detail is available separately via RunDetailed.
type BatchResult struct {
	Corpus     string         `json:"corpus"`
	Success    bool           `json:"success"`
	TotalPosts int            `json:"total_posts"`
	Analysis   AnalysisResult `json:"analysis"`
	Error      string         `json:"error,omitempty"`
}
