package analyzer

// Keyword tables for the local heuristic strategy. These are isolated here
// because they are the entire contract of the offline classifier: scoring is
// occurrence counts against these fixed sets, nothing else.

// airdropKeywords are direct opportunity indicators, weighted x3 per
// occurrence. Entries must not be substrings of each other or occurrences
// double-count.
var airdropKeywords = []string{
	"airdrop",
	"air drop",
	"token distribution",
	"free tokens",
	"retroactive reward",
	"eligibility snapshot",
}

// categorySet pairs a taxonomy category with its keyword set, weighted x2
// per occurrence.
type categorySet struct {
	Category string
	Keywords []string
}

// categorySets is iterated in order; the LAST set with at least one match
// becomes the selected category, so reordering this slice is a behavior
// change. Fundraising and governance have no keyword set and are reachable
// only through the remote strategy.
var categorySets = []categorySet{
	{"Layer1/Layer2 Infrastructure", []string{"layer 1", "layer 2", "l1 chain", "l2 chain", "rollup", "new chain", "blockchain launch"}},
	{"DeFi", []string{"defi", "liquidity pool", "yield farming", "lending protocol", "dex ", "swap protocol", "staking rewards"}},
	{"NFT", []string{"nft", "mint pass", "free mint", "pfp collection", "genesis collection"}},
	{"AI/ML", []string{" ai ", "ai agent", "machine learning", "llm", "inference network"}},
	{"Gaming/Metaverse", []string{"gamefi", "play to earn", "play-to-earn", "metaverse", "game beta"}},
	{"Testnet Program", []string{"testnet", "test network", "incentivized testnet", "devnet"}},
	{"Quest Platform", []string{"quest", "galxe", "zealy", "layer3", "campaign tasks"}},
	{"Points/Farming", []string{"points program", "points system", "farming points", "point farming", "xp system"}},
	{"Cross-chain/Bridge", []string{"cross-chain", "cross chain", "bridge volume", "bridging", "interoperability"}},
	{"Privacy/Security", []string{"privacy", "zero-knowledge", "zk proof", "audit", "security review"}},
	{"Infrastructure", []string{"node operator", "validator", "rpc provider", "oracle network", "data availability"}},
	{"SocialFi/Creator Economy", []string{"socialfi", "creator economy", "social protocol", "content rewards"}},
}

// actionKeywords are calls to action, weighted x1 per occurrence.
var actionKeywords = []string{
	"join",
	"register",
	"sign up",
	"connect wallet",
	"claim",
	"early access",
	"whitelist",
	"allowlist",
	"complete tasks",
	"follow",
	"invite",
}

// highRiskPhrases force riskLevel=high when present anywhere in the corpus.
var highRiskPhrases = []string{
	"guaranteed",
	"100%",
	"pump",
	"get rich",
	"double your",
	"risk free",
}

// lowRiskSignals, combined with at least one extracted entity or a direct
// airdrop indicator, lower riskLevel to low.
var lowRiskSignals = []string{
	"testnet",
	"official",
	"mainnet",
	"documentation",
	"github",
}

// opportunityTypes maps a selected category to its opportunity type. A
// category without an entry reports "Early Access"; no category at all
// reports "General Information".
var opportunityTypes = map[string]string{
	"Testnet Program":  "TestNet Rewards",
	"NFT":              "NFT Mint",
	"DeFi":             "DeFi Farming",
	"Quest Platform":   "Quest Rewards",
	"Points/Farming":   "Points Program",
	"Gaming/Metaverse": "Game Early Access",
}
