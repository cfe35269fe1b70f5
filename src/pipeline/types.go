package pipeline

import (
	"github.com/veritas-labs/veritas/src/providers"
)

// DiscoveryStage is the fan-out search result: the de-duplicated union of
// every search provider's sources, annotated with registry credibility and
// claim relevance.
type DiscoveryStage struct {
	Sources              []providers.Source         `json:"sources"`
	ProviderCounts       map[string]int             `json:"provider_counts"`
	TotalCount           int                        `json:"total_count"`
	AvgSourceCredibility float64                    `json:"avg_source_credibility"`
	SemanticCredibility  float64                    `json:"semantic_credibility"`
	StrongMatches        int                        `json:"strong_matches"`
	Context              *providers.AggregateResult `json:"scira_context,omitempty"`
}

// AggregationStage cross-references the discovered sources via the bridge
// provider. When the bridge is unconfigured, the sources pass through
// unchanged and CrossReferenced stays false.
type AggregationStage struct {
	AggregatedSources []providers.Source         `json:"aggregated_sources"`
	Available         bool                       `json:"scira_available"`
	CrossReferenced   bool                       `json:"cross_referenced"`
	Context           *providers.AggregateResult `json:"additional_context,omitempty"`
}

// JudgmentStage is the LLM verdict on the claim, or a degraded synthetic
// verdict when no judge produced a usable result.
type JudgmentStage struct {
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Available  bool    `json:"openai_available"`
	Judge      string  `json:"judge,omitempty"`
	Error      string  `json:"error,omitempty"`
	Raw        string  `json:"raw_response,omitempty"`
}

// EnhancementStage is the purely additive follow-up lookup built from the
// judgment verdict. It never alters the verdict.
type EnhancementStage struct {
	Enhanced  bool                       `json:"enhanced"`
	Available bool                       `json:"scira_available"`
	Query     string                     `json:"enhancement_query,omitempty"`
	Result    *providers.AggregateResult `json:"scira_result,omitempty"`
}

// SocialStage is the social verification result.
type SocialStage struct {
	Posts     []providers.Post `json:"posts"`
	PostCount int              `json:"post_count"`
	Available bool             `json:"twitter_available"`
	Consensus *Consensus       `json:"social_consensus,omitempty"`
}

// Consensus summarizes the lean of the fetched social posts via literal
// keyword matching. Engagement is recorded but does not break ties.
type Consensus struct {
	TotalPosts      int    `json:"total_posts"`
	TotalEngagement int    `json:"total_engagement"`
	Supporting      int    `json:"supporting_count"`
	Contradicting   int    `json:"contradicting_count"`
	Direction       string `json:"consensus_direction"`
}

// Stages collects every stage record of one pipeline run.
type Stages struct {
	Discovery   *DiscoveryStage   `json:"source_discovery,omitempty"`
	Aggregation *AggregationStage `json:"scira_aggregation,omitempty"`
	Judgment    *JudgmentStage    `json:"openai_analysis,omitempty"`
	Enhancement *EnhancementStage `json:"scira_enhancement,omitempty"`
	Social      *SocialStage      `json:"twitter_verification,omitempty"`
}

// Result is the complete output of a verification run.
type Result struct {
	Claim      string             `json:"claim"`
	Stages     Stages             `json:"stages"`
	Verdict    string             `json:"verdict"`
	Confidence int                `json:"confidence"`
	Reasoning  string             `json:"reasoning"`
	Color      string             `json:"color"`
	Mode       string             `json:"mode,omitempty"`
	StageTimes map[string]float64 `json:"stage_times"`
	TotalTime  float64            `json:"total_time,omitempty"`
}
