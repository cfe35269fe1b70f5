package providers

import (
	"context"
	"encoding/json"
)

// Source is one unit of retrieved evidence. Registry and relevance fields are
// attached by the pipeline at discovery time; domain_score is always
// registry_score / 100.
type Source struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Excerpt       string  `json:"excerpt"`
	Origin        string  `json:"source"`
	Relevance     float64 `json:"relevance,omitempty"`
	DomainScore   float64 `json:"domain_score,omitempty"`
	RegistryScore float64 `json:"registry_score,omitempty"`
}

// Post is one social media post with its engagement metrics.
type Post struct {
	Platform string `json:"platform"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Likes    int    `json:"like_count"`
	Reshares int    `json:"retweet_count"`
	Replies  int    `json:"reply_count"`
}

// Engagement is the weighted interaction count used by the social stage.
func (p Post) Engagement() int {
	return p.Likes + 2*p.Reshares + p.Replies
}

// JudgmentState tags a judge provider's result so callers must handle the
// parse-error and unavailable cases instead of probing for an error key.
type JudgmentState int

const (
	JudgmentUnavailable JudgmentState = iota
	JudgmentOK
	JudgmentParseError
)

// Judgment is the tagged output of a judge provider. Verdict, Confidence and
// Reasoning are meaningful only when State is JudgmentOK; Raw carries the
// unparseable payload when State is JudgmentParseError.
type Judgment struct {
	State      JudgmentState
	Verdict    string
	Confidence float64
	Reasoning  string
	Raw        string
}

// AggregateResult is a bridge provider's cross-reference lookup: an optional
// synthesized answer, any structured sources, and the raw payload for
// diagnostics.
type AggregateResult struct {
	Query   string          `json:"query"`
	Answer  string          `json:"answer,omitempty"`
	Sources []Source        `json:"sources,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// Searcher finds candidate evidence for a claim. An empty result with a nil
// error means the provider simply had nothing to contribute.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Source, error)
}

// Aggregator is a bridge provider that cross-references a query with a given
// search focus (comprehensive, fact-check, news).
type Aggregator interface {
	Search(ctx context.Context, query, focus string) (*AggregateResult, error)
}

// Judge compares a claim against evidence and returns a structured judgment.
type Judge interface {
	Name() string
	JudgeWithSources(ctx context.Context, claim string, sources []Source) Judgment
	JudgeText(ctx context.Context, claim string) Judgment
}

// SocialSearcher finds recent social posts matching a query.
type SocialSearcher interface {
	SearchPosts(ctx context.Context, query string, limit int) ([]Post, error)
}

// TruncateExcerpt bounds excerpt text to the standard 300 characters. Bounds
// are in runes so multibyte text is never cut mid-sequence.
func TruncateExcerpt(text string) string {
	return TruncateRunes(text, 300)
}

// TruncateRunes bounds text to at most n characters.
func TruncateRunes(text string, n int) string {
	r := []rune(text)
	if len(r) > n {
		return string(r[:n])
	}
	return text
}
