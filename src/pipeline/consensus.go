package pipeline

import (
	"strings"

	"github.com/veritas-labs/veritas/src/providers"
)

var (
	contradictingTerms = []string{"fake", "false", "hoax", "debunked"}
	supportingTerms    = []string{"true", "confirmed", "verified", "real"}
)

// computeConsensus derives the social lean of the fetched posts by literal
// keyword matching. Contradicting terms win within a single post; engagement
// is summed for the record but never breaks a tie.
func computeConsensus(posts []providers.Post) *Consensus {
	if len(posts) == 0 {
		return nil
	}

	c := &Consensus{TotalPosts: len(posts)}
	for _, post := range posts {
		c.TotalEngagement += post.Engagement()

		text := strings.ToLower(post.Text)
		if containsAny(text, contradictingTerms) {
			c.Contradicting++
		} else if containsAny(text, supportingTerms) {
			c.Supporting++
		}
	}

	switch {
	case c.Supporting > c.Contradicting:
		c.Direction = "supporting"
	case c.Contradicting > c.Supporting:
		c.Direction = "contradicting"
	default:
		c.Direction = "neutral"
	}
	return c
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
