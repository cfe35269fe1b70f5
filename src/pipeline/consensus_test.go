package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veritas-labs/veritas/src/providers"
)

func TestComputeConsensusEmpty(t *testing.T) {
	assert.Nil(t, computeConsensus(nil))
	assert.Nil(t, computeConsensus([]providers.Post{}))
}

func TestComputeConsensusDirections(t *testing.T) {
	posts := []providers.Post{
		{Text: "This was debunked weeks ago", Likes: 10, Reshares: 2, Replies: 3},
		{Text: "Total hoax, do not share"},
		{Text: "Confirmed by several outlets"},
		{Text: "interesting thread about space"},
	}

	c := computeConsensus(posts)
	require.NotNil(t, c)
	assert.Equal(t, 4, c.TotalPosts)
	assert.Equal(t, 17, c.TotalEngagement) // 10 + 2*2 + 3
	assert.Equal(t, 2, c.Contradicting)
	assert.Equal(t, 1, c.Supporting)
	assert.Equal(t, "contradicting", c.Direction)
}

func TestComputeConsensusContradictingWinsWithinPost(t *testing.T) {
	posts := []providers.Post{
		{Text: "people say it is true but it was debunked"},
	}

	c := computeConsensus(posts)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.Contradicting)
	assert.Equal(t, 0, c.Supporting)
}

func TestComputeConsensusTieIsNeutral(t *testing.T) {
	posts := []providers.Post{
		{Text: "this is fake"},
		{Text: "this is real"},
	}

	c := computeConsensus(posts)
	require.NotNil(t, c)
	assert.Equal(t, "neutral", c.Direction)
}
