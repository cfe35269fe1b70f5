package providers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestParseJudgmentJSON(t *testing.T) {
	j := ParseJudgmentJSON(`{"verdict": "Verified True", "confidence": 85, "reasoning": "sources agree"}`)
	assert.Equal(t, JudgmentOK, j.State)
	assert.Equal(t, "Verified True", j.Verdict)
	assert.Equal(t, 85.0, j.Confidence)
	assert.Equal(t, "sources agree", j.Reasoning)
}

func TestParseJudgmentJSONWithFences(t *testing.T) {
	j := ParseJudgmentJSON("```json\n{\"verdict\": \"Likely False\", \"confidence\": 60, \"reasoning\": \"x\"}\n```")
	assert.Equal(t, JudgmentOK, j.State)
	assert.Equal(t, "Likely False", j.Verdict)

	j = ParseJudgmentJSON("```\n{\"verdict\": \"Unverifiable\", \"confidence\": 30, \"reasoning\": \"x\"}\n```")
	assert.Equal(t, JudgmentOK, j.State)
	assert.Equal(t, "Unverifiable", j.Verdict)
}

func TestParseJudgmentJSONMalformed(t *testing.T) {
	for _, content := range []string{
		"I think this claim is probably false.",
		`{"confidence": 50}`, // no verdict
		"",
	} {
		j := ParseJudgmentJSON(content)
		assert.Equal(t, JudgmentParseError, j.State, "content %q", content)
		assert.Equal(t, content, j.Raw)
		assert.Empty(t, j.Verdict)
	}
}

func TestStripMarkdownFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripMarkdownFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripMarkdownFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripMarkdownFences(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, StripMarkdownFences("Here you go:\n```json\n{\"a\":1}\n```\nLet me know!"))
}

func TestTruncateExcerpt(t *testing.T) {
	short := "brief"
	assert.Equal(t, short, TruncateExcerpt(short))

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, TruncateExcerpt(string(long)), 300)
}

func TestTruncateRunesKeepsMultibyteIntact(t *testing.T) {
	long := strings.Repeat("日本語のニュース記事", 50)

	got := TruncateRunes(long, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 200, utf8.RuneCountInString(got))

	// Bounds are characters, not bytes.
	excerpt := TruncateExcerpt(long)
	assert.True(t, utf8.ValidString(excerpt))
	assert.Equal(t, 300, utf8.RuneCountInString(excerpt))

	assert.Equal(t, "短い", TruncateRunes("短い", 200))
}

func TestPostEngagement(t *testing.T) {
	p := Post{Likes: 10, Reshares: 3, Replies: 4}
	assert.Equal(t, 20, p.Engagement())
}
