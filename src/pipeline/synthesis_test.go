package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizePositiveVerdictWithSupport(t *testing.T) {
	stages := Stages{
		Discovery: &DiscoveryStage{TotalCount: 4},
		Judgment:  &JudgmentStage{Verdict: "Likely True", Confidence: 60, Reasoning: "multiple outlets agree", Available: true},
		Social:    &SocialStage{Consensus: &Consensus{Direction: "supporting"}},
	}

	syn := Synthesize(stages)
	assert.Equal(t, "Verified Real", syn.Verdict)
	assert.Equal(t, 75, syn.Confidence) // 60 +10 sources +5 consensus
	assert.Equal(t, "multiple outlets agree", syn.Reasoning)
	assert.Equal(t, colorGreen, syn.Color)
}

func TestSynthesizeNegativeVerdictWithContradiction(t *testing.T) {
	stages := Stages{
		Discovery: &DiscoveryStage{TotalCount: 1},
		Judgment:  &JudgmentStage{Verdict: "Likely False", Confidence: 70, Available: true},
		Social:    &SocialStage{Consensus: &Consensus{Direction: "contradicting"}},
	}

	syn := Synthesize(stages)
	assert.Equal(t, "Likely Fake", syn.Verdict)
	assert.Equal(t, 75, syn.Confidence) // 70, no source bonus, +5 agreeing consensus
	assert.Equal(t, colorRed, syn.Color)
}

func TestSynthesizeNegativeVerdictSupportingSocial(t *testing.T) {
	// Supporting consensus does not penalize a negative verdict.
	stages := Stages{
		Judgment: &JudgmentStage{Verdict: "Likely False", Confidence: 70, Available: true},
		Social:   &SocialStage{Consensus: &Consensus{Direction: "supporting"}},
	}

	syn := Synthesize(stages)
	assert.Equal(t, 70, syn.Confidence)
}

func TestSynthesizeContradictionFloor(t *testing.T) {
	stages := Stages{
		Judgment: &JudgmentStage{Verdict: "Likely True", Confidence: 25, Available: true},
		Social:   &SocialStage{Consensus: &Consensus{Direction: "contradicting"}},
	}

	syn := Synthesize(stages)
	assert.Equal(t, 20, syn.Confidence)
}

func TestSynthesizeConfidenceCap(t *testing.T) {
	stages := Stages{
		Discovery: &DiscoveryStage{TotalCount: 5},
		Judgment:  &JudgmentStage{Verdict: "True", Confidence: 95, Available: true},
		Social:    &SocialStage{Consensus: &Consensus{Direction: "supporting"}},
	}

	syn := Synthesize(stages)
	assert.Equal(t, 100, syn.Confidence)
}

func TestSynthesizeWithoutJudgment(t *testing.T) {
	syn := Synthesize(Stages{})
	assert.Equal(t, "Unverifiable", syn.Verdict)
	assert.Equal(t, 30, syn.Confidence)
	assert.Equal(t, colorAmber, syn.Color)

	syn = Synthesize(Stages{Discovery: &DiscoveryStage{TotalCount: 3}})
	assert.Equal(t, 40, syn.Confidence)
}

func TestClassifyVerdict(t *testing.T) {
	cases := []struct {
		verdict string
		label   string
		color   string
	}{
		{"Likely True", "Verified Real", colorGreen},
		{"Real", "Verified Real", colorGreen},
		{"Supported by evidence", "Verified Real", colorGreen},
		{"Likely False", "Likely Fake", colorRed},
		{"Fake news", "Likely Fake", colorRed},
		{"Contradicted", "Likely Fake", colorRed},
		{"Partially accurate", "Partially True", colorAmber},
		{"Uncertain", "Unverifiable", colorAmber},
		{"Sources Found", "Unverifiable", colorAmber},
		// Positive match outranks the partial match by rule order.
		{"Partially True", "Verified Real", colorGreen},
	}
	for _, tc := range cases {
		label, color := classifyVerdict(tc.verdict)
		assert.Equal(t, tc.label, label, "verdict %q", tc.verdict)
		assert.Equal(t, tc.color, color, "verdict %q", tc.verdict)
	}
}
