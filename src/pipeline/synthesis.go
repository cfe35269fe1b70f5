package pipeline

import (
	"math"
	"strings"
)

const (
	colorGreen = "#2ecc71"
	colorRed   = "#e74c3c"
	colorAmber = "#f39c12"
)

// Synthesis is the folded outcome of all stage records.
type Synthesis struct {
	Verdict    string
	Confidence int
	Reasoning  string
	Color      string
}

// Synthesize folds the accumulated stage state into the final verdict. It is
// a pure function: no I/O, no provider calls.
//
// Confidence starts at the judgment stage's confidence, gains +10 when at
// least 3 sources were discovered, and shifts with social consensus: +5 when
// consensus agrees with the judgment's direction, -10 (floored at 20) when it
// contradicts a positive verdict. A negative verdict takes no penalty from a
// supporting consensus.
func Synthesize(stages Stages) Synthesis {
	verdict := "Uncertain"
	confidence := 30.0
	reasoning := ""
	if j := stages.Judgment; j != nil {
		verdict = j.Verdict
		confidence = j.Confidence
		reasoning = j.Reasoning
	}

	sourceCount := 0
	if d := stages.Discovery; d != nil {
		sourceCount = d.TotalCount
	}
	if sourceCount >= 3 {
		confidence = math.Min(100, confidence+10)
	}

	direction := ""
	if s := stages.Social; s != nil && s.Consensus != nil {
		direction = s.Consensus.Direction
	}
	if direction != "" {
		positive := strings.Contains(verdict, "True") || strings.Contains(verdict, "Real")
		negative := strings.Contains(verdict, "False") || strings.Contains(verdict, "Fake")
		if positive {
			if direction == "supporting" {
				confidence = math.Min(100, confidence+5)
			} else if direction == "contradicting" {
				confidence = math.Max(20, confidence-10)
			}
		} else if negative {
			if direction == "contradicting" {
				confidence = math.Min(100, confidence+5)
			}
		}
	}

	label, color := classifyVerdict(verdict)
	return Synthesis{
		Verdict:    label,
		Confidence: int(math.Round(confidence)),
		Reasoning:  reasoning,
		Color:      color,
	}
}

// classifyVerdict maps the judge's free-text wording onto a categorical label
// with a prioritized substring scan. Provider wording is free text; the
// ordered rules below are the existing contract.
func classifyVerdict(verdict string) (string, string) {
	switch {
	case strings.Contains(verdict, "True") || strings.Contains(verdict, "Real") || strings.Contains(verdict, "Support"):
		return "Verified Real", colorGreen
	case strings.Contains(verdict, "False") || strings.Contains(verdict, "Fake") || strings.Contains(verdict, "Contradict"):
		return "Likely Fake", colorRed
	case strings.Contains(verdict, "Partial"):
		return "Partially True", colorAmber
	default:
		return "Unverifiable", colorAmber
	}
}

func applySynthesis(result *Result) {
	syn := Synthesize(result.Stages)
	result.Verdict = syn.Verdict
	result.Confidence = syn.Confidence
	result.Reasoning = syn.Reasoning
	result.Color = syn.Color
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
