package providers

import (
	"encoding/json"
	"strings"
)

type judgmentPayload struct {
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ParseJudgmentJSON parses a model's judgment reply, tolerating markdown code
// fences around the JSON. A reply that still fails to parse is captured as a
// ParseError with the raw payload attached for diagnostics.
func ParseJudgmentJSON(content string) Judgment {
	raw := content
	content = StripMarkdownFences(content)

	var payload judgmentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil || payload.Verdict == "" {
		return Judgment{State: JudgmentParseError, Raw: raw}
	}

	return Judgment{
		State:      JudgmentOK,
		Verdict:    payload.Verdict,
		Confidence: payload.Confidence,
		Reasoning:  payload.Reasoning,
	}
}

// StripMarkdownFences unwraps ```json ... ``` style fencing if present.
func StripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)
	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
	} else {
		return content
	}
	if end := strings.Index(content, "```"); end >= 0 {
		content = content[:end]
	}
	return strings.TrimSpace(content)
}
