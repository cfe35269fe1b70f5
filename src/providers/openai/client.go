package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/veritas-labs/veritas/src/logging"
	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/webclient"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const systemPromptText = `You are a fact-checking expert. Analyze the claim for misinformation.
Respond ONLY with valid JSON:
{"misinformation_score": 0-100, "verdict": "Likely True|Likely False|Unverifiable|Misleading", "confidence": 0-100, "reasoning": "brief explanation"}`

const systemPromptSources = `You are a fact-checker. Compare the CLAIM to the NEWS SOURCES provided.
Determine if the sources SUPPORT, CONTRADICT, or are UNRELATED to the claim.
Respond ONLY with valid JSON:
{"verdict": "Verified True|Verified False|Unverifiable|Partially True", "confidence": 0-100, "reasoning": "brief explanation based on sources"}`

// Client is the primary judgment provider (GPT-4 class models).
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		model:      "gpt-4o-mini",
		endpoint:   defaultEndpoint,
		httpClient: webclient.NewDefault(60 * time.Second),
	}
}

// NewClientAt points the client at a non-default endpoint.
func NewClientAt(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

func (c *Client) Name() string { return "openai" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// JudgeText analyzes the raw claim without evidence.
func (c *Client) JudgeText(ctx context.Context, claim string) providers.Judgment {
	return c.judge(ctx, systemPromptText, fmt.Sprintf("Analyze this claim: %s", claim), 0.3)
}

// JudgeWithSources compares the claim against up to 5 sources. This is the
// key verification step: the model weighs the evidence, not the claim alone.
func (c *Client) JudgeWithSources(ctx context.Context, claim string, sources []providers.Source) providers.Judgment {
	if len(sources) == 0 {
		return c.JudgeText(ctx, claim)
	}
	return c.judge(ctx, systemPromptSources, formatClaimWithSources(claim, sources), 0.2)
}

func (c *Client) judge(ctx context.Context, system, user string, temperature float64) providers.Judgment {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   300,
		Temperature: temperature,
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	status, body, err := webclient.PostJSON(ctx, c.httpClient, c.endpoint, headers, payload)
	if err != nil {
		if logging.IsRateLimit(err) {
			log.Printf("openai: rate limited: %v", err)
		} else {
			log.Printf("openai: request failed: %v", err)
		}
		return providers.Judgment{State: providers.JudgmentUnavailable}
	}
	if status != http.StatusOK {
		var errResp chatResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			log.Printf("openai: API error: %s (type: %s, code: %s)",
				errResp.Error.Message, errResp.Error.Type, errResp.Error.Code)
		} else {
			log.Printf("openai: API error: status %d", status)
		}
		return providers.Judgment{State: providers.JudgmentUnavailable}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil || len(result.Choices) == 0 {
		log.Printf("openai: no usable choices in response")
		return providers.Judgment{State: providers.JudgmentUnavailable}
	}

	return providers.ParseJudgmentJSON(result.Choices[0].Message.Content)
}

func formatClaimWithSources(claim string, sources []providers.Source) string {
	var sb strings.Builder
	limit := len(sources)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		title := sources[i].Title
		if title == "" {
			title = "No title"
		}
		excerpt := providers.TruncateRunes(sources[i].Excerpt, 200)
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, title, excerpt)
	}
	return fmt.Sprintf("CLAIM: %s\n\nNEWS SOURCES:\n%s", claim, sb.String())
}
