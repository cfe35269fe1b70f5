package scira

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/webclient"
)

const defaultEndpoint = "https://api.scira.ai/search"

// Search focus values understood by Scira.
const (
	FocusComprehensive = "comprehensive"
	FocusFactCheck     = "fact-check"
	FocusNews          = "news"
)

// Client wraps the Scira aggregation API, used as a bridge between pipeline
// stages to cross-reference and enhance discovered sources.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: webclient.NewDefault(30 * time.Second),
	}
}

type searchRequest struct {
	Query       string `json:"query"`
	Model       string `json:"model"`
	SearchFocus string `json:"search_focus"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Excerpt string `json:"excerpt"`
	} `json:"results"`
}

// Search queries Scira with the given focus and returns the aggregate, with
// the raw payload preserved for diagnostics.
func (c *Client) Search(ctx context.Context, query, focus string) (*providers.AggregateResult, error) {
	if focus == "" {
		focus = FocusComprehensive
	}
	payload := searchRequest{
		Query:       query,
		Model:       "scira-default",
		SearchFocus: focus,
		MaxResults:  5,
	}

	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	status, body, err := webclient.PostJSON(ctx, c.httpClient, c.endpoint, headers, payload)
	if err != nil {
		return nil, fmt.Errorf("scira request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("scira API error: status %d", status)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("scira: failed to unmarshal response: %w", err)
	}

	agg := &providers.AggregateResult{
		Query:  query,
		Answer: result.Answer,
		Raw:    json.RawMessage(body),
	}
	for _, r := range result.Results {
		agg.Sources = append(agg.Sources, providers.Source{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: providers.TruncateExcerpt(r.Excerpt),
			Origin:  "Scira",
		})
	}
	return agg, nil
}
