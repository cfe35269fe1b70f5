package tavily

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/webclient"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Client wraps Tavily's research API.
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

func (c *Client) Name() string { return "tavily" }

type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs Tavily's advanced research mode. The AI-generated answer, when
// present, is surfaced as a URL-less pseudo-source so it can be shown but is
// excluded from credibility scoring.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]providers.Source, error) {
	payload := searchRequest{
		APIKey:            c.apiKey,
		Query:             query,
		SearchDepth:       "advanced",
		MaxResults:        limit,
		IncludeAnswer:     true,
		IncludeRawContent: true,
	}

	status, body, err := webclient.PostJSON(ctx, c.httpClient, c.endpoint, nil, payload)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("tavily API error: status %d, body: %s", status, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("tavily: failed to unmarshal response: %w", err)
	}

	var sources []providers.Source
	if result.Answer != "" {
		sources = append(sources, providers.Source{
			Title:   "AI Summary",
			URL:     "",
			Excerpt: result.Answer,
			Origin:  "Tavily AI",
		})
	}
	for _, r := range result.Results {
		sources = append(sources, providers.Source{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: providers.TruncateExcerpt(r.Content),
			Origin:  "Tavily",
		})
	}
	return sources, nil
}
