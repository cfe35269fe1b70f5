package exa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/webclient"
)

const defaultEndpoint = "https://api.exa.ai/search"

// Client wraps Exa's neural search API.
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

func (c *Client) Name() string { return "exa" }

type searchRequest struct {
	Query      string          `json:"query"`
	Type       string          `json:"type"`
	NumResults int             `json:"numResults"`
	Contents   contentsOptions `json:"contents"`
}

type contentsOptions struct {
	Text textOptions `json:"text"`
}

type textOptions struct {
	MaxCharacters int `json:"maxCharacters"`
}

type searchResponse struct {
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Text  string `json:"text"`
	} `json:"results"`
}

// Search runs Exa's neural search and maps results to evidence sources.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]providers.Source, error) {
	payload := searchRequest{
		Query:      query,
		Type:       "neural",
		NumResults: limit,
		Contents:   contentsOptions{Text: textOptions{MaxCharacters: 500}},
	}

	headers := map[string]string{"x-api-key": c.apiKey}
	status, body, err := webclient.PostJSON(ctx, c.httpClient, c.endpoint, headers, payload)
	if err != nil {
		return nil, fmt.Errorf("exa request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("exa API error: status %d, body: %s", status, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("exa: failed to unmarshal response: %w", err)
	}

	sources := make([]providers.Source, 0, len(result.Results))
	for _, r := range result.Results {
		sources = append(sources, providers.Source{
			Title:   r.Title,
			URL:     r.URL,
			Excerpt: providers.TruncateExcerpt(r.Text),
			Origin:  "Exa",
		})
	}
	return sources, nil
}
