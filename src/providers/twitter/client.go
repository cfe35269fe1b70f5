package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/veritas-labs/veritas/src/providers"
	"github.com/veritas-labs/veritas/src/webclient"
)

const defaultEndpoint = "https://api.twitter.com/2/tweets/search/recent"

// Client searches recent X/Twitter posts with app-only bearer auth.
type Client struct {
	bearerToken string
	endpoint    string
	httpClient  *http.Client
}

func NewClient(bearerToken string) *Client {
	return &Client{
		bearerToken: bearerToken,
		endpoint:    defaultEndpoint,
		httpClient:  webclient.NewDefault(15 * time.Second),
	}
}

// NewClientAt points the client at a non-default endpoint.
func NewClientAt(bearerToken, endpoint string) *Client {
	c := NewClient(bearerToken)
	c.endpoint = endpoint
	return c
}

type searchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		PublicMetrics struct {
			LikeCount    int `json:"like_count"`
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// SearchPosts fetches recent posts matching the query. The API caps recent
// search at 10 results per request without pagination.
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) ([]providers.Post, error) {
	if limit > 10 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", fmt.Sprintf("%d", limit))
	params.Set("tweet.fields", "created_at,public_metrics,author_id")

	headers := map[string]string{"Authorization": "Bearer " + c.bearerToken}
	status, body, err := webclient.GetJSON(ctx, c.httpClient, c.endpoint+"?"+params.Encode(), headers)
	if err != nil {
		return nil, fmt.Errorf("twitter request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("twitter API error: status %d, body: %s", status, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("twitter: failed to unmarshal response: %w", err)
	}

	posts := make([]providers.Post, 0, len(result.Data))
	for _, tweet := range result.Data {
		text := providers.TruncateRunes(tweet.Text, 200)
		posts = append(posts, providers.Post{
			Platform: "Twitter",
			Text:     text,
			URL:      fmt.Sprintf("https://twitter.com/i/status/%s", tweet.ID),
			Likes:    tweet.PublicMetrics.LikeCount,
			Reshares: tweet.PublicMetrics.RetweetCount,
			Replies:  tweet.PublicMetrics.ReplyCount,
		})
	}
	return posts, nil
}
