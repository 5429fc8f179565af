// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/research-studio/internal/httputil"
	"github.com/pdiddy/research-studio/pkg/types"
)

// serperEndpoint is the Serper search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serperEndpoint = "https://google.serper.dev/search"

// maxErrorBody bounds how much of a failed response is echoed in errors.
const maxErrorBody = 512

// SerperClient queries the Serper Google Search API.
type SerperClient struct {
	client    *httputil.Client
	apiKey    string
	endpoint  string
	userAgent string
}

// NewSerperClient builds a client from cfg. An empty cfg.Endpoint uses the
// public Serper endpoint.
func NewSerperClient(cfg types.SearchConfig) *SerperClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = serperEndpoint
	}
	return &SerperClient{
		client:    httputil.NewClient(&http.Client{Timeout: timeout}, cfg.RequestsPerSecond, cfg.MaxRetries),
		apiKey:    cfg.APIKey,
		endpoint:  endpoint,
		userAgent: cfg.UserAgent,
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []serperOrganic `json:"organic"`
}

type serperOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search posts query to Serper and returns up to num organic results.
func (c *SerperClient) Search(ctx context.Context, query string, num int) ([]types.SearchHit, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search API key not configured (set search.api_key, SERPER_API_KEY, or .secrets/serper-api-key)")
	}
	if num <= 0 {
		num = DefaultResults
	}

	payload, err := json.Marshal(serperRequest{Q: query, Num: num})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("search API returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	hits := make([]types.SearchHit, 0, len(sr.Organic))
	for _, o := range sr.Organic {
		hits = append(hits, types.SearchHit{Title: o.Title, Link: o.Link, Snippet: o.Snippet})
	}
	return hits, nil
}
