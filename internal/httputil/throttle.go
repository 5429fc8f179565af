// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// Client pairs an http.Client with a proactive token-bucket throttle and the
// 429 retry policy of DoWithRetry.
type Client struct {
	HTTP       *http.Client
	MaxRetries int

	limiter *rate.Limiter
}

// NewClient returns a Client that issues at most rps requests per second.
// rps <= 0 disables throttling. A nil hc uses http.DefaultClient.
func NewClient(hc *http.Client, rps float64, maxRetries int) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{HTTP: hc, MaxRetries: maxRetries}
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return c
}

// Do waits for the throttle, then sends req with retries on HTTP 429.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
}
