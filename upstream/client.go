// Package upstream is the outbound adapter to the remote court API. All
// normalization of legacy field naming happens at this boundary; everything
// above it sees one canonical shape.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type contextKey struct{}

var bearerKey contextKey

// WithBearer attaches the caller's bearer token to the context. Requests
// without one go out anonymous; the court API may reject them.
func WithBearer(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerKey, token)
}

func bearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey).(string)
	return token
}

// Client talks to the court API over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// envelope is the court API's standard response wrapper.
type envelope struct {
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// do performs one request and decodes the response envelope's result into
// out. A nil out discards the body after the status check.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := bearerFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("court api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.Logger.Warn("court api returned an error status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("court api %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode court api response: %w", err)
	}
	if len(env.Result) == 0 {
		return fmt.Errorf("court api %s %s: empty result", method, path)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode court api result: %w", err)
	}
	return nil
}
