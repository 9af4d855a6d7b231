package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Client wraps outbound calls to the rental API. Every call is
// single-shot: no retries, no timeouts beyond what the context carries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a gateway client for the given API root.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues a JSON request and normalizes every failure mode into the
// gateway error taxonomy. A 204 or empty body yields a nil payload; a
// body that is not valid JSON also yields a nil payload rather than an
// error.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("gateway request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UnreachableError{BaseURL: c.baseURL}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{BaseURL: c.baseURL}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractMessage(raw)
		if message == "" {
			if resp.StatusCode == http.StatusInternalServerError && strings.Contains(url, "/api/") {
				message = "Backend API is unavailable. Start the rental API on port 8081."
			} else {
				message = fmt.Sprintf("Request failed (%d)", resp.StatusCode)
			}
		}
		c.logger.Debug("gateway error response", "status", resp.StatusCode, "message", message)
		return nil, &HTTPError{Status: resp.StatusCode, Message: message}
	}

	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, nil
	}
	return json.RawMessage(raw), nil
}

// extractMessage pulls a human message out of an error body, taking the
// first present of message, error, detail, title.
func extractMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "detail", "title"} {
		if value, ok := fields[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
