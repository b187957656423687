// Package client talks to the portfolio contact API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/portfolio/internal/api/dto/common"
	"github.com/osa911/portfolio/internal/api/dto/v1/contact"
)

// ContactPath is the contact submission endpoint.
const ContactPath = "/api/contact"

// Client posts contact submissions to a running API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL. A nil httpClient gets a 15 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit posts payload and decodes the standard response envelope. The
// status code is returned alongside so callers can tell degraded outcomes
// apart. An error means the request failed or the body was not an envelope.
func (c *Client) Submit(ctx context.Context, payload contact.ContactRequest) (common.APIResponse, int, error) {
	var resp common.APIResponse

	body, err := json.Marshal(payload)
	if err != nil {
		return resp, 0, fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ContactPath, bytes.NewReader(body))
	if err != nil {
		return resp, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return resp, 0, fmt.Errorf("failed to submit contact form: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return resp, httpResp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, httpResp.StatusCode, fmt.Errorf("unexpected response (status %d): %s", httpResp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return resp, httpResp.StatusCode, nil
}
