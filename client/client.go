// Package client is the HTTP client for the career-mentor service. All
// outbound calls go through a single transport that owns authorization
// header injection and 401 session teardown, so the per-endpoint methods
// only deal with request shapes and response classification.
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
)

const DefaultBaseURL = "http://localhost:8000/api/v1"

type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is still
// wrapped with the auth transport.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func NewClient(baseURL string, creds CredentialSource, options ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		creds:      creds,
	}

	for _, option := range options {
		option(client)
	}

	client.httpClient.Transport = newAuthTransport(client.httpClient.Transport, creds)
	return client
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON marshals body (if non-nil) as JSON and executes the request.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	return c.do(ctx, method, path, "application/json", reader, out)
}

// do executes a request against the service and classifies the outcome.
// Transport failures become ConnectionError, 401 becomes ErrSessionExpired
// (the transport has already cleared the session by then), 429 becomes
// RateLimitError with the server-supplied detail, any other non-2xx becomes
// APIError. On success the body is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return err
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func classifyStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := decodeDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrSessionExpired
	case http.StatusTooManyRequests:
		return &RateLimitError{Detail: detail}
	default:
		return &APIError{StatusCode: resp.StatusCode, Detail: detail}
	}
}

// decodeDetail extracts the {"detail": "..."} error envelope the service
// uses. A body that does not match yields an empty detail.
func decodeDetail(body io.Reader) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Detail
}
