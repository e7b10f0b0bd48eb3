package sportarr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cornerman/internal/release"
)

// HTTPDoer describes the HTTP client used to reach Sportarr.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client provides access to the Sportarr HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIKey sets the X-Api-Key header sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// New creates a Sportarr client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("sportarr base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search asks the server to query its indexers for the event, optionally
// narrowed to one part. An empty result is a valid outcome, not an error.
func (c *Client) Search(ctx context.Context, eventID int64, part string) ([]release.Candidate, error) {
	if eventID <= 0 {
		return nil, errors.New("event id must be positive")
	}
	body := struct {
		Part string `json:"part,omitempty"`
	}{Part: strings.TrimSpace(part)}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/event/%d/search", c.baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return nil, newStatusError(resp)
	}

	var candidates []release.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return candidates, nil
}

// Grab submits a candidate for download. Non-2xx answers surface as
// *StatusError carrying any server-supplied message.
func (c *Client) Grab(ctx context.Context, grab GrabRequest) (*GrabReceipt, error) {
	if grab.EventID <= 0 {
		return nil, errors.New("event id must be positive")
	}
	payload, err := json.Marshal(grab)
	if err != nil {
		return nil, fmt.Errorf("encode grab request: %w", err)
	}

	endpoint := c.baseURL + "/api/release/grab"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return nil, newStatusError(resp)
	}

	receipt := &GrabReceipt{}
	if err := json.NewDecoder(resp.Body).Decode(receipt); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode grab response: %w", err)
	}
	return receipt, nil
}

// EventParts lists the files already acquired for an event, one per part.
func (c *Client) EventParts(ctx context.Context, eventID int64) ([]release.PartFile, error) {
	if eventID <= 0 {
		return nil, errors.New("event id must be positive")
	}
	endpoint := fmt.Sprintf("%s/api/event/%d/files", c.baseURL, eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return nil, newStatusError(resp)
	}

	var files []release.PartFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("decode files response: %w", err)
	}
	return files, nil
}

// RenamePreview fetches the proposed renames for the scoped files without
// changing anything on disk.
func (c *Client) RenamePreview(ctx context.Context, scope RenameScope) ([]RenameItem, error) {
	params, err := scope.values()
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/api/rename-preview?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return nil, newStatusError(resp)
	}

	var items []RenameItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode rename preview: %w", err)
	}
	return items, nil
}

// RenameApply performs the renames previously shown by RenamePreview and
// returns the applied changes as reported by the server.
func (c *Client) RenameApply(ctx context.Context, scope RenameScope) ([]RenameItem, error) {
	body, err := scope.payload()
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode rename request: %w", err)
	}

	endpoint := c.baseURL + "/api/rename"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return nil, newStatusError(resp)
	}

	var items []RenameItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rename response: %w", err)
	}
	return items, nil
}

// Ping probes the server health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	endpoint := c.baseURL + "/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if !successful(resp.StatusCode) {
		return newStatusError(resp)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
}
