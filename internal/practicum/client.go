// Package practicum is a minimal client for the homework statuses API.
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// response bodies larger than this are truncated before decoding
const maxResponseBodySize = 1 << 20 // 1MB

var (
	ErrTransport = errors.New("api request failed")
	ErrBadStatus = errors.New("api returned unexpected status")
	ErrDecode    = errors.New("api response is not valid json")
)

// Client fetches homework review statuses from the Practicum API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	timeout    time.Duration
}

// NewClient creates a Client for the given endpoint. Every request is
// authorized with the token and bounded by the per-request timeout.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		token:      token,
		timeout:    timeout,
	}
}

// Statuses requests homeworks whose status changed at or after fromDate
// (unix seconds) and returns the decoded JSON payload.
//
// Failures are classified: ErrTransport for round-trip errors,
// ErrBadStatus for non-200 responses, ErrDecode for undecodable bodies.
// A decode failure is always surfaced, never passed through.
func (c *Client) Statuses(ctx context.Context, fromDate int64) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return payload, nil
}
