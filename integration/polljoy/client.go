package polljoy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBackendResponse caps how much of a backend reply is read.
const maxBackendResponse = 8 << 20

// Client posts form-encoded parameters to the polljoy backend.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a backend client. baseURL must be an absolute http(s) URL;
// a trailing slash is added when missing.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: backend url must be absolute http(s): %q", ErrInvalidConfig, baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{http: httpClient, baseURL: baseURL}, nil
}

// Post sends params to endpoint (relative to the base URL, already escaped)
// and returns the raw response body. Cancelling ctx aborts the call.
func (c *Client) Post(ctx context.Context, endpoint string, params Params) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, errors.Join(ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBackendResponse))
	if err != nil {
		return nil, errors.Join(ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %d", ErrBackendStatus, endpoint, resp.StatusCode)
	}
	return body, nil
}
