package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client issues REST calls against the upstream HRIS API.
// A Client without a token source sends anonymous requests (login).
type Client struct {
	baseURL    string
	httpClient *http.Client
	source     oauth2.TokenSource
}

// New creates a client for baseURL. A zero timeout disables the client-side deadline.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithTokenSource returns a copy of c that attaches the bearer token from src to every request.
// The token is read from src at request time, never cached by the client.
func (c *Client) WithTokenSource(src oauth2.TokenSource) *Client {
	base := c.httpClient.Transport
	if t, ok := base.(*oauth2.Transport); ok {
		base = t.Base
	}
	return &Client{
		baseURL: c.baseURL,
		httpClient: &http.Client{
			Timeout: c.httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: src,
				Base:   base,
			},
		},
		source: src,
	}
}

// WithHTTPClient replaces the underlying transport client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	out := *c
	out.httpClient = hc
	if c.source != nil {
		return out.WithTokenSource(c.source)
	}
	return &out
}

// helper: build full URL with query params
func (c *Client) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid upstream path %q: %w", path, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Get sends a GET request and returns the raw response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post sends a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put sends a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	fullURL, err := c.buildURL(path, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return json.RawMessage(data), nil
}
