// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

package jsonrpc

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

	apperrors "cougardb/cli/internal/errors"
)

// maxBodyInError caps how much of an unexpected body is quoted in an error.
const maxBodyInError = 200

// Config configures a Client.
type Config struct {
	// URL is the fully-qualified http(s) endpoint. Required.
	URL string
	// Method overrides DefaultMethod.
	Method string
	// IDs supplies correlation ids; defaults to NewRandomIDs(nil).
	IDs IDSource
	// Timeout bounds a whole call when HTTPClient is nil. Zero means no limit.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client posts query envelopes to a single endpoint. It is safe for concurrent use.
type Client struct {
	url    string
	method string
	ids    IDSource
	http   *http.Client
}

// New validates cfg and creates a Client.
func New(cfg Config) (*Client, error) {
	if err := ValidateURL(cfg.URL); err != nil {
		return nil, err
	}
	c := &Client{
		url:    cfg.URL,
		method: cfg.Method,
		ids:    cfg.IDs,
		http:   cfg.HTTPClient,
	}
	if c.method == "" {
		c.method = DefaultMethod
	}
	if c.ids == nil {
		c.ids = NewRandomIDs(nil)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	return c, nil
}

// ValidateURL reports whether raw is a usable http(s) endpoint.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return apperrors.New(apperrors.Config, "endpoint URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return apperrors.Wrap(apperrors.Config, "invalid endpoint URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.New(apperrors.Config, fmt.Sprintf("endpoint URL scheme must be http or https, got %q", u.Scheme))
	}
	if u.Host == "" {
		return apperrors.New(apperrors.Config, "endpoint URL has no host")
	}
	return nil
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// Call sends query as the params of one request and returns the tabular result.
// A logical failure reported by the service is returned as *Error.
func (c *Client) Call(ctx context.Context, query string) (*Result, error) {
	payload, err := json.Marshal(Request{
		JSONRPC: Version,
		ID:      c.ids.NextID(),
		Method:  c.method,
		Params:  query,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "post query", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "read response", err)
	}

	env, decodeErr := DecodeResponse(body)
	// A JSON-RPC error body wins over the HTTP status: it carries the service's own message.
	if decodeErr == nil && env.Error != nil {
		return nil, remoteError(env.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.New(apperrors.HTTPStatus, fmt.Sprintf("http %d: %s", resp.StatusCode, snippet(body)))
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return env.tabular()
}

// DecodeResponse parses body into a Response, keeping numbers as json.Number.
func DecodeResponse(body []byte) (*Response, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var env Response
	if err := dec.Decode(&env); err != nil {
		return nil, apperrors.Wrap(apperrors.MalformedResponse, "decode response", err)
	}
	return &env, nil
}

// tabular checks the shape of a successful envelope.
func (r *Response) tabular() (*Result, error) {
	if r.Result == nil {
		return nil, apperrors.New(apperrors.MalformedResponse, "response has neither result nor error")
	}
	if r.Result.Columns == nil {
		return nil, apperrors.New(apperrors.MalformedResponse, "result has no columns")
	}
	if r.Result.Series == nil {
		return nil, apperrors.New(apperrors.MalformedResponse, "result has no series")
	}
	for i, row := range r.Result.Series {
		if row == nil {
			return nil, apperrors.New(apperrors.MalformedResponse, fmt.Sprintf("series row %d is null", i))
		}
	}
	return r.Result, nil
}

func remoteError(e *Error) error {
	if e.Message == "" {
		return apperrors.New(apperrors.MalformedResponse, "error object has no message")
	}
	return e
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyInError {
		s = s[:maxBodyInError] + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
