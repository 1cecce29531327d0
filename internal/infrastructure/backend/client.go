package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"go.uber.org/zap"
)

// Request represents a backend HTTP request
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Response represents a raw backend HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// UnauthorizedHandler is called when the backend rejects the bearer token of ctx.
type UnauthorizedHandler func(ctx context.Context)

// Client talks JSON to the store backend. The bearer token travels in the
// request context, never in client state.
type Client struct {
	baseURL        string
	http           *http.Client
	log            *zap.Logger
	onUnauthorized UnauthorizedHandler
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUnauthorizedHandler registers the hook run on every backend 401.
func WithUnauthorizedHandler(fn UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler registers the 401 hook after construction.
func (c *Client) SetUnauthorizedHandler(fn UnauthorizedHandler) {
	c.onUnauthorized = fn
}

// Send performs req and returns the raw response. Non-2xx answers come back as
// *apperror.AppError carrying the backend's message.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "backend: encode %s %s", req.Method, req.Path)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "backend: build %s %s", req.Method, req.Path)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	c.log.Debug("backend request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil && TokenFrom(ctx) != "" {
		c.onUnauthorized(ctx)
	}
	if resp.StatusCode >= 400 {
		return nil, NewError(resp.StatusCode, respBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Headers:    resp.Header,
	}, nil
}

// Do sends req and decodes a JSON answer into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	resp, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return errors.WithSecondaryError(
			apperror.NewAPIError(http.StatusBadGateway, "Unexpected response from the server"),
			errors.Wrapf(err, "backend: decode %s %s", req.Method, req.Path),
		)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Query: query, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Query: query, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}
