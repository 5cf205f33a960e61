// Package http implements the transport client for the Open Cloud API. It is
// the single point of contact with the remote service: every outbound request
// passes through Do, which owns base-URL resolution, x-api-key injection,
// status validation, and error classification. No caller may bypass it.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rbxsync-io/rbxsync/internal/constants"
	"github.com/rbxsync-io/rbxsync/pkg/rbxcloud"
)

const (
	headerAPIKey     = "x-api-key"
	defaultUserAgent = "rbxsync-go"
	contentTypeJSON  = "application/json"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents an HTTP request to the API.
type Request struct {
	Method string
	// Path is joined onto the base URL unless it is itself an absolute
	// http(s) URL, in which case it is used as-is (the badge catalog lives
	// on a legacy host). Header injection applies either way.
	Path  string
	Query rbxcloud.Query
	// Body is JSON-marshaled when non-nil and RawBody is unset.
	Body interface{}
	// RawBody is sent verbatim with ContentType (uploads, multipart forms).
	RawBody     []byte
	ContentType string
	Headers     map[string]string
	// Timeout overrides the client-wide timeout for this request. Uploads
	// need a longer bound than ordinary API calls.
	Timeout time.Duration
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the connection-pooled transport bound to one base URL and one
// API key. It is read-only after construction; no retries, no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	logger     Logger
	debug      bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client. Test seam.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new transport client. No network call is performed.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	// retryablehttp supplies the pooled transport; retries stay pinned to
	// zero so each call is attempted exactly once.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	pooled := retryClient.StandardClient()
	pooled.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: pooled,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request against the API. Transport failures map to a
// network-kind error; non-2xx statuses map to an upstream-kind error carrying
// the status and a best-effort message, alongside the raw response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	url := c.buildURL(req.Path, req.Query)

	body, contentType, err := requestBody(req)
	if err != nil {
		return nil, rbxcloud.NewInvalidArgumentError(fmt.Sprintf("encoding request body for %s: %v", req.Path, err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(body))
	if err != nil {
		return nil, rbxcloud.NewNetworkError(req.Path, err)
	}

	httpReq.Header.Set(headerAPIKey, c.apiKey)
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    url,
		})
	}

	httpClient := c.httpClient
	if req.Timeout > 0 {
		// Shallow copy shares the pooled transport, only the deadline differs.
		override := *c.httpClient
		override.Timeout = req.Timeout
		httpClient = &override
	}

	httpResp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, rbxcloud.NewNetworkError(req.Path, err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := readAll(httpResp)
	if err != nil {
		return nil, rbxcloud.NewNetworkError(req.Path, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"size":   len(respBody),
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, rbxcloud.NewUpstreamError(req.Path, resp.StatusCode, rbxcloud.UpstreamMessage(respBody))
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query rbxcloud.Query) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostRaw performs a POST request with a verbatim body and content type,
// used for multipart forms and binary uploads. Uploads run under the longer
// upload timeout.
func (c *Client) PostRaw(ctx context.Context, path string, query rbxcloud.Query, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		Query:       query,
		RawBody:     body,
		ContentType: contentType,
		Timeout:     constants.UploadHTTPTimeout,
	})
}

// PatchRaw performs a PATCH request with a verbatim body and content type.
// Like PostRaw it carries upload payloads and runs under the upload timeout.
func (c *Client) PatchRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      http.MethodPatch,
		Path:        path,
		RawBody:     body,
		ContentType: contentType,
		Timeout:     constants.UploadHTTPTimeout,
	})
}

// buildURL joins the base URL, path, and encoded query in order. Absolute
// paths bypass the base URL but nothing else.
func (c *Client) buildURL(path string, query rbxcloud.Query) string {
	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = c.baseURL + path
	}

	if encoded := query.Encode(); encoded != "" {
		url += "?" + encoded
	}

	return url
}

// requestBody renders the request payload and its content type.
func requestBody(req *Request) ([]byte, string, error) {
	if req.RawBody != nil {
		return req.RawBody, req.ContentType, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	encoded, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}

	return encoded, contentTypeJSON, nil
}

func readAll(resp *http.Response) ([]byte, error) {
	var buf bytes.Buffer

	_, err := buf.ReadFrom(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return buf.Bytes(), nil
}
