package helix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shurizzle/twitch-api2/auth"
)

// DefaultBaseURL is the Helix API root.
const DefaultBaseURL = "https://api.twitch.tv/helix/"

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "twitch-api2-go"

// HTTPClient is the transport the client sends requests through.
// *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the client-wide configuration.
type Config struct {
	// BaseURL is the Helix root. Defaults to DefaultBaseURL.
	BaseURL string
	// UserAgent is sent with every request. Defaults to DefaultUserAgent.
	UserAgent string
	// Headers are added to every request. They cannot override the
	// authorization, client id or content type headers.
	Headers http.Header
}

// Client executes Helix requests. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	config     Config
	httpClient HTTPClient
	logger     zerolog.Logger
}

// NewClient creates a new Helix client
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", cfg.BaseURL)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	cfg.Headers = cfg.Headers.Clone()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Client{
		config:     cfg,
		httpClient: o.client(),
		logger:     o.logger,
	}, nil
}

// Config returns the client configuration
func (c *Client) Config() Config {
	cfg := c.config
	cfg.Headers = cfg.Headers.Clone()
	return cfg
}

// ReqGet executes a GET request.
func ReqGet[R RequestGet[D], D any](ctx context.Context, c *Client, req R, token auth.Token) (*Response[R, D], error) {
	return execute(ctx, c, http.MethodGet, req, nil, token, req.ParseGetResponse)
}

// ReqPost executes a POST request with the given body.
func ReqPost[R RequestPost[B, D], B HelixRequestBody, D any](ctx context.Context, c *Client, req R, body B, token auth.Token) (*Response[R, D], error) {
	return execute(ctx, c, http.MethodPost, req, body, token, req.ParsePostResponse)
}

// ReqPut executes a PUT request with the given body.
func ReqPut[R RequestPut[B, D], B HelixRequestBody, D any](ctx context.Context, c *Client, req R, body B, token auth.Token) (*Response[R, D], error) {
	return execute(ctx, c, http.MethodPut, req, body, token, req.ParsePutResponse)
}

// ReqPatch executes a PATCH request with the given body.
func ReqPatch[R RequestPatch[B, D], B HelixRequestBody, D any](ctx context.Context, c *Client, req R, body B, token auth.Token) (*Response[R, D], error) {
	return execute(ctx, c, http.MethodPatch, req, body, token, req.ParsePatchResponse)
}

// ReqDelete executes a DELETE request.
func ReqDelete[R RequestDelete[D], D any](ctx context.Context, c *Client, req R, token auth.Token) (*Response[R, D], error) {
	return execute(ctx, c, http.MethodDelete, req, nil, token, req.ParseDeleteResponse)
}

// execute is the single execution path of every verb. It checks scopes,
// builds the URI and body, sends exactly one request and decodes the
// result. Nothing is retried and req is never modified.
func execute[R Request, D any](ctx context.Context, c *Client, method string, req R, body HelixRequestBody, token auth.Token, parse func(uri string, status int, body []byte) (InnerResponse[D], error)) (*Response[R, D], error) {
	if token == nil {
		return nil, &CreateRequestError{Method: method, Err: fmt.Errorf("token is required")}
	}
	if missing := auth.MissingScopes(token.Scopes(), req.Scopes()); len(missing) > 0 {
		return nil, &ScopeError{Path: req.Path(), Missing: missing}
	}

	uri, err := BuildURI(c.config.BaseURL, req)
	if err != nil {
		return nil, &CreateRequestError{Method: method, Err: err}
	}

	payload, contentType, err := encodeBody(body)
	if err != nil {
		return nil, &CreateRequestError{Method: method, Err: err}
	}

	accessToken, err := token.AccessToken(ctx)
	if err != nil {
		err = fmt.Errorf("could not get access token: %w", err)
		if isNetworkError(err) {
			return nil, &TransportError{Method: method, URI: uri, Err: err}
		}
		return nil, &CreateRequestError{Method: method, Err: err}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return nil, &CreateRequestError{Method: method, Err: &InvalidURIError{Path: req.Path(), Reason: "could not create request", Err: err}}
	}

	for key, values := range c.config.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Client-Id", token.ClientID())
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug().
		Str("method", method).
		Str("uri", uri).
		Int("body_bytes", len(payload)).
		Msg("Making Helix API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Method: method, URI: uri, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URI: uri, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	rateLimit := parseRateLimit(resp.Header)

	c.logger.Debug().
		Str("method", method).
		Str("uri", uri).
		Int("status", resp.StatusCode).
		Int("ratelimit_remaining", rateLimit.Remaining).
		Msg("Received Helix API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(method, uri, resp.StatusCode, raw, rateLimit)
	}

	inner, err := parse(uri, resp.StatusCode, raw)
	if err != nil {
		return nil, err
	}

	return &Response[R, D]{
		Data:       inner.Data,
		Pagination: inner.Pagination.Cursor,
		Total:      inner.Total,
		RateLimit:  rateLimit,
		Request:    req,
	}, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// newStatusError builds the error for a non-success status. A body that is
// not the Helix error object is kept raw and does not change the kind.
func newStatusError(method, uri string, status int, body []byte, rateLimit RateLimit) *StatusError {
	e := &StatusError{
		Method:    method,
		URI:       uri,
		Status:    status,
		Body:      body,
		RateLimit: rateLimit,
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.ErrorName = eb.Error
		e.Message = eb.Message
	}
	if e.ErrorName == "" {
		e.ErrorName = http.StatusText(status)
	}
	return e
}

// isNetworkError reports whether a credential failure came from the network
// (or the caller's context) rather than from a rejected credential.
func isNetworkError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
