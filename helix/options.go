package helix

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient HTTPClient
	timeout    time.Duration
	logger     zerolog.Logger
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout: 30 * time.Second,
		logger:  zerolog.Nop(),
	}
}

// WithHTTPClient sets the transport used for requests. Timeouts,
// cancellation and connection handling belong to it.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client. It has no
// effect together with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

func (o clientOptions) client() HTTPClient {
	if o.httpClient != nil {
		return o.httpClient
	}
	return &http.Client{Timeout: o.timeout}
}
