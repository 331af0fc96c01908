package transport

import (
	"errors"
	"net/http"
)

// Option configures the HTTP transport.
type Option func(*HTTP) error

// Sentinel errors for option validation.
var (
	ErrHTTPClientNil  = errors.New("http client cannot be nil")
	ErrContentTypeNil = errors.New("raw content type cannot be empty")
	ErrFileFieldEmpty = errors.New("file field name cannot be empty")
	ErrDebugLoggerNil = errors.New("debug logger cannot be nil")
)

// WithHTTPClient sets the *http.Client used for every request. Timeouts,
// proxies and TLS settings belong on that client.
//
// Default: &http.Client{Timeout: DefaultTimeout}
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTP) error {
		if c == nil {
			return ErrHTTPClientNil
		}
		t.client = c
		return nil
	}
}

// WithRawContentType sets the Content-Type sent with PostString bodies.
//
// Default: DefaultRawContentType
func WithRawContentType(contentType string) Option {
	return func(t *HTTP) error {
		if contentType == "" {
			return ErrContentTypeNil
		}
		t.rawContentType = contentType
		return nil
	}
}

// WithFileField sets the multipart field name used by PostFile.
//
// Default: DefaultFileField
func WithFileField(name string) Option {
	return func(t *HTTP) error {
		if name == "" {
			return ErrFileFieldEmpty
		}
		t.fileField = name
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *HTTP) error {
		t.userAgent = ua
		return nil
	}
}

// WithDebugLogging wraps the client's round tripper so every request and
// response is dumped to logger at debug level. Apply it after WithHTTPClient.
func WithDebugLogging(logger Logger) Option {
	return func(t *HTTP) error {
		if logger == nil {
			return ErrDebugLoggerNil
		}
		base := t.client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		// Copy so a caller supplied client is not mutated.
		client := *t.client
		client.Transport = &debugRoundTripper{base: base, logger: logger}
		t.client = &client
		return nil
	}
}
