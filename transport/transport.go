// Package transport performs the network I/O behind a Casdoor client. The
// client core only knows the Transport interface, so it can be exercised
// against a fake in tests.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a whole request/response exchange.
	DefaultTimeout = 30 * time.Second

	// DefaultRawContentType is sent with PostString bodies.
	DefaultRawContentType = "text/plain; charset=utf-8"

	// DefaultFileField is the multipart field name carrying an uploaded file.
	DefaultFileField = "file"
)

// Transport is the set of request shapes the Casdoor API uses. Every method
// sends credential verbatim as the Authorization header and returns the raw
// response body.
type Transport interface {
	Get(ctx context.Context, url, credential string) ([]byte, error)
	PostForm(ctx context.Context, url string, form map[string]string, credential string) ([]byte, error)
	PostString(ctx context.Context, url, body, credential string) ([]byte, error)
	PostFile(ctx context.Context, url, filePath, credential string) ([]byte, error)
}

// Logger is the subset of a leveled logger the debug round tripper needs.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// HTTP is a Transport backed by net/http.
type HTTP struct {
	client         *http.Client
	rawContentType string
	fileField      string
	userAgent      string
}

var _ Transport = (*HTTP)(nil)

// NewHTTP builds an HTTP transport.
//
// Example:
//
//	t, err := transport.NewHTTP(
//	    transport.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
//	    transport.WithRawContentType("application/json"),
//	)
func NewHTTP(opts ...Option) (*HTTP, error) {
	t := &HTTP{
		client:         &http.Client{Timeout: DefaultTimeout},
		rawContentType: DefaultRawContentType,
		fileField:      DefaultFileField,
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return t, nil
}

// Get issues a GET request.
func (t *HTTP) Get(ctx context.Context, url, credential string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}
	return t.do(req, credential)
}

// PostForm issues a POST with form encoded as application/x-www-form-urlencoded.
func (t *HTTP) PostForm(ctx context.Context, url string, form map[string]string, credential string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(EncodeValues(form)))
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.do(req, credential)
}

// PostString issues a POST with body sent as is.
func (t *HTTP) PostString(ctx context.Context, url, body, credential string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", t.rawContentType)
	return t.do(req, credential)
}

// PostFile uploads the file at filePath as a multipart/form-data body with a
// single file part.
func (t *HTTP) PostFile(ctx context.Context, url, filePath, credential string) ([]byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("could not open file to upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(t.fileField, filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("could not create multipart file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("could not read file to upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("could not finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return t.do(req, credential)
}

// do sends req and returns the body whatever the HTTP status is: the Casdoor
// envelope, not the status line, tells success from failure.
func (t *HTTP) do(req *http.Request, credential string) ([]byte, error) {
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		// Surface the context error itself so callers can tell a
		// cancellation from any other network failure.
		if ctxErr := req.Context().Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("request failed: %w: %w", ctxErr, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body (status %d): %w", resp.StatusCode, err)
	}
	return body, nil
}

// EncodeValues URL-encodes params in key order. A nil or empty map encodes to
// the empty string.
func EncodeValues(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return values.Encode()
}
