package casdoor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/casdoor/casdoor-go-client/transport"
)

// Outcomes recorded on the request counter.
const (
	outcomeOK             = "ok"
	outcomeAPIError       = "api_error"
	outcomeTransportError = "transport_error"
)

// URL builds "<endpoint>/api/<action>?<query>". The "?" is always present,
// even when query is empty.
func (c *Client) URL(action string, query map[string]string) string {
	return fmt.Sprintf("%s/api/%s?%s", c.cfg.Endpoint, action, transport.EncodeValues(query))
}

// Get calls action with an authenticated GET.
func Get[T1, T2 any](ctx context.Context, c *Client, action string, query map[string]string) (*Response[T1, T2], error) {
	return call[T1, T2](ctx, c, http.MethodGet, action, query, func(ctx context.Context, url string) ([]byte, error) {
		return c.transport.Get(ctx, url, c.credential)
	})
}

// PostForm calls action with an authenticated POST carrying form as an
// application/x-www-form-urlencoded body.
func PostForm[T1, T2 any](ctx context.Context, c *Client, action string, query, form map[string]string) (*Response[T1, T2], error) {
	return call[T1, T2](ctx, c, http.MethodPost, action, query, func(ctx context.Context, url string) ([]byte, error) {
		return c.transport.PostForm(ctx, url, form, c.credential)
	})
}

// PostRawBody calls action with an authenticated POST whose body is sent
// verbatim.
func PostRawBody[T1, T2 any](ctx context.Context, c *Client, action string, query map[string]string, body string) (*Response[T1, T2], error) {
	return call[T1, T2](ctx, c, http.MethodPost, action, query, func(ctx context.Context, url string) ([]byte, error) {
		return c.transport.PostString(ctx, url, body, c.credential)
	})
}

// PostFile calls action with an authenticated POST uploading the file at
// filePath.
func PostFile[T1, T2 any](ctx context.Context, c *Client, action string, query map[string]string, filePath string) (*Response[T1, T2], error) {
	return call[T1, T2](ctx, c, http.MethodPost, action, query, func(ctx context.Context, url string) ([]byte, error) {
		return c.transport.PostFile(ctx, url, filePath, c.credential)
	})
}

type sendFunc func(ctx context.Context, url string) ([]byte, error)

// call runs one request/response exchange. Nothing is retried.
func call[T1, T2 any](ctx context.Context, c *Client, method, action string, query map[string]string, send sendFunc) (*Response[T1, T2], error) {
	if action == "" {
		return nil, ErrActionRequired
	}

	url := c.URL(action, query)
	start := time.Now()

	ctx, span := c.tracer.StartSpan(ctx, "casdoor."+action)
	defer span.Finish()
	span.SetTag("casdoor.action", action)
	span.SetTag("http.method", method)

	c.logger.Debugf("casdoor: %s %s", method, url)

	body, err := send(ctx, url)
	if err != nil {
		err = &TransportError{URL: url, Err: err}
		c.finish(span, method, action, url, outcomeTransportError, start, err)
		return nil, err
	}

	resp, err := decodeResponse[T1, T2](url, body)
	if err != nil {
		outcome := outcomeTransportError
		if errors.Is(err, ErrAPICall) {
			outcome = outcomeAPIError
		}
		c.finish(span, method, action, url, outcome, start, err)
		return nil, err
	}

	c.finish(span, method, action, url, outcomeOK, start, nil)
	return resp, nil
}

func (c *Client) finish(span Span, method, action, url, outcome string, start time.Time, err error) {
	elapsed := time.Since(start)
	c.metrics.IncCounter(MetricRequestsTotal, map[string]string{
		"action":  action,
		"method":  method,
		"outcome": outcome,
	})
	c.metrics.ObserveHistogram(MetricRequestDuration, elapsed.Seconds(), map[string]string{
		"action": action,
		"method": method,
	})
	span.SetTag("casdoor.outcome", outcome)

	if err != nil {
		span.SetError(err)
	}

	if cl, ok := c.logger.(CallLogger); ok {
		cl.LogCall(CallEvent{
			Action:   action,
			Method:   method,
			URL:      url,
			Outcome:  outcome,
			Duration: elapsed,
			Err:      err,
		})
		return
	}
	if err != nil {
		c.logger.Debugf("casdoor: %s %s failed: %v", method, action, err)
		return
	}
	c.logger.Debugf("casdoor: %s %s succeeded", method, action)
}
