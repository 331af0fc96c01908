package casdoor

import (
	"errors"

	"github.com/casdoor/casdoor-go-client/transport"
)

// Option configures the Client.
// Returns error for validation failures.
type Option func(*Client) error

// WithTransport sets the collaborator that performs the network I/O.
//
// Default: transport.NewHTTP() with its defaults.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) error {
		if t == nil {
			return ErrTransportNil
		}
		c.transport = t
		return nil
	}
}

// WithLogger sets the logger used for per call debug output and for the
// HTTP transport's request dumps when WithDebug is enabled.
//
// Default: NoopLogger
func WithLogger(logger Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return ErrLoggerNil
		}
		c.logger = logger
		return nil
	}
}

// WithDebug makes the default HTTP transport dump every exchange to the
// client's logger. It has no effect together with WithTransport.
func WithDebug(value bool) Option {
	return func(c *Client) error {
		c.debug = value
		return nil
	}
}

// WithMetrics sets the metrics sink.
//
// Default: NoopMetrics
func WithMetrics(m Metrics) Option {
	return func(c *Client) error {
		if m == nil {
			return ErrMetricsNil
		}
		c.metrics = m
		return nil
	}
}

// WithTracer sets the tracer; every call runs in a span named after its action.
//
// Default: NoopTracer
func WithTracer(t Tracer) Option {
	return func(c *Client) error {
		if t == nil {
			return ErrTracerNil
		}
		c.tracer = t
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrTransportNil = errors.New("transport cannot be nil")
	ErrLoggerNil    = errors.New("logger cannot be nil")
	ErrMetricsNil   = errors.New("metrics cannot be nil")
	ErrTracerNil    = errors.New("tracer cannot be nil")
)
