package casdoor

import (
	"encoding/base64"
	"fmt"

	"github.com/casdoor/casdoor-go-client/config"
	"github.com/casdoor/casdoor-go-client/transport"
)

// Client sends authenticated calls to one Casdoor application. It holds no
// mutable state after New returns and is safe for concurrent use when its
// transport is.
type Client struct {
	cfg        config.Config
	credential string

	transport transport.Transport
	logger    Logger
	metrics   Metrics
	tracer    Tracer
	debug     bool
}

// New constructs a Client for cfg. The Basic credential is derived once here.
//
// Example:
//
//	cfg, err := config.New("https://door.example.com", clientID, clientSecret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := casdoor.New(cfg, casdoor.WithLogger(casdoor.NewZerologLogger(logger)))
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		credential: BasicCredential(cfg.ClientID, cfg.ClientSecret),
		logger:     NoopLogger{},
		metrics:    NoopMetrics{},
		tracer:     NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if c.transport == nil {
		var transportOpts []transport.Option
		if c.debug {
			transportOpts = append(transportOpts, transport.WithDebugLogging(c.logger))
		}
		t, err := transport.NewHTTP(transportOpts...)
		if err != nil {
			return nil, fmt.Errorf("could not build default transport: %w", err)
		}
		c.transport = t
	}

	return c, nil
}

// Config returns the configuration the client was built from.
func (c *Client) Config() config.Config {
	return c.cfg
}

// BasicCredential builds the value of an HTTP Basic Authorization header.
func BasicCredential(clientID, clientSecret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID+":"+clientSecret))
}
