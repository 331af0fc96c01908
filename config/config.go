// Package config holds the connection settings a Casdoor client is built from.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultEnvPrefix is the environment prefix used by Load when none is given.
const DefaultEnvPrefix = "CASDOOR"

// ErrInvalidConfig is returned when a required setting is missing.
var ErrInvalidConfig = errors.New("invalid casdoor config")

// Config is the immutable set of values identifying a Casdoor application.
// Endpoint, ClientID and ClientSecret are required. The remaining fields are
// only needed by token validation and the typed services.
type Config struct {
	Endpoint         string `envconfig:"ENDPOINT" required:"true"`
	ClientID         string `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret     string `envconfig:"CLIENT_SECRET" required:"true"`
	Certificate      string `envconfig:"CERTIFICATE"`
	OrganizationName string `envconfig:"ORGANIZATION_NAME"`
	ApplicationName  string `envconfig:"APPLICATION_NAME"`
}

// Option sets one of the optional Config fields.
type Option func(*Config)

// WithCertificate sets the PEM encoded certificate used to verify access tokens.
func WithCertificate(pem string) Option {
	return func(c *Config) {
		c.Certificate = pem
	}
}

// WithOrganization sets the organization name.
func WithOrganization(name string) Option {
	return func(c *Config) {
		c.OrganizationName = name
	}
}

// WithApplication sets the application name.
func WithApplication(name string) Option {
	return func(c *Config) {
		c.ApplicationName = name
	}
}

// New builds a validated Config.
//
// Example:
//
//	cfg, err := config.New(
//	    "https://door.example.com", "client-id", "client-secret",
//	    config.WithOrganization("built-in"),
//	)
func New(endpoint, clientID, clientSecret string, opts ...Option) (Config, error) {
	cfg := Config{
		Endpoint:     endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration from <prefix>_ENDPOINT, <prefix>_CLIENT_ID and
// the other <prefix>_ variables. Any envFiles are loaded first with godotenv;
// variables already present in the environment win over the files.
func Load(prefix string, envFiles ...string) (Config, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("could not load env files: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether the required fields are set.
func (c Config) Validate() error {
	switch {
	case c.Endpoint == "":
		return fmt.Errorf("%w: endpoint is required", ErrInvalidConfig)
	case c.ClientID == "":
		return fmt.Errorf("%w: client id is required", ErrInvalidConfig)
	case c.ClientSecret == "":
		return fmt.Errorf("%w: client secret is required", ErrInvalidConfig)
	}
	return nil
}

// normalize drops a single trailing slash so "<endpoint>/api/..." never
// contains "//".
func (c *Config) normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.Endpoint = strings.TrimSuffix(c.Endpoint, "/")
}
