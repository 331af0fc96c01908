package jwks

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ProviderOption is how options for the Provider are set up.
type ProviderOption func(*Provider) error

// WithEndpoint sets the Casdoor endpoint whose discovery document names the
// JWKS URI.
func WithEndpoint(endpoint string) ProviderOption {
	return func(p *Provider) error {
		if endpoint == "" {
			return errors.New("endpoint cannot be empty")
		}
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		p.Endpoint = endpoint
		return nil
	}
}

// WithCustomJWKSURI sets the JWKS URI directly, skipping discovery.
func WithCustomJWKSURI(jwksURI string) ProviderOption {
	return func(p *Provider) error {
		if jwksURI == "" {
			return errors.New("custom JWKS URI cannot be empty")
		}
		if _, err := url.Parse(jwksURI); err != nil {
			return fmt.Errorf("invalid JWKS URI: %w", err)
		}
		p.CustomJWKSURI = jwksURI
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for discovery and key fetches.
// If not specified, a default client with 30s timeout is used.
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) error {
		if c == nil {
			return errors.New("HTTP client cannot be nil")
		}
		p.Client = c
		return nil
	}
}

// CachingProviderOption is how options for the CachingProvider are set up.
type CachingProviderOption func(*CachingProvider) error

// WithCacheTTL sets how long a fetched key set is used. Defaults to 15 minutes.
func WithCacheTTL(ttl time.Duration) CachingProviderOption {
	return func(c *CachingProvider) error {
		if ttl <= 0 {
			return errors.New("cache TTL must be positive")
		}
		c.ttl = ttl
		return nil
	}
}
