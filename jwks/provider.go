package jwks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/casdoor/casdoor-go-client/internal/oidc"
)

// Provider fetches the JWKS of a Casdoor instance and exposes KeyFunc, which
// adheres to the keyFunc signature token.WithKeyFunc requires.
type Provider struct {
	Endpoint      string // Required unless CustomJWKSURI is set.
	CustomJWKSURI string // Optional.
	Client        *http.Client
}

// NewProvider builds and returns a new *Provider.
func NewProvider(opts ...ProviderOption) (*Provider, error) {
	p := &Provider{
		Client: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if p.Endpoint == "" && p.CustomJWKSURI == "" {
		return nil, errors.New("endpoint is required (use WithEndpoint or WithCustomJWKSURI)")
	}

	return p, nil
}

// JWKSURI returns the URI the key set is fetched from, running discovery
// when no custom URI was set.
func (p *Provider) JWKSURI(ctx context.Context) (string, error) {
	if p.CustomJWKSURI != "" {
		return p.CustomJWKSURI, nil
	}

	configuration, err := oidc.Discover(ctx, p.Client, p.Endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to discover JWKS URI: %w", err)
	}
	return configuration.JWKSURI, nil
}

// KeyFunc adheres to the keyFunc signature that the Validator requires.
// While it returns an interface to adhere to keyFunc, as long as the
// error is nil the type will be jwk.Set.
func (p *Provider) KeyFunc(ctx context.Context) (any, error) {
	jwksURI, err := p.JWKSURI(ctx)
	if err != nil {
		return nil, err
	}
	return p.fetch(ctx, jwksURI)
}

func (p *Provider) fetch(ctx context.Context, jwksURI string) (jwk.Set, error) {
	set, err := jwk.Fetch(ctx, jwksURI, jwk.WithHTTPClient(p.Client))
	if err != nil {
		return nil, fmt.Errorf("could not fetch JWKS: %w", err)
	}
	return set, nil
}

// CachingProvider wraps a Provider and reuses the fetched key set until its
// TTL expires. The JWKS URI is discovered once.
type CachingProvider struct {
	provider *Provider
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	jwksURI   string
	set       jwk.Set
	expiresAt time.Time
}

// NewCachingProvider builds a CachingProvider from the Provider options and
// the caching options.
func NewCachingProvider(providerOpts []ProviderOption, opts ...CachingProviderOption) (*CachingProvider, error) {
	p, err := NewProvider(providerOpts...)
	if err != nil {
		return nil, err
	}

	c := &CachingProvider{
		provider: p,
		ttl:      15 * time.Minute,
		now:      time.Now,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return c, nil
}

// KeyFunc adheres to the keyFunc signature that the Validator requires.
// Concurrent callers wait for a single fetch.
func (c *CachingProvider) KeyFunc(ctx context.Context) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.set != nil && now.Before(c.expiresAt) {
		return c.set, nil
	}

	if c.jwksURI == "" {
		uri, err := c.provider.JWKSURI(ctx)
		if err != nil {
			return nil, err
		}
		c.jwksURI = uri
	}

	set, err := c.provider.fetch(ctx, c.jwksURI)
	if err != nil {
		return nil, err
	}

	c.set = set
	c.expiresAt = now.Add(c.ttl)
	return set, nil
}
