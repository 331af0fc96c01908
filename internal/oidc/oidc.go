package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// WellKnownPath is where Casdoor serves its discovery document.
const WellKnownPath = "/.well-known/openid-configuration"

// Configuration holds the parts of the discovery document this module uses.
type Configuration struct {
	Issuer                           string   `json:"issuer"`
	AuthorizationEndpoint            string   `json:"authorization_endpoint"`
	TokenEndpoint                    string   `json:"token_endpoint"`
	UserinfoEndpoint                 string   `json:"userinfo_endpoint"`
	JWKSURI                          string   `json:"jwks_uri"`
	IntrospectionEndpoint            string   `json:"introspection_endpoint,omitempty"`
	EndSessionEndpoint               string   `json:"end_session_endpoint,omitempty"`
	ResponseTypesSupported           []string `json:"response_types_supported,omitempty"`
	IDTokenSigningAlgValuesSupported []string `json:"id_token_signing_alg_values_supported,omitempty"`
	ScopesSupported                  []string `json:"scopes_supported,omitempty"`
}

// Discover fetches the discovery document of the Casdoor instance at endpoint.
func Discover(ctx context.Context, client *http.Client, endpoint string) (*Configuration, error) {
	if client == nil {
		client = http.DefaultClient
	}
	wellKnownURL := strings.TrimSuffix(endpoint, "/") + WellKnownPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wellKnownURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request to get well-known endpoints: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch well-known endpoints from %s: %w", wellKnownURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, wellKnownURL)
	}

	var configuration Configuration
	if err := json.NewDecoder(resp.Body).Decode(&configuration); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from %s: %w", wellKnownURL, err)
	}

	if configuration.JWKSURI == "" {
		return nil, fmt.Errorf("discovery document at %s has no jwks_uri", wellKnownURL)
	}

	return &configuration, nil
}
