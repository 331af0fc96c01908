package oidc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer creates a test HTTP server that returns the specified response code and body.
func setupTestServer(t *testing.T, responseCode int, responseBody string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != WellKnownPath {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(responseCode)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name          string
		responseCode  int
		responseBody  string
		errorContains string
	}{
		{
			name:         "Successful 200 response with valid JSON",
			responseCode: http.StatusOK,
			responseBody: `{"issuer":"https://door.example.com","jwks_uri":"https://door.example.com/.well-known/jwks","token_endpoint":"https://door.example.com/api/login/oauth/access_token","claims_supported":["name"]}`,
		},
		{
			name:          "404 Not Found response",
			responseCode:  http.StatusNotFound,
			responseBody:  `{"error": "not found"}`,
			errorContains: "unexpected status code 404",
		},
		{
			name:          "500 Internal Server Error response",
			responseCode:  http.StatusInternalServerError,
			responseBody:  `Internal Server Error`,
			errorContains: "unexpected status code 500",
		},
		{
			name:          "Malformed JSON response",
			responseCode:  http.StatusOK,
			responseBody:  `{"jwks_uri": "https://door.example.com/.well-known/jwks"`,
			errorContains: "failed to decode JSON",
		},
		{
			name:          "Empty response",
			responseCode:  http.StatusOK,
			responseBody:  ``,
			errorContains: "failed to decode JSON",
		},
		{
			name:          "Missing jwks_uri",
			responseCode:  http.StatusOK,
			responseBody:  `{"issuer":"https://door.example.com"}`,
			errorContains: "has no jwks_uri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t, tt.responseCode, tt.responseBody)

			configuration, err := Discover(context.Background(), server.Client(), server.URL+"/")

			if tt.errorContains != "" {
				assert.ErrorContains(t, err, tt.errorContains)
				assert.Nil(t, configuration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://door.example.com", configuration.Issuer)
			assert.Equal(t, "https://door.example.com/.well-known/jwks", configuration.JWKSURI)
			assert.Equal(t, "https://door.example.com/api/login/oauth/access_token", configuration.TokenEndpoint)
		})
	}
}

// Simulate a network failure scenario
func TestDiscover_NetworkError(t *testing.T) {
	_, err := Discover(context.Background(), nil, "http://invalid.invalid")

	if err == nil || !strings.Contains(err.Error(), "could not fetch well-known endpoints") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// Simulate a timeout scenario
func TestDiscover_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Discover(ctx, server.Client(), server.URL)

	if err == nil || !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("Expected timeout error, got: %v", err)
	}
}

// Test invalid request creation
func TestDiscover_InvalidRequest(t *testing.T) {
	_, err := Discover(context.Background(), nil, "://bad")

	if err == nil || !strings.Contains(err.Error(), "could not build request to get well-known endpoints") {
		t.Errorf("Expected request creation error, got: %v", err)
	}
}
