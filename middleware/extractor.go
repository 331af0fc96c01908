package middleware

import (
	"errors"
	"net/http"
	"strings"
)

// TokenExtractor reads the raw token from a request. A request that carries
// no token yields "" and a nil error; an error means a token was offered but
// could not be read.
type TokenExtractor func(r *http.Request) (string, error)

// ErrMalformedAuthHeader is returned for an Authorization header that is not
// of the form "Bearer <token>".
var ErrMalformedAuthHeader = errors.New("authorization header format must be Bearer {token}")

const bearerScheme = "bearer"

// AuthHeaderTokenExtractor reads a bearer token from the Authorization header.
// It is the middleware's default.
func AuthHeaderTokenExtractor(r *http.Request) (string, error) {
	return BearerToken(r.Header.Get("Authorization"))
}

// BearerToken returns the token of an Authorization header value. An empty
// header yields an empty token and no error.
func BearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", nil
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedAuthHeader
	}
	return token, nil
}

// CookieTokenExtractor reads the token from the named cookie, such as the
// session cookie a Casdoor-backed frontend sets. A missing cookie is not an
// error.
func CookieTokenExtractor(cookieName string) TokenExtractor {
	return lookupExtractor(func(r *http.Request) string {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			return ""
		}
		return cookie.Value
	})
}

// ParameterTokenExtractor reads the token from a query parameter, typically
// "access_token" as Casdoor's own API accepts it.
func ParameterTokenExtractor(param string) TokenExtractor {
	return lookupExtractor(func(r *http.Request) string {
		return r.URL.Query().Get(param)
	})
}

func lookupExtractor(lookup func(r *http.Request) string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		return lookup(r), nil
	}
}

// MultiTokenExtractor tries extractors in order and returns the first
// non-empty token. The first error stops the chain.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			token, err := extract(r)
			if err != nil {
				return "", err
			}
			if token != "" {
				return token, nil
			}
		}
		return "", nil
	}
}
