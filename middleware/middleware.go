package middleware

import (
	"context"
	"fmt"
	"net/http"

	casdoor "github.com/casdoor/casdoor-go-client"
)

// ValidateToken verifies a raw token and returns its claims.
// token.Validator.ValidateToken has this signature.
type ValidateToken func(context.Context, string) (any, error)

// JWTMiddleware validates the token of incoming requests.
type JWTMiddleware struct {
	validateToken       ValidateToken
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	exclusionHandler    func(r *http.Request) bool
	credentialsOptional bool
	validateOnOptions   bool
	logger              casdoor.Logger
}

// New constructs a JWTMiddleware around validateToken.
func New(validateToken ValidateToken, opts ...Option) (*JWTMiddleware, error) {
	if validateToken == nil {
		return nil, ErrValidateTokenNil
	}

	m := &JWTMiddleware{
		validateToken:     validateToken,
		errorHandler:      DefaultErrorHandler,
		tokenExtractor:    AuthHeaderTokenExtractor,
		validateOnOptions: true,
		logger:            casdoor.NoopLogger{},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return m, nil
}

// CheckToken validates a token already extracted from a request. With
// credentials optional an empty token yields nil claims and no error.
func (m *JWTMiddleware) CheckToken(ctx context.Context, token string) (any, error) {
	if token == "" {
		if m.credentialsOptional {
			return nil, nil
		}
		return nil, ErrJWTMissing
	}

	claims, err := m.validateToken(ctx, token)
	if err != nil {
		return nil, InvalidError(err)
	}
	return claims, nil
}

// CheckJWT is the main JWTMiddleware function which performs the main logic. It
// is passed a http.Handler which will be called if the JWT passes validation.
func (m *JWTMiddleware) CheckJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionHandler != nil && m.exclusionHandler(r) {
			m.logger.Debugf("skipping JWT validation for excluded URL %s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		if !m.validateOnOptions && r.Method == http.MethodOptions {
			m.logger.Debugf("skipping JWT validation for OPTIONS request")
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.tokenExtractor(r)
		if err != nil {
			// Not ErrJWTMissing: the extractor found a token but could not read it.
			m.logger.Errorf("failed to extract token from %s %s: %v", r.Method, r.URL.Path, err)
			m.errorHandler(w, r, fmt.Errorf("error extracting token: %w", err))
			return
		}

		claims, err := m.CheckToken(r.Context(), token)
		if err != nil {
			m.logger.Warnf("JWT validation failed for %s %s: %v", r.Method, r.URL.Path, err)
			m.errorHandler(w, r, err)
			return
		}

		if claims == nil {
			m.logger.Debugf("no credentials provided, continuing without claims")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
