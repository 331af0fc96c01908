package middleware

import (
	"errors"
	"net/http"

	casdoor "github.com/casdoor/casdoor-go-client"
)

// Option is how options for the JWTMiddleware are set up.
// Options return errors to enable validation during construction.
type Option func(*JWTMiddleware) error

// Sentinel errors for option validation.
var (
	ErrValidateTokenNil  = errors.New("validateToken cannot be nil")
	ErrErrorHandlerNil   = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil = errors.New("tokenExtractor cannot be nil")
	ErrExclusionNil      = errors.New("exclusion handler cannot be nil")
	ErrLoggerNil         = errors.New("logger cannot be nil")
)

// WithCredentialsOptional lets requests without a token through, without
// claims in their context.
//
// Default: false (credentials required)
func WithCredentialsOptional(value bool) Option {
	return func(m *JWTMiddleware) error {
		m.credentialsOptional = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests are validated.
//
// Default: true
func WithValidateOnOptions(value bool) Option {
	return func(m *JWTMiddleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when a request is rejected.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *JWTMiddleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets where the token is read from.
//
// Default: AuthHeaderTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *JWTMiddleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithExclusionURLs skips validation for requests whose path is one of paths.
func WithExclusionURLs(paths ...string) Option {
	excluded := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		excluded[p] = struct{}{}
	}
	return WithExclusionHandler(func(r *http.Request) bool {
		_, ok := excluded[r.URL.Path]
		return ok
	})
}

// WithExclusionHandler skips validation for requests h reports true for.
func WithExclusionHandler(h func(r *http.Request) bool) Option {
	return func(m *JWTMiddleware) error {
		if h == nil {
			return ErrExclusionNil
		}
		m.exclusionHandler = h
		return nil
	}
}

// WithLogger sets the logger for validation events.
//
// Default: casdoor.NoopLogger
func WithLogger(logger casdoor.Logger) Option {
	return func(m *JWTMiddleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}
