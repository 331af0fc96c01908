package casdoorecho

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/casdoor/casdoor-go-client/middleware"
)

// Option defines a functional option for configuring the middleware.
type Option func(*config) error

type config struct {
	errorHandler   func(echo.Context, error) error
	contextKey     string
	middlewareOpts []middleware.Option
}

// WithErrorHandler sets a custom error handler. Its result is returned by
// the middleware.
func WithErrorHandler(handler func(echo.Context, error) error) Option {
	return func(c *config) error {
		if handler == nil {
			return errors.New("error handler cannot be nil")
		}
		c.errorHandler = handler
		return nil
	}
}

// WithContextKey sets the echo context key the claims are stored under.
//
// Default: DefaultClaimsKey
func WithContextKey(key string) Option {
	return func(c *config) error {
		if key == "" {
			return errors.New("context key cannot be empty")
		}
		c.contextKey = key
		return nil
	}
}

// WithMiddlewareOptions passes options to the underlying middleware.JWTMiddleware.
func WithMiddlewareOptions(opts ...middleware.Option) Option {
	return func(c *config) error {
		c.middlewareOpts = append(c.middlewareOpts, opts...)
		return nil
	}
}
