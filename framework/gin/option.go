package casdoorgin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/casdoor/casdoor-go-client/middleware"
)

// Option defines a functional option for configuring the middleware.
type Option func(*config) error

type config struct {
	errorHandler   func(*gin.Context, error)
	contextKey     string
	middlewareOpts []middleware.Option
}

// WithErrorHandler sets a custom error handler for the middleware.
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(c *config) error {
		if handler == nil {
			return errors.New("error handler cannot be nil")
		}
		c.errorHandler = handler
		return nil
	}
}

// WithContextKey sets the gin context key the claims are stored under.
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

// WithMiddlewareOptions passes options to the underlying middleware.JWTMiddleware,
// such as the token extractor or optional credentials.
func WithMiddlewareOptions(opts ...middleware.Option) Option {
	return func(c *config) error {
		c.middlewareOpts = append(c.middlewareOpts, opts...)
		return nil
	}
}
