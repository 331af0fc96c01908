// Package casdoorgin adapts the middleware package to gin.
package casdoorgin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casdoor/casdoor-go-client/middleware"
	"github.com/casdoor/casdoor-go-client/token"
)

// DefaultClaimsKey is the gin context key claims are stored under by default.
const DefaultClaimsKey = "casdoor_claims"

var (
	// ErrMissingClaims is returned by GetClaims when nothing is stored under the key.
	ErrMissingClaims = errors.New("no JWT claims found in context")

	// ErrInvalidClaims is returned by GetClaims when the stored value is not *token.Claims.
	ErrInvalidClaims = errors.New("invalid JWT claims type")
)

// New creates a gin middleware that validates the request's token with
// validateToken. Validated claims are stored in the gin context and in the
// request context.
func New(validateToken middleware.ValidateToken, opts ...Option) (gin.HandlerFunc, error) {
	cfg := &config{
		errorHandler: defaultErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	// Rejections are handed back to the gin handler below through the
	// request's failure slot.
	mwOpts := append(cfg.middlewareOpts, middleware.WithErrorHandler(recordFailure))
	m, err := middleware.New(validateToken, mwOpts...)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r

			if claims, err := middleware.GetClaims[any](r.Context()); err == nil {
				c.Set(cfg.contextKey, claims)
			}

			c.Next()
		})

		req, slot := withFailureSlot(c.Request)
		m.CheckJWT(next).ServeHTTP(c.Writer, req)

		if !passed {
			cfg.errorHandler(c, slot.err)
			c.Abort()
		}
	}, nil
}

func defaultErrorHandler(c *gin.Context, err error) {
	status, message := middleware.ErrorStatus(err)
	c.AbortWithStatusJSON(status, middleware.ErrorBody{Message: message})
}

// GetClaims returns the Casdoor claims stored by the middleware. An empty
// contextKey means DefaultClaimsKey.
func GetClaims(c *gin.Context, contextKey string) (*token.Claims, error) {
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}
	claims, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingClaims
	}

	casdoorClaims, ok := claims.(*token.Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return casdoorClaims, nil
}
