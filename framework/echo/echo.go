// Package casdoorecho adapts the middleware package to echo.
package casdoorecho

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casdoor/casdoor-go-client/middleware"
	"github.com/casdoor/casdoor-go-client/token"
)

// DefaultClaimsKey is the echo context key claims are stored under by default.
const DefaultClaimsKey = "casdoor_claims"

type failureSlot struct {
	err error
}

type failureSlotKey struct{}

// New creates an echo middleware that validates the request's token with
// validateToken.
func New(validateToken middleware.ValidateToken, opts ...Option) (echo.MiddlewareFunc, error) {
	cfg := &config{
		errorHandler: defaultErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	record := middleware.WithErrorHandler(func(_ http.ResponseWriter, r *http.Request, err error) {
		if slot, ok := r.Context().Value(failureSlotKey{}).(*failureSlot); ok {
			slot.err = err
		}
	})
	m, err := middleware.New(validateToken, append(cfg.middlewareOpts, record)...)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			passed := false
			var nextErr error

			handler := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				passed = true
				c.SetRequest(r)

				if claims, err := middleware.GetClaims[any](r.Context()); err == nil {
					c.Set(cfg.contextKey, claims)
				}

				nextErr = next(c)
			})

			slot := &failureSlot{}
			req := c.Request()
			req = req.WithContext(context.WithValue(req.Context(), failureSlotKey{}, slot))
			m.CheckJWT(handler).ServeHTTP(c.Response(), req)

			if !passed {
				return cfg.errorHandler(c, slot.err)
			}
			return nextErr
		}
	}, nil
}

func defaultErrorHandler(c echo.Context, err error) error {
	status, message := middleware.ErrorStatus(err)
	return c.JSON(status, middleware.ErrorBody{Message: message})
}

// GetClaims extracts the Casdoor claims from the echo context. An empty
// contextKey means DefaultClaimsKey.
func GetClaims(c echo.Context, contextKey string) (*token.Claims, bool) {
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}
	claims, ok := c.Get(contextKey).(*token.Claims)
	return claims, ok
}
