package middleware

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-client/token"
)

// ContextKey is the key the validated claims are stored under.
type ContextKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, ContextKey{}, claims)
}

// GetClaims retrieves claims of type T from the context.
func GetClaims[T any](ctx context.Context) (T, error) {
	var zero T

	val := ctx.Value(ContextKey{})
	if val == nil {
		return zero, ErrClaimsNotFound
	}

	claims, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: claims are of type %T", ErrClaimsNotFound, val)
	}

	return claims, nil
}

// ClaimsFromContext returns the Casdoor claims stored by a middleware built on
// token.Validator.ValidateToken.
func ClaimsFromContext(ctx context.Context) (*token.Claims, error) {
	return GetClaims[*token.Claims](ctx)
}

// HasClaims checks if claims exist in the context.
func HasClaims(ctx context.Context) bool {
	return ctx.Value(ContextKey{}) != nil
}
