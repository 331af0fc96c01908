// Package casdoorgrpc provides gRPC server interceptors that validate Casdoor
// access tokens carried in the call metadata.
package casdoorgrpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	casdoor "github.com/casdoor/casdoor-go-client"
	"github.com/casdoor/casdoor-go-client/middleware"
	"github.com/casdoor/casdoor-go-client/token"
)

// Metric names recorded by the interceptors.
const (
	MetricAuthTotal    = "casdoor_grpc_auth_total"
	MetricAuthDuration = "casdoor_grpc_auth_duration_seconds"
)

// JWTInterceptor authenticates gRPC calls.
type JWTInterceptor struct {
	validateToken       middleware.ValidateToken
	tokenExtractor      TokenExtractor
	credentialsOptional bool
	exclusionChecker    func(method string) bool
	logger              casdoor.Logger
	metrics             casdoor.Metrics
	tracer              casdoor.Tracer
}

// New creates a JWTInterceptor validating tokens with validateToken.
func New(validateToken middleware.ValidateToken, opts ...Option) (*JWTInterceptor, error) {
	if validateToken == nil {
		return nil, middleware.ErrValidateTokenNil
	}

	i := &JWTInterceptor{
		validateToken:  validateToken,
		tokenExtractor: MetadataTokenExtractor,
		logger:         casdoor.NoopLogger{},
		metrics:        casdoor.NoopMetrics{},
		tracer:         casdoor.NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return i, nil
}

// authenticate returns ctx carrying the validated claims, or an
// Unauthenticated status error.
func (i *JWTInterceptor) authenticate(ctx context.Context, method string) (context.Context, error) {
	start := time.Now()

	ctx, span := i.tracer.StartSpan(ctx, "casdoor.grpc.auth")
	defer span.Finish()
	span.SetTag("method", method)

	if i.exclusionChecker != nil && i.exclusionChecker(method) {
		i.logger.Debugf("method %s excluded from JWT validation", method)
		span.SetTag("auth_status", "excluded")
		return ctx, nil
	}

	outcome := "success"
	defer func() {
		tags := map[string]string{"method": method, "outcome": outcome}
		i.metrics.IncCounter(MetricAuthTotal, tags)
		i.metrics.ObserveHistogram(MetricAuthDuration, time.Since(start).Seconds(), map[string]string{"method": method})
		span.SetTag("auth_status", outcome)
	}()

	raw, err := i.tokenExtractor(ctx)
	if err != nil {
		outcome = "extraction_error"
		i.logger.Errorf("error extracting token for %s: %v", method, err)
		span.SetError(err)
		return nil, status.Errorf(codes.Unauthenticated, "error extracting token: %v", err)
	}

	if raw == "" {
		if i.credentialsOptional {
			outcome = "optional_no_token"
			return ctx, nil
		}
		outcome = "missing_token"
		i.logger.Warnf("JWT is missing for %s", method)
		return nil, status.Error(codes.Unauthenticated, middleware.ErrJWTMissing.Error())
	}

	claims, err := i.validateToken(ctx, raw)
	if err != nil {
		outcome = "invalid_token"
		i.logger.Warnf("invalid JWT for %s: %v", method, err)
		span.SetError(err)
		return nil, status.Error(codes.Unauthenticated, middleware.InvalidError(err).Error())
	}

	i.logger.Debugf("JWT validated for %s", method)
	return middleware.WithClaims(ctx, claims), nil
}

// UnaryServerInterceptor returns a gRPC unary server interceptor for JWT authentication.
func (i *JWTInterceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		authCtx, err := i.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(authCtx, req)
	}
}

// StreamServerInterceptor returns a gRPC stream server interceptor for JWT authentication.
func (i *JWTInterceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		authCtx, err := i.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: authCtx})
	}
}

// wrappedServerStream wraps a grpc.ServerStream to override the context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the wrapped context.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

// ErrMissingClaims is returned by RequireClaims when the call carries no claims.
var ErrMissingClaims = errors.New("no JWT claims found in context")

// RequireClaims returns the Casdoor claims of an authenticated call.
func RequireClaims(ctx context.Context) (*token.Claims, error) {
	claims, err := middleware.ClaimsFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingClaims, err)
	}
	return claims, nil
}
