package casdoorgrpc

import (
	"errors"

	casdoor "github.com/casdoor/casdoor-go-client"
)

// Option defines a functional option for configuring the interceptors.
type Option func(*JWTInterceptor) error

// WithTokenExtractor sets where the token is read from.
//
// Default: MetadataTokenExtractor
func WithTokenExtractor(e TokenExtractor) Option {
	return func(i *JWTInterceptor) error {
		if e == nil {
			return errors.New("token extractor cannot be nil")
		}
		i.tokenExtractor = e
		return nil
	}
}

// WithCredentialsOptional lets calls without a token through.
func WithCredentialsOptional(value bool) Option {
	return func(i *JWTInterceptor) error {
		i.credentialsOptional = value
		return nil
	}
}

// WithExcludedMethods skips validation for the given full method names.
func WithExcludedMethods(methods ...string) Option {
	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}
	return WithExclusionChecker(func(method string) bool {
		_, ok := methodSet[method]
		return ok
	})
}

// WithExclusionChecker skips validation for methods checker reports true for.
func WithExclusionChecker(checker func(method string) bool) Option {
	return func(i *JWTInterceptor) error {
		if checker == nil {
			return errors.New("exclusion checker cannot be nil")
		}
		i.exclusionChecker = checker
		return nil
	}
}

// WithLogger sets the logger for authentication events.
func WithLogger(logger casdoor.Logger) Option {
	return func(i *JWTInterceptor) error {
		if logger == nil {
			return casdoor.ErrLoggerNil
		}
		i.logger = logger
		return nil
	}
}

// WithMetrics records casdoor_grpc_auth_total and
// casdoor_grpc_auth_duration_seconds.
func WithMetrics(metrics casdoor.Metrics) Option {
	return func(i *JWTInterceptor) error {
		if metrics == nil {
			return casdoor.ErrMetricsNil
		}
		i.metrics = metrics
		return nil
	}
}

// WithTracer opens a span per authenticated call.
func WithTracer(tracer casdoor.Tracer) Option {
	return func(i *JWTInterceptor) error {
		if tracer == nil {
			return casdoor.ErrTracerNil
		}
		i.tracer = tracer
		return nil
	}
}
