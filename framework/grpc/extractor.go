package casdoorgrpc

import (
	"context"

	"google.golang.org/grpc/metadata"

	"github.com/casdoor/casdoor-go-client/middleware"
)

// TokenExtractor extracts a token from the incoming gRPC metadata. A missing
// token is an empty string, not an error.
type TokenExtractor func(ctx context.Context) (string, error)

// MetadataTokenExtractor extracts the bearer token from the "authorization" metadata field.
func MetadataTokenExtractor(ctx context.Context) (string, error) {
	return middleware.BearerToken(firstValue(ctx, "authorization"))
}

// MetadataFieldTokenExtractor extracts the raw token from a specified metadata field.
func MetadataFieldTokenExtractor(field string) TokenExtractor {
	return func(ctx context.Context) (string, error) {
		return firstValue(ctx, field), nil
	}
}

// MultiTokenExtractor runs multiple TokenExtractors and returns the first token found.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(ctx context.Context) (string, error) {
		for _, ex := range extractors {
			token, err := ex(ctx)
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

func firstValue(ctx context.Context, field string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
