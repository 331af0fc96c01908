package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/casdoor/casdoor-go-client/config"
)

var (
	// ErrInvalidToken is wrapped by every token rejection.
	ErrInvalidToken = errors.New("invalid token")

	// ErrKeyRequired is returned by New when no verification key was configured.
	ErrKeyRequired = errors.New("a certificate or key func is required")
)

// Validator verifies Casdoor access tokens.
type Validator struct {
	keyFunc          func(context.Context) (any, error) // Required.
	algorithm        jwa.SignatureAlgorithm
	issuer           string        // Optional.
	audience         []string      // Optional.
	allowedClockSkew time.Duration // Optional.
}

// New sets up a Validator. WithCertificate or WithKeyFunc is required.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{algorithm: jwa.RS256}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if v.keyFunc == nil {
		return nil, ErrKeyRequired
	}

	return v, nil
}

// NewFromConfig sets up a Validator from the application certificate in cfg,
// accepting tokens issued to cfg.ClientID. opts are applied afterwards.
func NewFromConfig(cfg config.Config, opts ...Option) (*Validator, error) {
	base := []Option{WithCertificate(cfg.Certificate), WithAudience(cfg.ClientID)}
	return New(append(base, opts...)...)
}

// ParseToken verifies raw and returns its claims.
func (v *Validator) ParseToken(ctx context.Context, raw string) (*Claims, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	if err := v.validateSigningMethod(raw); err != nil {
		return nil, fmt.Errorf("%w: signing method is invalid: %w", ErrInvalidToken, err)
	}

	key, err := v.keyFunc(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: error getting the keys from the key func: %w", ErrInvalidToken, err)
	}

	parseOpts := []jwt.ParseOption{
		v.keyOption(key),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(v.allowedClockSkew),
	}
	if v.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(v.issuer))
	}

	tok, err := jwt.Parse([]byte(raw), parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse the token: %w", ErrInvalidToken, err)
	}

	claims, err := decodeClaims(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to deserialize token claims: %w", ErrInvalidToken, err)
	}

	if len(v.audience) > 0 && !slices.ContainsFunc(v.audience, claims.HasAudience) {
		return nil, fmt.Errorf("%w: audience %v not accepted", ErrInvalidToken, claims.Audience)
	}

	return claims, nil
}

// ValidateToken is ParseToken returning the claims as any, for use with
// middleware.New.
func (v *Validator) ValidateToken(ctx context.Context, raw string) (any, error) {
	claims, err := v.ParseToken(ctx, raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (v *Validator) keyOption(key any) jwt.ParseOption {
	if set, ok := key.(jwk.Set); ok {
		return jwt.WithKeySet(set, jws.WithInferAlgorithmFromKey(true))
	}
	return jwt.WithKey(v.algorithm, key)
}

func (v *Validator) validateSigningMethod(raw string) error {
	msg, err := jws.Parse([]byte(raw))
	if err != nil {
		return err
	}

	for _, sig := range msg.Signatures() {
		if alg := sig.ProtectedHeaders().Algorithm(); alg != v.algorithm {
			return fmt.Errorf("expected %q signing algorithm but token specified %q", v.algorithm, alg)
		}
	}
	return nil
}

func decodeClaims(tok jwt.Token) (*Claims, error) {
	payload, err := json.Marshal(tok)
	if err != nil {
		return nil, err
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}
