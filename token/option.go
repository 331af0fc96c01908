package token

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithCertificate verifies tokens with the public key of a PEM encoded
// certificate.
func WithCertificate(certificate string) Option {
	return func(v *Validator) error {
		key, err := PublicKeyFromPEM(certificate)
		if err != nil {
			return err
		}
		v.keyFunc = func(context.Context) (any, error) {
			return key, nil
		}
		return nil
	}
}

// WithKeyFunc sets the function that provides the verification key. It may
// return a raw public key, a jwk.Key or a jwk.Set. For JWKS based
// validation, use jwks.Provider.KeyFunc.
func WithKeyFunc(keyFunc func(context.Context) (any, error)) Option {
	return func(v *Validator) error {
		if keyFunc == nil {
			return errors.New("keyFunc cannot be nil")
		}
		v.keyFunc = keyFunc
		return nil
	}
}

// WithAlgorithm sets the signature algorithm tokens must use. Defaults to RS256.
func WithAlgorithm(algorithm jwa.SignatureAlgorithm) Option {
	return func(v *Validator) error {
		if algorithm == jwa.NoSignature || !slices.Contains(jwa.SignatureAlgorithms(), algorithm) {
			return fmt.Errorf("unsupported signature algorithm: %s", algorithm)
		}
		v.algorithm = algorithm
		return nil
	}
}

// WithIssuer sets the expected issuer claim (iss).
func WithIssuer(issuerURL string) Option {
	return func(v *Validator) error {
		if issuerURL == "" {
			return errors.New("issuer cannot be empty")
		}
		if _, err := url.Parse(issuerURL); err != nil {
			return fmt.Errorf("invalid issuer URL: %w", err)
		}
		v.issuer = issuerURL
		return nil
	}
}

// WithAudience sets the accepted audiences (aud). The token must carry at
// least one of them. Casdoor uses the application's client id.
func WithAudience(audiences ...string) Option {
	return func(v *Validator) error {
		if len(audiences) == 0 {
			return errors.New("audience cannot be empty")
		}
		for i, aud := range audiences {
			if aud == "" {
				return fmt.Errorf("audience at index %d cannot be empty", i)
			}
		}
		v.audience = audiences
		return nil
	}
}

// WithAllowedClockSkew sets the tolerance applied to exp, nbf and iat.
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.allowedClockSkew = skew
		return nil
	}
}
