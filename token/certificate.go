package token

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
)

// ErrCertificate is returned when the application certificate cannot be used
// as a verification key.
var ErrCertificate = errors.New("invalid certificate")

// PublicKeyFromPEM returns the public key held by a PEM encoded X.509
// certificate, as found in the Casdoor application's cert. A bare
// "PUBLIC KEY" block is accepted too.
func PublicKeyFromPEM(data string) (any, error) {
	block, _ := pem.Decode([]byte(strings.TrimSpace(data)))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrCertificate)
	}

	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCertificate, err)
		}
		return cert.PublicKey, nil
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCertificate, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: unexpected PEM block %q", ErrCertificate, block.Type)
	}
}
