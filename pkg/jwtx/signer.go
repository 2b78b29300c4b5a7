package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints tokens. The service itself never signs; tenantctl and the
// test suites use it to stand in for the identity provider.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

type keySigner struct {
	method jwt.SigningMethod
	key    any
}

func (s *keySigner) Alg() string { return s.method.Alg() }

func (s *keySigner) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(s.method, c)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// NewSignerHS256 signs with a shared HMAC secret.
func NewSignerHS256(secret []byte) (Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoKey
	}
	return &keySigner{method: jwt.SigningMethodHS256, key: secret}, nil
}

// NewSignerFromPEM signs with an RSA, ECDSA P-256 or Ed25519 private key.
func NewSignerFromPEM(pemKey []byte) (Signer, error) {
	key, err := parsePrivatePEM(pemKey)
	if err != nil {
		return nil, err
	}

	switch k := key.(type) {
	case *rsa.PrivateKey:
		return &keySigner{method: jwt.SigningMethodRS256, key: k}, nil
	case *ecdsa.PrivateKey:
		return &keySigner{method: jwt.SigningMethodES256, key: k}, nil
	case ed25519.PrivateKey:
		return &keySigner{method: jwt.SigningMethodEdDSA, key: k}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, key)
	}
}
