package jwtx

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrNoKey        = errors.New("jwtx: no verification key configured")
	ErrUnsupported  = errors.New("jwtx: unsupported key type")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// KeyVerifier checks tokens against one fixed key. The accepted algorithms
// follow from the key type so an HMAC secret can never be confused with a
// public key.
type KeyVerifier struct {
	key     any
	methods []string
	opts    VerifyOptions
}

// NewVerifierHS256 verifies tokens signed with a shared HMAC secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) (*KeyVerifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoKey
	}
	return &KeyVerifier{
		key:     secret,
		methods: []string{jwt.SigningMethodHS256.Alg()},
		opts:    opts,
	}, nil
}

// NewVerifierFromPublicPEM verifies tokens signed by the holder of the
// private half of pemKey. RSA, ECDSA P-256 and Ed25519 keys are accepted.
func NewVerifierFromPublicPEM(pemKey []byte, opts VerifyOptions) (*KeyVerifier, error) {
	pub, err := parsePublicPEM(pemKey)
	if err != nil {
		return nil, err
	}

	var methods []string
	switch pub.(type) {
	case *rsa.PublicKey:
		methods = []string{jwt.SigningMethodRS256.Alg()}
	case *ecdsa.PublicKey:
		methods = []string{jwt.SigningMethodES256.Alg()}
	case ed25519.PublicKey:
		methods = []string{jwt.SigningMethodEdDSA.Alg()}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, pub)
	}

	return &KeyVerifier{key: pub, methods: methods, opts: opts}, nil
}

// Verify validates the JWT string and returns its parsed Claims.
func (v *KeyVerifier) Verify(tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMalformed
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods(v.methods),
		jwt.WithLeeway(v.opts.Leeway),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return Claims{}, ErrNotYetValid
		}
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateSubject(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(v.opts.Audience); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(v.opts.Leeway); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
