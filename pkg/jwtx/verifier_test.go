package jwtx_test

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://id.example.test"
	testAudience = "tally"
)

func testOpts() jwtx.VerifyOptions {
	return jwtx.VerifyOptions{Issuer: testIssuer, Audience: []string{testAudience}}
}

func mint(t *testing.T, s jwtx.Signer, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwtx.NewAccessClaims(subject, ttl, testIssuer, []string{testAudience}, "", "", time.Now().UTC())
	tok, err := s.Sign(claims)
	require.NoError(t, err)
	return tok
}

func keyPairPEM(t *testing.T, priv any, pub any) ([]byte, []byte) {
	t.Helper()
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}),
		pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
}

func TestHS256RoundTrip(t *testing.T) {
	secret := []byte("shared-secret-for-tests")
	s, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	require.Equal(t, "HS256", s.Alg())

	v, err := jwtx.NewVerifierHS256(secret, testOpts())
	require.NoError(t, err)

	claims, err := v.Verify(mint(t, s, "user-a", time.Minute))
	require.NoError(t, err)
	require.Equal(t, "user-a", claims.Subject)
}

func TestHS256WrongSecret(t *testing.T) {
	s, err := jwtx.NewSignerHS256([]byte("one"))
	require.NoError(t, err)
	v, err := jwtx.NewVerifierHS256([]byte("two"), testOpts())
	require.NoError(t, err)

	_, err = v.Verify(mint(t, s, "user-a", time.Minute))
	require.Error(t, err)
}

func TestPublicKeyVerifiers(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	edPub, edPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	tests := []struct {
		name string
		priv any
		pub  any
		alg  string
	}{
		{"rsa", rsaKey, &rsaKey.PublicKey, "RS256"},
		{"ecdsa", ecKey, &ecKey.PublicKey, "ES256"},
		{"ed25519", edPriv, edPub, "EdDSA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			privPEM, pubPEM := keyPairPEM(t, tt.priv, tt.pub)

			s, err := jwtx.NewSignerFromPEM(privPEM)
			require.NoError(t, err)
			require.Equal(t, tt.alg, s.Alg())

			v, err := jwtx.NewVerifierFromPublicPEM(pubPEM, testOpts())
			require.NoError(t, err)

			claims, err := v.Verify(mint(t, s, "user-b", time.Minute))
			require.NoError(t, err)
			require.Equal(t, "user-b", claims.Subject)
		})
	}
}

func TestHMACTokenRejectedByPublicKeyVerifier(t *testing.T) {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	_, pubPEM := keyPairPEM(t, rsaKey, &rsaKey.PublicKey)

	v, err := jwtx.NewVerifierFromPublicPEM(pubPEM, testOpts())
	require.NoError(t, err)

	// Classic alg confusion: HMAC keyed with the public key bytes.
	s, err := jwtx.NewSignerHS256(pubPEM)
	require.NoError(t, err)

	_, err = v.Verify(mint(t, s, "attacker", time.Minute))
	require.Error(t, err)
}

func TestVerifyClaimChecks(t *testing.T) {
	secret := []byte("shared-secret-for-tests")
	s, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(secret, testOpts())
		require.NoError(t, err)
		_, err = v.Verify(mint(t, s, "user-a", -time.Minute))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Issuer: "someone-else"})
		require.NoError(t, err)
		_, err = v.Verify(mint(t, s, "user-a", time.Minute))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{Audience: []string{"other"}})
		require.NoError(t, err)
		_, err = v.Verify(mint(t, s, "user-a", time.Minute))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("missing subject", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(secret, testOpts())
		require.NoError(t, err)
		_, err = v.Verify(mint(t, s, "", time.Minute))
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("garbage", func(t *testing.T) {
		v, err := jwtx.NewVerifierHS256(secret, testOpts())
		require.NoError(t, err)
		_, err = v.Verify("not.a.jwt")
		require.Error(t, err)
		_, err = v.Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}
