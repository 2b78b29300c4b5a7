package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

var ErrNoVerificationKey = errors.New("no token verification key: set TENANT_JWT_SECRET or TENANT_JWT_PUBLIC_KEY_PATH")

// InitVault builds the credential vault from the configured master secret.
//
// Outside dev a missing secret is fatal. In dev an ephemeral secret is
// generated, which means stored credentials stop decrypting after a restart.
func InitVault(cfg Config, logger *slog.Logger) (*cryptox.Vault, error) {
	secret, ephemeral, err := cryptox.LoadMasterSecret(cryptox.MasterKeySource{
		Path:           cfg.VaultKeyPath,
		Env:            cfg.VaultKey,
		AllowEphemeral: cfg.IsDev(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load vault master key: %w", err)
	}

	if ephemeral {
		logger.Warn("vault master key is ephemeral, stored credentials will not survive a restart")
	} else if cfg.VaultKeyPath != "" {
		logger.Info("vault master key loaded", "path", cfg.VaultKeyPath)
	}

	return cryptox.NewVault(secret)
}

// InitVerifier builds the access token verifier. A public key file wins over
// a shared secret when both are set.
func InitVerifier(cfg Config, logger *slog.Logger) (jwtx.Verifier, error) {
	opts := jwtx.VerifyOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   cfg.JWTLeeway,
	}

	switch {
	case cfg.JWTPublicKeyPath != "":
		pemKey, err := os.ReadFile(cfg.JWTPublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read token public key: %w", err)
		}
		v, err := jwtx.NewVerifierFromPublicPEM(pemKey, opts)
		if err != nil {
			return nil, err
		}
		logger.Info("token verifier configured", "mode", "public_key", "issuer", cfg.JWTIssuer)
		return v, nil

	case cfg.JWTSecret != "":
		v, err := jwtx.NewVerifierHS256([]byte(cfg.JWTSecret), opts)
		if err != nil {
			return nil, err
		}
		logger.Info("token verifier configured", "mode", "hs256", "issuer", cfg.JWTIssuer)
		return v, nil

	default:
		return nil, ErrNoVerificationKey
	}
}
