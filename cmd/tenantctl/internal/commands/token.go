package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
)

type TokenCmd struct {
	Mint TokenMintCmd `cmd:"" help:"Sign an access token for a principal"`
}

type TokenMintCmd struct {
	Subject    string        `help:"Principal identifier (sub claim)" required:""`
	TTL        time.Duration `help:"Token lifetime" default:"1h"`
	Issuer     string        `help:"Issuer claim" env:"TENANT_JWT_ISSUER"`
	Audience   []string      `help:"Audience claim" env:"TENANT_JWT_AUDIENCE"`
	Email      string        `help:"Email claim"`
	Secret     string        `help:"HS256 signing secret" env:"TENANT_JWT_SECRET" xor:"key"`
	PrivateKey string        `help:"PEM private key file for RS256/ES256/EdDSA" type:"existingfile" xor:"key"`
}

func (t *TokenMintCmd) Run(ctx context.Context) error {
	token, err := t.mint(time.Now())
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func (t *TokenMintCmd) mint(now time.Time) (string, error) {
	signer, err := t.signer()
	if err != nil {
		return "", err
	}

	claims := jwtx.NewAccessClaims(t.Subject, t.TTL, t.Issuer, t.Audience, t.Email, "", now)
	return signer.Sign(claims)
}

func (t *TokenMintCmd) signer() (jwtx.Signer, error) {
	switch {
	case t.PrivateKey != "":
		pemKey, err := os.ReadFile(t.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		return jwtx.NewSignerFromPEM(pemKey)
	case t.Secret != "":
		return jwtx.NewSignerHS256([]byte(t.Secret))
	default:
		return nil, errors.New("either --secret or --private-key is required")
	}
}
