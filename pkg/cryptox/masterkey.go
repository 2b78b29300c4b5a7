package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
)

// MasterKeyEnv is the environment variable consulted when no key file is set.
const MasterKeyEnv = "TENANT_VAULT_KEY"

var ErrNoMasterKey = errors.New("cryptox: no vault master key configured")

// MasterKeySource describes where LoadMasterSecret looks for key material.
type MasterKeySource struct {
	// Path to a file holding the master secret. Takes precedence over Env.
	Path string

	// Env is the raw secret, usually read from MasterKeyEnv.
	Env string

	// AllowEphemeral lets development setups run without a configured key.
	// Credentials sealed under an ephemeral key do not survive a restart.
	AllowEphemeral bool
}

// LoadMasterSecret loads the vault master secret from (in order) the key
// file, the environment value, or a freshly generated ephemeral secret when
// permitted. The bool result reports whether the secret is ephemeral.
func LoadMasterSecret(src MasterKeySource) ([]byte, bool, error) {
	if src.Path != "" {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read master key file: %w", err)
		}
		data = []byte(strings.TrimSpace(string(data)))
		if len(data) == 0 {
			return nil, false, fmt.Errorf("master key file %q is empty", src.Path)
		}
		return data, false, nil
	}

	if src.Env != "" {
		return []byte(src.Env), false, nil
	}

	if !src.AllowEphemeral {
		return nil, false, ErrNoMasterKey
	}

	material := make([]byte, 32)
	if _, err := rand.Read(material); err != nil {
		return nil, false, fmt.Errorf("failed to generate ephemeral master key: %w", err)
	}
	return material, true, nil
}
