package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := NewVault([]byte("test-master-secret-0123456789abcdef"))
	require.NoError(t, err)
	return v
}

func TestVault_RoundTrip(t *testing.T) {
	v := newTestVault(t)

	blob, err := v.EncryptString("sk_live_abc123", "user-a")
	require.NoError(t, err)
	require.Len(t, blob, VaultBlobOverhead+len("sk_live_abc123"))
	assert.Equal(t, VaultBlobVersion, blob[0])

	got, ok := v.DecryptString(blob, "user-a")
	require.True(t, ok)
	assert.Equal(t, "sk_live_abc123", got)
}

func TestVault_OtherPrincipalGetsNothing(t *testing.T) {
	v := newTestVault(t)

	blob, err := v.EncryptString("sk_live_abc123", "user-a")
	require.NoError(t, err)

	assert.Nil(t, v.Decrypt(blob, "user-b"))
	assert.Nil(t, v.Decrypt(blob, ""))
}

func TestVault_NonceIsFresh(t *testing.T) {
	v := newTestVault(t)

	a, err := v.EncryptString("same", "user-a")
	require.NoError(t, err)
	b, err := v.EncryptString("same", "user-a")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVault_EmptyPlaintext(t *testing.T) {
	v := newTestVault(t)

	blob, err := v.Encrypt(nil, "user-a")
	require.NoError(t, err)
	assert.Nil(t, blob)

	assert.Nil(t, v.Decrypt(nil, "user-a"))
}

func TestVault_EmptyPrincipal(t *testing.T) {
	v := newTestVault(t)

	_, err := v.EncryptString("x", "")
	require.ErrorIs(t, err, ErrEmptyPrincipal)
}

func TestVault_TamperedBlob(t *testing.T) {
	v := newTestVault(t)

	blob, err := v.EncryptString("api-secret", "user-a")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"version byte", func(b []byte) []byte { b[0] = 0x02; return b }},
		{"nonce byte", func(b []byte) []byte { b[5] ^= 0xff; return b }},
		{"ciphertext byte", func(b []byte) []byte { b[len(b)-20] ^= 0x01; return b }},
		{"tag byte", func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }},
		{"truncated", func(b []byte) []byte { return b[:VaultBlobOverhead-1] }},
		{"garbage", func([]byte) []byte { return []byte("not a vault blob at all, definitely not") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := tt.mutate(append([]byte(nil), blob...))
			assert.Nil(t, v.Decrypt(mutated, "user-a"))
		})
	}
}

func TestVault_DifferentMasterSecret(t *testing.T) {
	v1 := newTestVault(t)
	v2, err := NewVault([]byte("another-master-secret-0123456789"))
	require.NoError(t, err)

	blob, err := v1.EncryptString("token", "user-a")
	require.NoError(t, err)

	assert.Nil(t, v2.Decrypt(blob, "user-a"))
}

func TestNewVault_ShortSecret(t *testing.T) {
	_, err := NewVault([]byte("short"))
	require.ErrorIs(t, err, ErrMasterSecretTooShort)
}

func TestLoadMasterSecret(t *testing.T) {
	t.Run("file wins over env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vault.key")
		require.NoError(t, os.WriteFile(path, []byte("from-file-secret-material\n"), 0o600))

		got, ephemeral, err := LoadMasterSecret(MasterKeySource{Path: path, Env: "from-env"})
		require.NoError(t, err)
		assert.False(t, ephemeral)
		assert.Equal(t, "from-file-secret-material", string(got))
	})

	t.Run("env", func(t *testing.T) {
		got, ephemeral, err := LoadMasterSecret(MasterKeySource{Env: "from-env-secret-material"})
		require.NoError(t, err)
		assert.False(t, ephemeral)
		assert.Equal(t, "from-env-secret-material", string(got))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vault.key")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

		_, _, err := LoadMasterSecret(MasterKeySource{Path: path})
		require.Error(t, err)
	})

	t.Run("missing without ephemeral", func(t *testing.T) {
		_, _, err := LoadMasterSecret(MasterKeySource{})
		require.ErrorIs(t, err, ErrNoMasterKey)
	})

	t.Run("ephemeral", func(t *testing.T) {
		got, ephemeral, err := LoadMasterSecret(MasterKeySource{AllowEphemeral: true})
		require.NoError(t, err)
		assert.True(t, ephemeral)
		assert.Len(t, got, 32)
	})
}
