package cryptox

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// VaultBlobVersion is the first byte of every sealed secret. It is also part
// of the additional authenticated data so flipping it breaks the tag.
const VaultBlobVersion byte = 0x01

// VaultBlobOverhead is version + XChaCha20 nonce + Poly1305 tag.
const VaultBlobOverhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// MinMasterSecretSize is the shortest master secret NewVault accepts.
const MinMasterSecretSize = 16

// hkdfInfoCredential separates vault keys from anything else derived from the
// same master secret. Changing it orphans every stored credential.
var hkdfInfoCredential = []byte("tally.vault.credential.v1")

var (
	ErrMasterSecretTooShort = errors.New("cryptox: master secret too short")
	ErrEmptyPrincipal       = errors.New("cryptox: principal is required")
)

// Vault seals third-party integration secrets with a key derived from a
// server-held master secret and the owning principal's id. Ciphertext sealed
// for one principal does not open for any other, even inside the same company.
//
// Vault holds no authorization logic. Callers pass the policy engine first.
type Vault struct {
	master [32]byte
}

// NewVault normalises the master secret with SHA-256 (same treatment the key
// file gets on disk) and returns a ready vault.
func NewVault(masterSecret []byte) (*Vault, error) {
	if len(masterSecret) < MinMasterSecretSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrMasterSecretTooShort, len(masterSecret), MinMasterSecretSize)
	}
	return &Vault{master: sha256.Sum256(masterSecret)}, nil
}

// Encrypt seals plaintext for principal. The blob layout is
//
//	[version: 1 byte] [nonce: 24 bytes] [ciphertext+tag: N+16 bytes]
//
// An empty plaintext yields a nil blob: there is nothing to store.
func (v *Vault) Encrypt(plaintext []byte, principal string) ([]byte, error) {
	if principal == "" {
		return nil, ErrEmptyPrincipal
	}
	if len(plaintext) == 0 {
		return nil, nil
	}

	aead, err := v.aeadFor(principal)
	if err != nil {
		return nil, err
	}

	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 1+len(nonce), 1+len(nonce)+len(plaintext)+aead.Overhead())
	out[0] = VaultBlobVersion
	copy(out[1:], nonce[:])

	return aead.Seal(out, nonce[:], plaintext, vaultAAD(VaultBlobVersion, principal)), nil
}

// Decrypt opens a blob sealed by Encrypt. Any failure (wrong principal,
// tampered bytes, unknown version, truncated input) returns nil and nothing
// else, so a caller cannot tell one kind of bad ciphertext from another.
func (v *Vault) Decrypt(blob []byte, principal string) []byte {
	if principal == "" || len(blob) < VaultBlobOverhead {
		return nil
	}
	if blob[0] != VaultBlobVersion {
		return nil
	}

	aead, err := v.aeadFor(principal)
	if err != nil {
		return nil
	}

	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, blob[1+chacha20poly1305.NonceSizeX:], vaultAAD(blob[0], principal))
	if err != nil {
		return nil
	}
	return plaintext
}

// EncryptString is Encrypt for string secrets.
func (v *Vault) EncryptString(plaintext, principal string) ([]byte, error) {
	return v.Encrypt([]byte(plaintext), principal)
}

// DecryptString returns the plaintext and whether the blob opened.
func (v *Vault) DecryptString(blob []byte, principal string) (string, bool) {
	pt := v.Decrypt(blob, principal)
	if pt == nil {
		return "", false
	}
	return string(pt), true
}

func (v *Vault) aeadFor(principal string) (cipher.AEAD, error) {
	key, err := v.deriveKey(principal)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	return aead, nil
}

func (v *Vault) deriveKey(principal string) ([]byte, error) {
	info := make([]byte, 0, len(hkdfInfoCredential)+1+len(principal))
	info = append(info, hkdfInfoCredential...)
	info = append(info, 0)
	info = append(info, principal...)

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, v.master[:], nil, info), key); err != nil {
		return nil, fmt.Errorf("deriving vault key: %w", err)
	}
	return key, nil
}

func vaultAAD(version byte, principal string) []byte {
	aad := make([]byte, 0, 1+len(principal))
	aad = append(aad, version)
	return append(aad, principal...)
}
