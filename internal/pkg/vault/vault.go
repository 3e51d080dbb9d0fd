// Package vault seals short secrets (upstream access tokens) before they are
// written to the session store.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrOpen = errors.New("sealed value could not be opened")

type Vault struct {
	key [32]byte
}

// New derives a 256-bit secretbox key from secret.
func New(secret string) (*Vault, error) {
	if secret == "" {
		return nil, errors.New("vault secret is required")
	}
	v := &Vault{}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte("hrms-portal session token"))
	if _, err := io.ReadFull(kdf, v.key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive vault key: %w", err)
	}
	return v, nil
}

// Seal encrypts plaintext. The nonce is prepended to the returned box.
func (v *Vault) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &v.key), nil
}

func (v *Vault) Open(box []byte) ([]byte, error) {
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrOpen
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	out, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &v.key)
	if !ok {
		return nil, ErrOpen
	}
	return out, nil
}
