package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

var ErrCorruptToken = errors.New("stored token cannot be decrypted")

const nonceSize = 24

// Sealer encrypts upstream tokens before they are written to durable storage.
type Sealer struct {
	key [32]byte
}

// NewSealer derives a secretbox key from secret.
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

// Seal returns nonce || ciphertext.
func (s *Sealer) Seal(plaintext string) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key), nil
}

func (s *Sealer) Open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrCorruptToken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrCorruptToken
	}
	return string(plaintext), nil
}
