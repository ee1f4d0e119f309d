// internal/config/secrets.go
package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/99designs/keyring"
)

const serviceName = "dbvim"
const masterKeyName = "__master_key__"

// Secrets encrypts profile passwords with a master key held in the OS
// keyring so the config file never stores them in plaintext.
type Secrets struct {
	key []byte
}

// OpenSecrets loads the master key from the keyring, generating one on
// first use.
func OpenSecrets() (*Secrets, error) {
	ring, err := keyring.Open(keyring.Config{ServiceName: serviceName})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}

	if item, err := ring.Get(masterKeyName); err == nil {
		key, err := hex.DecodeString(string(item.Data))
		if err != nil {
			return nil, fmt.Errorf("stored master key is corrupt: %w", err)
		}
		return &Secrets{key: key}, nil
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	if err := ring.Set(keyring.Item{Key: masterKeyName, Data: []byte(hex.EncodeToString(key))}); err != nil {
		return nil, fmt.Errorf("store master key: %w", err)
	}
	return &Secrets{key: key}, nil
}

// Encrypt seals a password with AES-GCM and returns it hex-encoded
func (s *Secrets) Encrypt(plain string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return hex.EncodeToString(gcm.Seal(nonce, nonce, []byte(plain), nil)), nil
}

// Decrypt opens a hex-encoded AES-GCM ciphertext
func (s *Secrets) Decrypt(cipherHex string) (string, error) {
	data, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(data) < gcm.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
