package drive

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/oauth2"
)

// The OAuth token is stored encrypted at rest: the file format is
// salt (16) || nonce (24) || ciphertext.
const saltSize = 16

func deriveKey(passphrase string, salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, chacha20poly1305.KeySize)
}

// seal encrypts a marshaled token with a key derived from the passphrase.
func seal(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// open decrypts a blob produced by seal.
func open(passphrase string, blob []byte) ([]byte, error) {
	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("token file too short to be valid")
	}
	salt, rest := blob[:saltSize], blob[saltSize:]
	nonce, ciphertext := rest[:chacha20poly1305.NonceSizeX], rest[chacha20poly1305.NonceSizeX:]
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decrypt token, wrong passphrase?: %w", err)
	}
	return plaintext, nil
}

// SaveToken encrypts and writes the OAuth token to path.
func SaveToken(path, passphrase string, token *oauth2.Token) error {
	plaintext, err := json.Marshal(token)
	if err != nil {
		return err
	}
	blob, err := seal(passphrase, plaintext)
	if err != nil {
		return fmt.Errorf("could not encrypt token: %w", err)
	}
	return os.WriteFile(path, blob, 0600)
}

// LoadToken reads and decrypts the OAuth token from path.
func LoadToken(path, passphrase string) (*oauth2.Token, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	plaintext, err := open(passphrase, blob)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(plaintext, &token); err != nil {
		return nil, fmt.Errorf("could not decode token: %w", err)
	}
	return &token, nil
}
