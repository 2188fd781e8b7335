// Package sealer issues opaque slot tokens. An open match advertises its
// reserved slot to invitees without exposing raw court and reservation ids;
// the token round-trips through clients and is only meaningful back here.
package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// defaultKey is the development key. Production deployments set SEALER_KEY.
const defaultKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

type Sealer struct {
	key []byte
}

// New builds a Sealer from a base64 AES-256 key. An empty key selects the
// development key.
func New(encodedKey string) (*Sealer, error) {
	if encodedKey == "" {
		encodedKey = defaultKey
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("sealer key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("sealer key must be 32 bytes, got %d", len(key))
	}
	return &Sealer{key: key}, nil
}

// SealSlot encloses a court, date and start time into an opaque token.
func (s *Sealer) SealSlot(courtID, date, start string) (string, error) {
	plaintext := []byte(courtID + ":" + date + ":" + start)

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

// ParseSlot opens a token produced by SealSlot.
func (s *Sealer) ParseSlot(token string) (courtID, date, start string, err error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", "", err
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", "", "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", "", "", err
	}

	nonceSize := aesgcm.NonceSize()
	if len(data) < nonceSize {
		return "", "", "", fmt.Errorf("token too short")
	}
	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	pt, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", "", err
	}

	parts := strings.SplitN(string(pt), ":", 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid token format")
	}

	return parts[0], parts[1], parts[2], nil
}
