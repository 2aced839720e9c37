package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSigningSecret возвращает криптослучайную hex-строку (например, для подписи JWT).
func NewSigningSecret(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 128 // с запасом больше блока HMAC-SHA256
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
