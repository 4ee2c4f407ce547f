package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// APIKeyBytes is the entropy of a generated API key.
const APIKeyBytes = 24

// GenerateAPIKey returns APIKeyBytes of crypto/rand output as URL-safe base64
// without padding, which yields a 32 character key.
func GenerateAPIKey() (string, error) {
	return GenerateSecureToken(APIKeyBytes)
}

// GenerateSecureToken returns lengthInBytes random bytes encoded as URL-safe
// base64 without padding.
func GenerateSecureToken(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
