package security

import (
	"crypto/rand"
	"encoding/hex"
)

// NewResetToken returns a single-use password reset token: 20 random bytes,
// hex-encoded to 40 characters.
func NewResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
