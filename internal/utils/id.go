package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns an opaque 32-character hex identifier generated from 16
// bytes of cryptographically secure random data. All primary keys in the
// catalog (users, shows, partners, associations) use this format.
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
