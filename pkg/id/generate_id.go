// Package id mints the opaque identifiers handed out for stored
// calculations.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 16 random bytes as exactly 32 lowercase hex characters,
// with no separators or prefixes.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
