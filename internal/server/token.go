package server

import (
	"crypto/rand"
	"encoding/hex"
)

// tokenBytes is the entropy of a session token.
const tokenBytes = 32

// NewToken returns a random hex-encoded session token.
func NewToken() string {
	b := make([]byte, tokenBytes)
	// crypto/rand.Read never returns an error since Go 1.24
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
