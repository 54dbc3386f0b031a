package service

import (
	"crypto/rand"
	"encoding/hex"
)

// StateTokenBytes is the entropy drawn for each state token.
const StateTokenBytes = 32

// NewStateToken returns a fresh hex-encoded CSRF state token (64 characters).
func NewStateToken() string {
	b := make([]byte, StateTokenBytes)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
