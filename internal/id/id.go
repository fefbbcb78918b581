// Package id provides unique identifier generation utilities.
// This is the canonical source for ID generation across the codebase.
package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// UUID generates a UUID v4 (random) string.
func UUID() string {
	return uuid.NewString()
}

// Short generates a short random hex ID (16 characters).
// Suitable for user-facing IDs where brevity matters.
func Short() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
