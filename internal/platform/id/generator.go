package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRequestID returns a random hex identifier attached to each HTTP request
// for log correlation. Falls back to a fixed value if the system entropy
// source fails, which never happens on supported platforms.
func NewRequestID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "00000000000000000000000000000000"
	}
	return hex.EncodeToString(buf)
}
