package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a stable, non-reversible identifier for a value such as
// an API key, so logs can tell two credentials apart without exposing either.
func Fingerprint(value string) string {
	if value == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// FingerprintShort returns the first 8 characters of Fingerprint.
func FingerprintShort(value string) string {
	full := Fingerprint(value)
	if len(full) >= 8 {
		return full[:8]
	}
	return full
}
