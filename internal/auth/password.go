package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// HashPassword returns the base64-encoded SHA-256 digest of the password.
//
// The digest is deliberately deterministic and unsalted: stored digests
// predate this service and were produced the same way, so identical
// passwords yield identical digests across accounts. That is a known
// weakness, not an accident; adding a salt would invalidate every stored
// digest. Returns ErrInvalidArgument for an empty password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidArgument
	}
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// VerifyPassword reports whether password hashes to digest. It never
// errors: empty inputs and mismatches both yield false. The comparison is
// constant-time.
func VerifyPassword(password, digest string) bool {
	if password == "" || digest == "" {
		return false
	}
	computed, err := HashPassword(password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
