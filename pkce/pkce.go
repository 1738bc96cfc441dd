// Package pkce implements the RFC 7636 Proof Key for Code Exchange
// verifier/challenge pair used to bind authorization codes to this client.
package pkce

import (
	"fmt"

	"golang.org/x/oauth2"
)

// RFC 7636 section 4.1 verifier length bounds.
const (
	MinVerifierLength = 43
	MaxVerifierLength = 128
)

// GenerateVerifier returns a new code verifier derived from 32 bytes of
// cryptographically secure randomness, base64url-encoded without padding.
func GenerateVerifier() string {
	return oauth2.GenerateVerifier()
}

// ChallengeS256 computes the S256 code challenge for a verifier:
// base64url(SHA-256(verifier)) without padding. Deterministic for a fixed
// verifier.
func ChallengeS256(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}

// ValidateVerifier checks a user-supplied verifier against the RFC 7636
// length bounds and unreserved character set.
func ValidateVerifier(verifier string) error {
	if len(verifier) < MinVerifierLength || len(verifier) > MaxVerifierLength {
		return fmt.Errorf("code verifier must be between %d and %d characters, got %d",
			MinVerifierLength, MaxVerifierLength, len(verifier))
	}
	for i := 0; i < len(verifier); i++ {
		if !isUnreserved(verifier[i]) {
			return fmt.Errorf("code verifier contains invalid character %q at position %d", verifier[i], i)
		}
	}
	return nil
}

// isUnreserved reports whether c is in the RFC 7636 unreserved set:
// ALPHA / DIGIT / "-" / "." / "_" / "~".
func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}
