package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password schemes accepted by NewPasswordVerifier.
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// PasswordVerifier decides whether a presented password matches the value
// stored on the user row.
type PasswordVerifier interface {
	Verify(stored, presented string) bool
}

// PlainVerifier compares the stored value byte for byte. Stored passwords
// are plaintext in existing deployments.
type PlainVerifier struct{}

// Verify implements PasswordVerifier.
func (PlainVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier expects the stored value to be a bcrypt hash.
type BcryptVerifier struct{}

// Verify implements PasswordVerifier.
func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

// NewPasswordVerifier returns the verifier for scheme.
func NewPasswordVerifier(scheme string) (PasswordVerifier, error) {
	switch scheme {
	case SchemePlain, "":
		return PlainVerifier{}, nil
	case SchemeBcrypt:
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
