// Package auth implements the login flow: look a user up by e-mail, check
// the presented password and issue a bearer token for the user row.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/youto/internal/rowgateway"
	"github.com/nao1215/youto/pkg/token"
)

var (
	// ErrUnknownPrincipal means no user has the given e-mail.
	ErrUnknownPrincipal = errors.New("unknown principal")
	// ErrBadCredential means the e-mail matched but the password did not.
	ErrBadCredential = errors.New("bad credential")
)

// Issuer signs a principal into a token.
type Issuer interface {
	Issue(principal token.Principal) (string, error)
}

// Authenticator checks credentials against the users table.
type Authenticator struct {
	rows      rowgateway.Gateway
	issuer    Issuer
	passwords PasswordVerifier
}

// NewAuthenticator wires an Authenticator. A nil verifier means PlainVerifier.
func NewAuthenticator(rows rowgateway.Gateway, issuer Issuer, passwords PasswordVerifier) *Authenticator {
	if passwords == nil {
		passwords = PlainVerifier{}
	}
	return &Authenticator{rows: rows, issuer: issuer, passwords: passwords}
}

// Login returns a signed token carrying the full user row. A nil password
// means none was presented; it never matches, not even an empty stored one.
func (a *Authenticator) Login(ctx context.Context, email string, password *string) (string, error) {
	rows, err := a.rows.Query(ctx, "SELECT * FROM users WHERE email = ?", email)
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}
	if len(rows) == 0 {
		return "", ErrUnknownPrincipal
	}

	user := rows[0]
	// a NULL password never matches
	stored, ok := user["password"].(string)
	if !ok || password == nil || !a.passwords.Verify(stored, *password) {
		return "", ErrBadCredential
	}

	tok, err := a.issuer.Issue(token.Principal(user))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}
