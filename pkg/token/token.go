// Package token issues and verifies the signed, time-limited bearer
// credentials handed out by the login route.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = 10000 * time.Second

// ErrInvalid is returned by Verify for every rejected token, whatever the
// reason (bad signature, wrong algorithm, expired, malformed).
var ErrInvalid = errors.New("invalid token")

// Principal is the identity carried inside a token: the user row as it was
// at issuance, plus the registered "iat" and "exp" claims once verified.
type Principal map[string]any

// Email returns the principal's e-mail claim.
func (p Principal) Email() string {
	s, _ := p["email"].(string)
	return s
}

// Verifier checks a raw token and returns its principal.
type Verifier interface {
	Verify(raw string) (Principal, error)
}

// Service signs tokens with a process-wide HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service signing with secret.
func NewService(secret string, opts ...Option) *Service {
	s := &Service{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue encodes every field of principal into an HS256 token valid for the
// configured TTL.
func (s *Service) Issue(principal Principal) (string, error) {
	now := s.now()
	claims := make(jwt.MapClaims, len(principal)+2)
	for k, v := range principal {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the decoded
// principal. Any failure yields ErrInvalid.
func (s *Service) Verify(raw string) (Principal, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}
	return Principal(claims), nil
}
