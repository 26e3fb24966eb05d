package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func userRow() Principal {
	return Principal{
		"id":         int64(7),
		"email":      "ada@example.com",
		"first_name": "Ada",
		"password":   "hunter2",
		"id_role":    int64(1),
	}
}

func TestIssueVerify(t *testing.T) {
	t.Parallel()

	t.Run("round trip keeps the full user row", func(t *testing.T) {
		t.Parallel()
		svc := NewService(testSecret)

		raw, err := svc.Issue(userRow())
		require.NoError(t, err)

		p, err := svc.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", p.Email())
		assert.Equal(t, "Ada", p["first_name"])
		assert.Equal(t, "hunter2", p["password"])
		// JSON numbers decode as float64
		assert.Equal(t, float64(7), p["id"])
	})

	t.Run("expiry is iat plus 10000 seconds", func(t *testing.T) {
		t.Parallel()
		issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		svc := NewService(testSecret, WithClock(func() time.Time { return issued }))

		raw, err := svc.Issue(userRow())
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
		require.NoError(t, err)

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		iat, err := claims.GetIssuedAt()
		require.NoError(t, err)
		assert.Equal(t, issued.Unix(), iat.Unix())
		assert.Equal(t, issued.Add(10000*time.Second).Unix(), exp.Unix())
	})

	t.Run("signs with HS256", func(t *testing.T) {
		t.Parallel()
		raw, err := NewService(testSecret).Issue(userRow())
		require.NoError(t, err)

		tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
		require.NoError(t, err)
		assert.Equal(t, "HS256", tok.Method.Alg())
	})
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	t.Run("token older than its validity window", func(t *testing.T) {
		t.Parallel()
		past := time.Now().Add(-10001 * time.Second)
		old := NewService(testSecret, WithClock(func() time.Time { return past }))

		raw, err := old.Issue(userRow())
		require.NoError(t, err)

		_, err = NewService(testSecret).Verify(raw)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("token still inside its validity window", func(t *testing.T) {
		t.Parallel()
		past := time.Now().Add(-9990 * time.Second)
		old := NewService(testSecret, WithClock(func() time.Time { return past }))

		raw, err := old.Issue(userRow())
		require.NoError(t, err)

		_, err = NewService(testSecret).Verify(raw)
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		raw, err := NewService("another-secret").Issue(userRow())
		require.NoError(t, err)

		_, err = NewService(testSecret).Verify(raw)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()
		raw, err := NewService(testSecret).Issue(userRow())
		require.NoError(t, err)

		parts := strings.Split(raw, ".")
		require.Len(t, parts, 3)
		other, err := NewService(testSecret).Issue(Principal{"email": "mallory@example.com"})
		require.NoError(t, err)
		parts[1] = strings.Split(other, ".")[1] + "x"

		_, err = NewService(testSecret).Verify(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		_, err := NewService(testSecret).Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("unsigned none algorithm", func(t *testing.T) {
		t.Parallel()
		claims := jwt.MapClaims{"email": "x@example.com", "exp": time.Now().Add(time.Hour).Unix()}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = NewService(testSecret).Verify(raw)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("missing expiry", func(t *testing.T) {
		t.Parallel()
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@example.com"}).
			SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = NewService(testSecret).Verify(raw)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestWithTTL(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret, WithTTL(time.Minute))
	assert.Equal(t, time.Minute, svc.ttl)
	assert.Equal(t, DefaultTTL, NewService(testSecret).ttl)
}
