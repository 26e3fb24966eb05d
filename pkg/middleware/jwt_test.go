package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/youto/pkg/token"
)

// testSecret is the signing secret used by these tests.
const testSecret = "test-secret-key-for-unit-tests"

// gatedRouter mounts a single gated route that records whether it ran and
// which principal it saw.
func gatedRouter(svc *token.Service, reached *bool, seen *token.Principal) *gin.Engine {
	router := gin.New()
	router.GET("/protected", JWTAuth(svc), func(c *gin.Context) {
		*reached = true
		p, _ := GetPrincipal(c)
		fromCtx, ok := PrincipalFromContext(c.Request.Context())
		if ok && fromCtx.Email() == p.Email() {
			*seen = p
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// TestJWTAuth checks the access gate.
func TestJWTAuth(t *testing.T) {
	t.Parallel()

	svc := token.NewService(testSecret)
	valid, err := svc.Issue(token.Principal{"id": int64(1), "email": "ada@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	past := time.Now().Add(-2 * token.DefaultTTL)
	expired, err := token.NewService(testSecret, token.WithClock(func() time.Time { return past })).
		Issue(token.Principal{"email": "ada@example.com"})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	foreign, err := token.NewService("another-secret").Issue(token.Principal{"email": "ada@example.com"})
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	rejected := []struct {
		name   string
		header string
	}{
		{"no Authorization header", ""},
		{"not a bearer credential", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"token signed with another secret", "Bearer " + foreign},
	}
	for _, tt := range rejected {
		t.Run(tt.name+" is rejected with 401 and an empty body", func(t *testing.T) {
			t.Parallel()

			reached := false
			var seen token.Principal
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			gatedRouter(svc, &reached, &seen).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
			if w.Body.Len() != 0 {
				t.Errorf("body = %q, want empty", w.Body.String())
			}
			if reached {
				t.Error("downstream handler must not run")
			}
		})
	}

	t.Run("valid token forwards with the principal attached", func(t *testing.T) {
		t.Parallel()

		reached := false
		var seen token.Principal
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		w := httptest.NewRecorder()
		gatedRouter(svc, &reached, &seen).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if !reached {
			t.Fatal("downstream handler should run")
		}
		if seen.Email() != "ada@example.com" {
			t.Errorf("principal email = %q, want %q", seen.Email(), "ada@example.com")
		}
	})
}

// TestGetPrincipal checks the accessor without the gate.
func TestGetPrincipal(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := GetPrincipal(c); ok {
		t.Error("GetPrincipal should report false without the gate")
	}
	if _, ok := PrincipalFromContext(c.Request.Context()); ok {
		t.Error("PrincipalFromContext should report false without the gate")
	}
}
