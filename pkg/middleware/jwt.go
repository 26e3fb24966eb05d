package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/youto/pkg/token"
)

// contextKeyPrincipal is the gin context key holding the verified principal.
const contextKeyPrincipal = "principal"

// principalKey is the request context key holding the verified principal.
type principalKey struct{}

// JWTAuth returns the access gate. A request without an
// "Authorization: Bearer <token>" header, or whose token does not verify,
// is answered 401 with an empty body and never reaches the next handler.
// On success the decoded principal is attached to both the gin context and
// the request context.
//
// The gate authenticates only; it makes no role or permission decision.
func JWTAuth(verifier token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		principal, err := verifier.Verify(tokenString)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(contextKeyPrincipal, principal)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalKey{}, principal))
		c.Next()
	}
}

// GetPrincipal returns the principal JWTAuth attached to c.
func GetPrincipal(c *gin.Context) (token.Principal, bool) {
	v, ok := c.Get(contextKeyPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(token.Principal)
	return p, ok
}

// PrincipalFromContext returns the principal JWTAuth attached to ctx.
func PrincipalFromContext(ctx context.Context) (token.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(token.Principal)
	return p, ok
}
