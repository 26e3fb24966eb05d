package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/youto/internal/auth"
	"github.com/nao1215/youto/internal/resource"
	"github.com/nao1215/youto/internal/rowgateway"
	"github.com/nao1215/youto/pkg/middleware"
)

const (
	msgUnknownEmail  = "invalid credentials (e-mail)"
	msgWrongPassword = "invalid credentials (password)"
	msgLoginFailed   = "Erreur lors de la récupération du token d'accès."
)

// handleLogin exchanges {email, password} for {accessToken}. Credential
// failures answer 401 in plain text.
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, err := resource.DecodeFields(c)
		if err != nil {
			resource.AbortBodyError(c, err)
			return
		}
		email, _ := fields["email"].(string)
		// a missing or non-string password is no password at all
		var password *string
		if p, ok := fields["password"].(string); ok {
			password = &p
		}

		accessToken, err := s.authenticator.Login(c.Request.Context(), email, password)
		switch {
		case errors.Is(err, auth.ErrUnknownPrincipal):
			c.String(http.StatusUnauthorized, msgUnknownEmail)
			return
		case errors.Is(err, auth.ErrBadCredential):
			c.String(http.StatusUnauthorized, msgWrongPassword)
			return
		case err != nil:
			s.logger.Error("login failed",
				"error", err,
				"storage", rowgateway.IsStorageFailure(err),
				"request_id", middleware.GetRequestID(c),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgLoginFailed})
			return
		}

		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}
