package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestBodyLimit checks the request body cap.
func TestBodyLimit(t *testing.T) {
	t.Parallel()

	readAll := func(limit int64, body string) error {
		var readErr error
		router := gin.New()
		router.Use(BodyLimit(limit))
		router.POST("/x", func(c *gin.Context) {
			_, readErr = io.ReadAll(c.Request.Body)
			c.Status(http.StatusNoContent)
		})
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
		return readErr
	}

	t.Run("bodies within the cap read fully", func(t *testing.T) {
		t.Parallel()
		if err := readAll(8, "12345678"); err != nil {
			t.Errorf("read error = %v, want nil", err)
		}
	})

	t.Run("bodies past the cap fail with MaxBytesError", func(t *testing.T) {
		t.Parallel()
		var mbe *http.MaxBytesError
		if err := readAll(8, "123456789"); !errors.As(err, &mbe) {
			t.Errorf("read error = %v, want *http.MaxBytesError", err)
		}
	})

	t.Run("zero disables the cap", func(t *testing.T) {
		t.Parallel()
		if err := readAll(0, strings.Repeat("x", 1<<16)); err != nil {
			t.Errorf("read error = %v, want nil", err)
		}
	})
}
