package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestRequestLog checks request id assignment and the access log line.
func TestRequestLog(t *testing.T) {
	t.Parallel()

	t.Run("assigns a fresh uuid and logs the request", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		var inHandler string
		router := gin.New()
		router.Use(RequestLog(logger))
		router.GET("/articles/:id", func(c *gin.Context) {
			inHandler = GetRequestID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/articles/3", nil))

		id := w.Header().Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("X-Request-ID %q is not a uuid: %v", id, err)
		}
		if inHandler != id {
			t.Errorf("handler saw %q, header carries %q", inHandler, id)
		}

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("decode log line: %v (%s)", err, buf.String())
		}
		if line["route"] != "/articles/:id" {
			t.Errorf("route = %v, want /articles/:id", line["route"])
		}
		if line["status"] != float64(http.StatusOK) {
			t.Errorf("status = %v, want 200", line["status"])
		}
		if line["request_id"] != id {
			t.Errorf("request_id = %v, want %s", line["request_id"], id)
		}
	})

	t.Run("reuses an incoming request id", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestLog(discardLogger()))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("X-Request-ID = %q, want abc-123", got)
		}
	})
}
