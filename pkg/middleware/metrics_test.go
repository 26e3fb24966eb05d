package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetrics checks request counting and the exposition handler.
func TestMetrics(t *testing.T) {
	t.Parallel()

	m := NewMetrics("youto")
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/articles/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/articles/1", "/articles/2", "/missing"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/articles/:id", "200")); got != 2 {
		t.Errorf("article requests = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Errorf("unmatched requests = %v, want 1", got)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), "youto_http_requests_total") {
		t.Error("exposition should contain youto_http_requests_total")
	}
	if !strings.Contains(string(body), "youto_http_request_duration_seconds") {
		t.Error("exposition should contain youto_http_request_duration_seconds")
	}
}
