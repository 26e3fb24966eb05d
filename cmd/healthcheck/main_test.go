package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nao1215/youto/pkg/httpclient"
)

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"healthy", http.StatusOK, `{"status":"ok","service":"youto"}`, false},
		{"degraded body", http.StatusOK, `{"status":"starting"}`, true},
		{"server error", http.StatusInternalServerError, `{"error":"x"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			err := checkHealth(context.Background(), httpclient.New(srv.URL))
			if (err != nil) != tt.wantErr {
				t.Errorf("checkHealth() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
