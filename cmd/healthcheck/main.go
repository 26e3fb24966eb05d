// Container health check. It exits 0 when GET /health on the local youto
// server answers {"status":"ok"} and 1 otherwise.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nao1215/youto/pkg/httpclient"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3032"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := httpclient.New("http://127.0.0.1:"+port, httpclient.WithTimeout(5*time.Second))
	if err := checkHealth(ctx, c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// checkHealth checks that /health reports ok.
func checkHealth(ctx context.Context, c *httpclient.Client) error {
	var health struct {
		Status string `json:"status"`
	}
	if err := c.GetJSON(ctx, "/health", &health); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("health check failed: status %q", health.Status)
	}
	return nil
}
