// Package httpclient is a small read-only JSON client used by the container
// health check against a running youto server.
package httpclient
