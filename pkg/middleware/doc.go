// Package middleware provides the gin middlewares shared by the HTTP API.
//
// JWTAuth is the access gate in front of protected routes. The others are
// ambient: panic recovery, CORS, request logging with request ids,
// Prometheus metrics and a per-client rate limit.
package middleware
