// Package api is the HTTP face of the service. It owns the route table and
// composes the generic resource handlers, the login route and the access
// gate into one gin engine.
package api
