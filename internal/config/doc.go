// Package config loads the service configuration from the environment.
//
// An optional .env file in the working directory is read first; real
// environment variables win over it. Every value has a default except
// ACCESS_TOKEN_SECRET, which must be set.
package config
