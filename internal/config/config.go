package config

import "time"

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig contains the HTTP listener settings.
type ServerConfig struct {
	Port               int      `mapstructure:"port" validate:"gt=0,lt=65536"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"min=1"`
	// MaxBodyBytes caps request bodies. Zero disables the cap.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gte=0"`
}

// DatabaseConfig selects and tunes the relational store.
type DatabaseConfig struct {
	Driver       string        `mapstructure:"driver" validate:"oneof=sqlite pgx"`
	URL          string        `mapstructure:"url" validate:"required"`
	MaxOpenConns int           `mapstructure:"max_open_conns" validate:"gte=1"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" validate:"gte=0"`
}

// AuthConfig contains token and login settings.
type AuthConfig struct {
	TokenSecret    string        `mapstructure:"token_secret" validate:"required"`
	TokenTTL       time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
	PasswordScheme string        `mapstructure:"password_scheme" validate:"oneof=plain bcrypt"`
	// GateWrites puts the access gate in front of every create, update and delete.
	GateWrites bool `mapstructure:"gate_writes"`
	// LoginRateLimit is requests per second per client on /login. Zero disables it.
	LoginRateLimit float64 `mapstructure:"login_rate_limit" validate:"gte=0"`
	LoginRateBurst int     `mapstructure:"login_rate_burst" validate:"gte=1"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}
