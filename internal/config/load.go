package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// binding ties a config key to its environment variable and default.
type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"server.port", "PORT", 3032},
	{"server.cors_allowed_origins", "CORS_ALLOWED_ORIGINS", []string{"*"}},
	{"server.max_body_bytes", "MAX_BODY_BYTES", 100 << 10},
	{"database.driver", "DATABASE_DRIVER", "sqlite"},
	{"database.url", "DATABASE_URL", "file:youto.db?_pragma=foreign_keys(1)"},
	{"database.max_open_conns", "DB_MAX_OPEN_CONNS", 10},
	{"database.query_timeout", "DB_QUERY_TIMEOUT", "0s"},
	{"auth.token_secret", "ACCESS_TOKEN_SECRET", ""},
	{"auth.token_ttl", "ACCESS_TOKEN_TTL", "10000s"},
	{"auth.password_scheme", "AUTH_PASSWORD_SCHEME", "plain"},
	{"auth.gate_writes", "AUTH_GATE_WRITES", false},
	{"auth.login_rate_limit", "LOGIN_RATE_LIMIT", 0.0},
	{"auth.login_rate_burst", "LOGIN_RATE_BURST", 10},
	{"log.level", "LOG_LEVEL", "info"},
	{"log.format", "LOG_FORMAT", "json"},
}

// Load reads .env (if present) and the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
