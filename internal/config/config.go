// Package config loads process configuration from TALIS_* environment
// variables. Command-line flags override individual fields afterwards.
package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/talis/internal/errors"
	"github.com/KirkDiggler/talis/internal/storage"
)

// Storage backends
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Output formats of the CLI
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// EnvProduction is the environment name that disables state inspection
const EnvProduction = "production"

// Config is the process configuration
type Config struct {
	Env           string `env:"TALIS_ENV"            envDefault:"development"`
	Storage       string `env:"TALIS_STORAGE"        envDefault:"redis"`
	RedisAddr     string `env:"TALIS_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"TALIS_REDIS_PASSWORD"`
	RedisDB       int    `env:"TALIS_REDIS_DB"       envDefault:"0"`
	Namespace     string `env:"TALIS_NAMESPACE"      envDefault:"talis:"`
	GRPCPort      int    `env:"TALIS_GRPC_PORT"      envDefault:"50051"`
	LogLevel      string `env:"TALIS_LOG_LEVEL"      envDefault:"info"`
	LogFormat     string `env:"TALIS_LOG_FORMAT"     envDefault:"text"`
	Output        string `env:"TALIS_OUTPUT"         envDefault:"text"`
}

// Load reads the process environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}

// LoadFrom reads configuration from the given variables instead of the
// process environment
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return &cfg, nil
}

// Validate checks enumerations and ranges
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("TALIS_STORAGE", c.Storage, []string{StorageRedis, StorageMemory}, vb)
	if c.Storage == StorageRedis {
		errors.ValidateRequired("TALIS_REDIS_ADDR", c.RedisAddr, vb)
	}
	errors.ValidateIntRange("TALIS_GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("TALIS_LOG_FORMAT", c.LogFormat, []string{LogFormatText, LogFormatJSON}, vb)
	errors.ValidateEnum("TALIS_OUTPUT", c.Output, []string{OutputText, OutputJSON, OutputYAML}, vb)
	if _, err := c.Level(); err != nil {
		vb.InvalidField("TALIS_LOG_LEVEL", err.Error())
	}
	if c.Namespace == "" {
		c.Namespace = storage.DefaultNamespace
	}

	return vb.Build()
}

// IsProduction reports whether the process runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.InvalidArgumentf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// NewLogger builds the structured logger described by the config
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch c.LogFormat {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "talis"), nil
}
