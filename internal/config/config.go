package config

import (
	"context"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Paging configuration
	Paging PagingConfig `env:",prefix=PAGING_"`

	// Application configuration
	App AppConfig `env:",prefix=APP_"`
}

// PagingConfig holds list paging configuration
type PagingConfig struct {
	DefaultSize int `env:"DEFAULT_SIZE,default=10"`
	MaxSize     int `env:"MAX_SIZE,default=1000"`

	// Per-list overrides keyed by entity kind, e.g. "order:10,customer:8"
	Sizes map[string]int `env:"SIZES,default=order:10,customer:8,product:7"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	Metrics     bool   `env:"METRICS,default=true"`
}

// Prefix is prepended to every environment variable name.
const Prefix = "LISTING_"

// Load loads configuration from environment variables, after reading a .env
// file from the working directory if there is one
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration from the given lookuper
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(Prefix, lookuper),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to process environment config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the paging bounds are usable
func (c *Config) Validate() error {
	if c.Paging.DefaultSize < 1 {
		return errors.Errorf("paging default size must be positive, got %d", c.Paging.DefaultSize)
	}
	if c.Paging.MaxSize < c.Paging.DefaultSize {
		return errors.Errorf("paging max size %d is below default size %d", c.Paging.MaxSize, c.Paging.DefaultSize)
	}
	for kind, size := range c.Paging.Sizes {
		if size < 1 {
			return errors.Errorf("page size for %q must be positive, got %d", kind, size)
		}
	}
	if _, err := logrus.ParseLevel(c.App.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

// PageSize returns the page size for a list kind
func (c *PagingConfig) PageSize(kind string) int {
	if size, ok := c.Sizes[strings.ToLower(kind)]; ok {
		return size
	}
	return c.DefaultSize
}

// Level returns the configured logrus level
func (c *AppConfig) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// IsDevelopment returns true if running in development environment
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
