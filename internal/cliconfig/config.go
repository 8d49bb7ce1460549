package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/patrolio/sessionsweep/internal/domain"
	"github.com/patrolio/sessionsweep/internal/invoker"
)

// DefaultServiceURL is the patrol sessions service.
const DefaultServiceURL = invoker.DefaultBaseURL

// Config holds CLI configuration for sessionsweep.
type Config struct {
	ServiceURL string
	APIKey     string

	HTTPTimeout time.Duration
	LogLevel    string
	Quiet       bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		HTTPTimeout: 30 * time.Second,
		LogLevel:    zerolog.InfoLevel.String(),
	}
}

// Validate checks the configuration for errors and normalises derived values.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	c.ServiceURL = strings.TrimRight(c.ServiceURL, "/")

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}
	if c.APIKey == "" {
		return domain.ErrMissingAPIKey
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = "*****"
	}
	return c
}

// configSetter applies values only when the matching flag was not set on the
// command line.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration copies any set value, including non-positive ones, so that
// Validate rejects them the same way it does for file values.
func (s *configSetter) setDuration(flag string, value *time.Duration, dst *time.Duration) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDurationString parses value with time.ParseDuration.
func (s *configSetter) setDurationString(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}
