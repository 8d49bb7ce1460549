package cliconfig

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig is the set of variables sessionsweep reads.
type EnvConfig struct {
	APIKey      string         `env:"BACKEND_API_KEY"`
	APIKeyFile  string         `env:"BACKEND_API_KEY_FILE"`
	HTTPTimeout *time.Duration `env:"SESSIONSWEEP_HTTP_TIMEOUT"`
	LogLevel    string         `env:"SESSIONSWEEP_LOG_LEVEL"`
	Quiet       *bool          `env:"SESSIONSWEEP_QUIET"`
}

// LoadDotEnv loads a dotenv file into the process environment. Variables
// that are already set keep their values.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvConfig applies the process environment to cfg.
// Flags that were set explicitly win over the environment.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	// The key has no flag or file setting; the environment is authoritative.
	cfg.APIKey = ec.APIKey
	if cfg.APIKey == "" && ec.APIKeyFile != "" {
		key, err := readSecretFile(ec.APIKeyFile)
		if err != nil {
			return err
		}
		cfg.APIKey = key
	}

	s := newConfigSetter(changed)
	s.setDuration("timeout", ec.HTTPTimeout, &cfg.HTTPTimeout)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)
	s.setBool("quiet", ec.Quiet, &cfg.Quiet)
	return nil
}

func readSecretFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read BACKEND_API_KEY_FILE: %w", err)
	}
	return string(bytes.TrimSpace(b)), nil
}
