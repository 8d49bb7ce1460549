package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig is the TOML view of the tunables. The endpoint and the API key
// cannot be set from a file.
type FileConfig struct {
	HTTPTimeout string `toml:"http_timeout"`
	LogLevel    string `toml:"log_level"`
	Quiet       *bool  `toml:"quiet"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.sessionsweep/config.toml, or "" when the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sessionsweep", "config.toml")
	}
	return ""
}

// ApplyFileConfig copies file values into cfg unless the flag was set.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setDurationString("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setBool("quiet", fc.Quiet, &cfg.Quiet)
	return nil
}

// FileExists reports whether p exists.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
