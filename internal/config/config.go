// Package config loads runtime settings: built-in defaults, then an optional
// TOML file, then environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"applogs/internal/logger"
)

// Config holds the application configuration.
type Config struct {
	Addr string    `toml:"addr"`
	Log  LogConfig `toml:"log"`
}

// LogConfig holds the log session settings in their textual form.
type LogConfig struct {
	Dir        string `toml:"dir"`
	Level      string `toml:"level"`
	Suffix     string `toml:"suffix"`
	TimeLayout string `toml:"time_layout"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr: ":8080",
		Log: LogConfig{
			Dir:        logger.DefaultDir,
			Level:      "INFO",
			TimeLayout: logger.DefaultTimeLayout,
		},
	}
}

// Load reads the TOML file at path, if path is non-empty, over the defaults
// and applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	overrides := []struct {
		env string
		dst *string
	}{
		{"ADDR", &cfg.Addr},
		{"LOG_DIR", &cfg.Log.Dir},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FILE_SUFFIX", &cfg.Log.Suffix},
		{"LOG_TIME_LAYOUT", &cfg.Log.TimeLayout},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.dst = v
		}
	}

	if _, err := cfg.Log.LoggerConfig(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoggerConfig validates the textual settings and converts them for
// logger.New.
func (c LogConfig) LoggerConfig() (logger.Config, error) {
	level, err := logger.ParseLevel(c.Level)
	if err != nil {
		return logger.Config{}, fmt.Errorf("log level: %w", err)
	}
	suffix, err := logger.ParseSuffix(c.Suffix)
	if err != nil {
		return logger.Config{}, fmt.Errorf("log file suffix: %w", err)
	}
	return logger.Config{
		Dir:        c.Dir,
		Level:      level,
		Suffix:     suffix,
		TimeLayout: c.TimeLayout,
	}, nil
}
