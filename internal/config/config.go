// Package config loads client settings from an optional .env file, the
// environment and command-line flags, in that order of precedence (flags
// win).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the client configuration.
type Config struct {
	APIBaseURL  string        `env:"OTGIL_API_BASE_URL"  envDefault:"http://localhost:8000"`
	DBPath      string        `env:"OTGIL_DB"            envDefault:"otgil.sqlite3"`
	Addr        string        `env:"OTGIL_ADDR"          envDefault:"127.0.0.1:8080"`
	LogPath     string        `env:"OTGIL_LOG"`
	HTTPTimeout time.Duration `env:"OTGIL_HTTP_TIMEOUT"  envDefault:"0s"`
	Debug       bool          `env:"OTGIL_DEBUG"`
}

// LoadDotEnv loads variables from the given files without overriding ones
// already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv parses the environment into a Config.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Register binds cfg's fields to short and long flags on fs, using the
// current values as defaults.
func (cfg *Config) Register(fs *flag.FlagSet) {
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "")
	fs.StringVar(&cfg.APIBaseURL, "b", cfg.APIBaseURL, "")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "")
	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "")
}

// Load reads .env, the environment and then args.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg.Register(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
