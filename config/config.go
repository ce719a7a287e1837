/*
Package config loads server configuration from a TOML file.

PURPOSE:
  One file holds everything the server needs: the listen address, the
  SQLite path, and the report defaults callers can override per request.
  A missing file is not an error; the defaults describe a working local
  setup.

EXAMPLE (config.toml):
  [server]
  port = 8080
  read_timeout_seconds = 15
  write_timeout_seconds = 60

  [storage]
  sqlite_path = "./data/availability.db"

  [report]
  period_days = 3
  price_column = "Location avec TVA"
  excluded_statuses = []
*/
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
	Report  Report  `toml:"report"`
}

type Server struct {
	Port                int `toml:"port"`
	ReadTimeoutSeconds  int `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`
}

type Storage struct {
	SQLitePath string `toml:"sqlite_path"`
}

// Report holds the defaults applied when a report request leaves a knob
// unset.
type Report struct {
	PeriodDays       int      `toml:"period_days"`
	PriceColumn      string   `toml:"price_column"`
	ExcludedStatuses []string `toml:"excluded_statuses"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 60,
		},
		Storage: Storage{
			SQLitePath: "./data/availability.db",
		},
		Report: Report{
			PeriodDays:  3,
			PriceColumn: "Location avec TVA",
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if cfg.Report.PeriodDays < 1 {
		return Config{}, fmt.Errorf("invalid report period_days %d", cfg.Report.PeriodDays)
	}
	return cfg, nil
}

func (s Server) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func (s Server) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s Server) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}
