// Package config reads the timetable TOML configuration file.
//
//	[database]
//	dsn = "user:pass@tcp(localhost:3306)/timetable"
//	timeout = "5s"
//
//	[log]
//	level = "info"
//	format = "text"
//
//	[output]
//	format = "human"
//
// Missing keys keep their default. Unknown keys are an error so that typos do
// not silently fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-sql-driver/mysql"

	"timetable/internal/logging"
	"timetable/internal/output"
	"timetable/internal/store"
)

// EnvDSN overrides database.dsn when set.
const EnvDSN = "TIMETABLE_DSN"

// ErrNoDSN is returned by StoreOptions when no DSN is configured.
var ErrNoDSN = errors.New("no database DSN configured; set database.dsn or " + EnvDSN)

// Config maps the whole file.
type Config struct {
	Database Database `toml:"database"`
	Log      Log      `toml:"log"`
	Output   Output   `toml:"output"`
}

// Database maps [database].
type Database struct {
	DSN     string `toml:"dsn"`
	Timeout string `toml:"timeout"`
}

// Log maps [log].
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Output maps [output].
type Output struct {
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Database: Database{Timeout: "5s"},
		Log:      Log{Level: "info", Format: "text"},
		Output:   Output{Format: "human"},
	}
}

// Load opens the file at path and parses it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open file %q: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes TOML from r on top of the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv replaces values with those set in the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if dsn, ok := lookup(EnvDSN); ok && dsn != "" {
		c.Database.DSN = dsn
	}
}

// Validate checks every value. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.DSN != "" {
		if _, err := mysql.ParseDSN(c.Database.DSN); err != nil {
			errs = append(errs, fmt.Errorf("database.dsn: %w", err))
		}
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log.format: %w", err))
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Timeout parses database.timeout. An empty value means no timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Database.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Database.Timeout)
	if err != nil {
		return 0, fmt.Errorf("database.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("database.timeout: negative duration %s", d)
	}
	return d, nil
}

// Logger builds the logger described by [log], writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(w, level, format), nil
}

// StoreOptions returns the options for store.Open.
func (c *Config) StoreOptions(logger *slog.Logger) (store.Options, error) {
	if c.Database.DSN == "" {
		return store.Options{}, ErrNoDSN
	}
	timeout, err := c.Timeout()
	if err != nil {
		return store.Options{}, err
	}
	return store.Options{DSN: c.Database.DSN, Timeout: timeout, Logger: logger}, nil
}
