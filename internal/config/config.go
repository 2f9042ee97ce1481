// Package config loads CLI and interpreter settings.
// Values are layered: command-line flags, then COUGARDB_* environment
// variables, then the YAML config file, then defaults. Interpreter property
// defaults are declared by the interpreter's registration, not here.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cougardb/cli/internal/xdg"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys read by the CLI itself.
const (
	KeyLogLevel  = "cougardb.log_level"
	KeyLogFormat = "cougardb.log_format"
)

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file; it must exist. When empty, the XDG
	// config file is used if present.
	File string
	// Flags is the flag set to bind, keyed by FlagKeys.
	Flags *pflag.FlagSet
	// FlagKeys maps flag names to setting keys.
	FlagKeys map[string]string
}

// Config is a loaded, layered settings view.
type Config struct {
	v    *viper.Viper
	file string
}

// Load reads settings according to opts.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range opts.FlagKeys {
		if opts.Flags == nil {
			break
		}
		f := opts.Flags.Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("bind flag --%s: no such flag", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}

	c := &Config{v: v}
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
		c.file = opts.File
		return c, nil
	}

	path, err := xdg.ConfigFile()
	if err != nil {
		// No home directory: run on flags, env and defaults only.
		return c, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	c.file = path
	return c, nil
}

// Lookup returns the configured value for key. ok is false when no flag,
// environment variable or file sets it; callers then apply their own default.
func (c *Config) Lookup(key string) (string, bool) {
	if !c.v.IsSet(key) {
		return "", false
	}
	s := c.v.GetString(key)
	return s, s != ""
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string { return c.v.GetString(KeyLogLevel) }

// LogFormat returns the configured log format name.
func (c *Config) LogFormat() string { return c.v.GetString(KeyLogFormat) }

// File returns the config file that was read, or "" when none was.
func (c *Config) File() string { return c.file }

// Set writes key=value into the config file at path, creating it if needed.
// Only values already in that file are carried over; flags and environment
// never leak into it.
func Set(path, key, value string) error {
	if path == "" {
		p, err := xdg.ConfigFile()
		if err != nil {
			return err
		}
		path = p
	}
	fv := viper.New()
	fv.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := fv.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	fv.Set(key, value)
	if err := fv.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return os.Chmod(path, 0o600)
}
