package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("url", "", "")
	fs.String("log-level", "", "")
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

var flagKeys = map[string]string{"url": "cougardb.url", "log-level": KeyLogLevel}

func TestLoadPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     string
		args    []string
		wantURL string
		wantOK  bool
	}{
		{
			name:   "nothing configured",
			wantOK: false,
		},
		{
			name:    "file",
			file:    "cougardb:\n  url: http://file.local/api\n",
			wantURL: "http://file.local/api",
			wantOK:  true,
		},
		{
			name:    "env beats file",
			file:    "cougardb:\n  url: http://file.local/api\n",
			env:     "http://env.local/api",
			wantURL: "http://env.local/api",
			wantOK:  true,
		},
		{
			name:    "flag beats env",
			file:    "cougardb:\n  url: http://file.local/api\n",
			env:     "http://env.local/api",
			args:    []string{"--url", "http://flag.local/api"},
			wantURL: "http://flag.local/api",
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv("COUGARDB_URL", tt.env)
			opts := Options{Flags: flagSet(t, tt.args...), FlagKeys: flagKeys}
			if tt.file != "" {
				opts.File = writeFile(t, t.TempDir(), tt.file)
			}

			c, err := Load(opts)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			got, ok := c.Lookup("cougardb.url")
			if ok != tt.wantOK || got != tt.wantURL {
				t.Errorf("Lookup() = %q, %v, want %q, %v", got, ok, tt.wantURL, tt.wantOK)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.LogLevel() != "info" || c.LogFormat() != "text" {
		t.Errorf("log settings = %q, %q", c.LogLevel(), c.LogFormat())
	}
	if c.File() != "" {
		t.Errorf("File() = %q, want empty", c.File())
	}
}

func TestLoadXDGFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, "cougardb")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, dir, "cougardb:\n  log_level: debug\n  timeout: 30s\n")

	c, err := Load(Options{Flags: flagSet(t), FlagKeys: flagKeys})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.File() != path {
		t.Errorf("File() = %q, want %q", c.File(), path)
	}
	if c.LogLevel() != "debug" {
		t.Errorf("LogLevel() = %q, want debug", c.LogLevel())
	}
	if v, ok := c.Lookup("cougardb.timeout"); !ok || v != "30s" {
		t.Errorf("Lookup(timeout) = %q, %v", v, ok)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("Load() error = %v, want read config error", err)
	}
}

func TestLoadUnknownFlag(t *testing.T) {
	_, err := Load(Options{Flags: flagSet(t), FlagKeys: map[string]string{"missing": "x"}})
	if err == nil {
		t.Error("Load() error = nil, want unknown flag error")
	}
}

func TestSet(t *testing.T) {
	t.Setenv("COUGARDB_URL", "")
	path := writeFile(t, t.TempDir(), "cougardb:\n  log_level: warn\n")

	if err := Set(path, "cougardb.url", "http://saved.local/api"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	c, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v, _ := c.Lookup("cougardb.url"); v != "http://saved.local/api" {
		t.Errorf("url = %q", v)
	}
	if c.LogLevel() != "warn" {
		t.Errorf("LogLevel() = %q, want existing value kept", c.LogLevel())
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("perm = %o, want 600", info.Mode().Perm())
	}
}
