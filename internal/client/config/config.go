// Package config loads settings for the studio terminal client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see Defaults).
//  2. A YAML file, by default ~/.config/image-studio/config.yaml.
//  3. Command-line flags registered with BindFlags.
//
// Example file:
//
//	server_url: http://localhost:8080/api
//	state_dir: ~/.local/state/image-studio
//	request_timeout: 0s
//	log_level: warn
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const appDir = "image-studio"

type Config struct {
	ServerURL string `yaml:"server_url"`
	StateDir  string `yaml:"state_dir"`
	// RequestTimeout bounds each server call; zero waits as long as generation takes.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		ServerURL:      "http://localhost:8080/api",
		StateDir:       defaultStateDir(),
		RequestTimeout: 0,
		LogLevel:       "warn",
	}
}

// DefaultPath is where the YAML file is looked up when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDir, "config.yaml")
}

func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDir)
	}
	return filepath.Join(home, ".local", "state", appDir)
}

// Load applies the YAML file at path over the defaults. An empty path means
// DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.StateDir = expandHome(cfg.StateDir)
	return cfg, nil
}

// BindFlags registers the client flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to the YAML config file")
	fs.StringP("server", "s", "", "server base URL, e.g. http://localhost:8080/api")
	fs.String("state-dir", "", "directory holding the saved profile")
	fs.Duration("timeout", 0, "per-request timeout (0 = none)")
	fs.String("log-level", "", "trace, debug, info, warn or error")
}

// FromFlags loads the file named by --config and overlays every flag the
// user set explicitly.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	path, _ := fs.GetString("config")
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if fs.Changed("server") {
		cfg.ServerURL, _ = fs.GetString("server")
	}
	if fs.Changed("state-dir") {
		dir, _ := fs.GetString("state-dir")
		cfg.StateDir = expandHome(dir)
	}
	if fs.Changed("timeout") {
		cfg.RequestTimeout, _ = fs.GetDuration("timeout")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if cfg.ServerURL == "" {
		return nil, errors.New("config: server URL must not be empty")
	}
	return cfg, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
