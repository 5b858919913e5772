package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/natefinch/atomic"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: REMIND_UI__COLORED_OUTPUT sets ui.colored_output.
const EnvPrefix = "REMIND_"

type Config struct {
	Store    StoreConfig    `koanf:"store"`
	UI       UIConfig       `koanf:"ui"`
	Log      LogConfig      `koanf:"log"`
	Notify   NotifyConfig   `koanf:"notify"`
	Defaults DefaultsConfig `koanf:"defaults"`

	k *koanf.Koanf
}

type StoreConfig struct {
	Path        string `koanf:"path"`
	LockTimeout int    `koanf:"lock_timeout"` // seconds
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
	Interactive   bool `koanf:"interactive"`
	TitleWidth    int  `koanf:"title_width"`
	ListWidth     int  `koanf:"list_width"`
}

type LogConfig struct {
	File      string `koanf:"file"`
	Verbosity int    `koanf:"verbosity"`
}

type NotifyConfig struct {
	Interval  int `koanf:"interval"`  // seconds between checks in watch mode
	Lookahead int `koanf:"lookahead"` // seconds; reminders due this soon are announced
}

type DefaultsConfig struct {
	List string `koanf:"list"`
}

// Load layers defaults, the YAML file at configPath (when it exists) and
// REMIND_ environment variables. NO_COLOR turns colour off regardless.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = ExpandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if os.Getenv("NO_COLOR") != "" {
		if err := k.Set("ui.colored_output", false); err != nil {
			return nil, fmt.Errorf("failed to apply NO_COLOR: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	cfg.Store.Path = ExpandPath(cfg.Store.Path)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	return &cfg, nil
}

// envKey maps REMIND_STORE__LOCK_TIMEOUT to store.lock_timeout.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	if c.Store.LockTimeout <= 0 {
		return fmt.Errorf("store.lock_timeout must be positive")
	}

	if c.UI.TitleWidth <= 0 || c.UI.ListWidth <= 0 {
		return fmt.Errorf("ui.title_width and ui.list_width must be positive")
	}

	if c.Notify.Interval <= 0 {
		return fmt.Errorf("notify.interval must be positive")
	}

	if c.Notify.Lookahead < 0 {
		return fmt.Errorf("notify.lookahead must not be negative")
	}

	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative")
	}

	return nil
}

func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Store.LockTimeout) * time.Second
}

func (c *Config) NotifyInterval() time.Duration {
	return time.Duration(c.Notify.Interval) * time.Second
}

func (c *Config) NotifyLookahead() time.Duration {
	return time.Duration(c.Notify.Lookahead) * time.Second
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	if c.k == nil {
		return nil, fmt.Errorf("config was not loaded")
	}
	return c.k.Marshal(yaml.Parser())
}

// WriteDefault writes the default configuration to path as YAML, replacing
// the file atomically. Missing parent directories are created.
func WriteDefault(path string) error {
	path = ExpandPath(path)

	k := koanf.New(".")
	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to encode defaults: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading "~/" with the home directory.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
