package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".remind", "reminders.db"), cfg.Store.Path)
	assert.Equal(t, 3*time.Second, cfg.LockTimeout())
	assert.True(t, cfg.UI.ColoredOutput)
	assert.True(t, cfg.UI.Interactive)
	assert.Equal(t, 40, cfg.UI.TitleWidth)
	assert.Equal(t, 24, cfg.UI.ListWidth)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 15*time.Minute, cfg.NotifyInterval())
	assert.Equal(t, time.Hour, cfg.NotifyLookahead())
	assert.Empty(t, cfg.Defaults.List)
}

func TestLoadFileThenEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("REMIND_UI__LIST_WIDTH", "30")
	t.Setenv("REMIND_DEFAULTS__LIST", "Work")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  path: /tmp/other.db
ui:
  list_width: 12
  interactive: false
notify:
  interval: 60
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.False(t, cfg.UI.Interactive)
	assert.Equal(t, 30, cfg.UI.ListWidth, "env beats file")
	assert.Equal(t, 40, cfg.UI.TitleWidth, "defaults survive partial files")
	assert.Equal(t, time.Minute, cfg.NotifyInterval())
	assert.Equal(t, "Work", cfg.Defaults.List)
}

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("REMIND_UI__COLORED_OUTPUT", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.UI.ColoredOutput)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to load config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Store:  StoreConfig{Path: "/tmp/r.db", LockTimeout: 3},
			UI:     UIConfig{TitleWidth: 40, ListWidth: 24},
			Notify: NotifyConfig{Interval: 900, Lookahead: 3600},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no store path", mutate: func(c *Config) { c.Store.Path = "" }, wantErr: "store.path"},
		{name: "zero lock timeout", mutate: func(c *Config) { c.Store.LockTimeout = 0 }, wantErr: "lock_timeout"},
		{name: "zero title width", mutate: func(c *Config) { c.UI.TitleWidth = 0 }, wantErr: "title_width"},
		{name: "negative list width", mutate: func(c *Config) { c.UI.ListWidth = -1 }, wantErr: "list_width"},
		{name: "zero interval", mutate: func(c *Config) { c.Notify.Interval = 0 }, wantErr: "notify.interval"},
		{name: "zero lookahead", mutate: func(c *Config) { c.Notify.Lookahead = 0 }},
		{name: "negative lookahead", mutate: func(c *Config) { c.Notify.Lookahead = -5 }, wantErr: "lookahead"},
		{name: "negative verbosity", mutate: func(c *Config) { c.Log.Verbosity = -1 }, wantErr: "verbosity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lock_timeout: 3")
	assert.Contains(t, string(data), "title_width: 40")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Notify.Interval)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "colored_output: true")
}

func TestEnvKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "store.lock_timeout", envKey("REMIND_STORE__LOCK_TIMEOUT"))
	assert.Equal(t, "ui.colored_output", envKey("REMIND_UI__COLORED_OUTPUT"))
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y.db"), ExpandPath("~/x/y.db"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "", ExpandPath(""))
}
