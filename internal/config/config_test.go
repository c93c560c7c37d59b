package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settingsdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvPrefix+"_CONFIG", "")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "config.json", cfg.Storage.Key)
	assert.Equal(t, DefaultDir(), cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.UI.Strict)
}

func TestLoadFileEnvAndOverrides(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
  path: /tmp/settings.db
log:
  level: debug
ui:
  default_tab: 关于
`)
	t.Setenv(EnvPrefix+"_UI_STRICT", "true")
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "warn")

	cfg, err := Load(Options{File: path, Overrides: map[string]any{"storage.key": "deck.yaml"}})
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/settings.db", cfg.Storage.Path)
	assert.Equal(t, "deck.yaml", cfg.Storage.Key)
	assert.Equal(t, "warn", cfg.Log.Level, "environment beats the file")
	assert.Equal(t, "关于", cfg.UI.DefaultTab)
	assert.True(t, cfg.UI.Strict)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: redis\n")

	_, err := Load(Options{File: path})
	var validationErr *deckerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "storage.backend", validationErr.Field)

	_, err = Load(Options{File: writeConfig(t, "storage:\n  key: ../escape.json\n")})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "storage.key", validationErr.Field)
}

func TestLoadReportsParseErrors(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: [file\n")

	_, err := Load(Options{File: path})
	var parseErr *deckerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)

	_, err = Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorAs(t, err, &parseErr)
}

func TestValidateMemoryBackendNeedsNoPath(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Storage: StorageConfig{Backend: "memory", Key: "config.json"},
		Log:     LogConfig{Level: "info"},
	}
	assert.NoError(t, Validate(cfg))

	cfg.Storage.Backend = "file"
	assert.Error(t, Validate(cfg))
	assert.Error(t, Validate(nil))
}
