package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "xdg", "asnap", "config.toml"), cfg.File)
	assert.Equal(t, filepath.Join(home, ".local", "share", "asnap", "snapshots"), cfg.WorkingDir)
	assert.Equal(t, filepath.Join(cfg.WorkingDir, "_backups"), cfg.Migration.BackupDir)
	assert.False(t, cfg.DisableAutomaticRevert)
	assert.Empty(t, cfg.MergeCollection)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultBridgeURL, cfg.Bridge.URL)
	assert.Equal(t, 5*time.Second, cfg.Bridge.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Bridge.Tick)
	assert.Equal(t, 4, cfg.Migration.Workers)
	assert.Equal(t, 30*time.Second, cfg.IndexTTL)
}

func TestLoadReadsFileAndEnvironment(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, "xdg", "asnap")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
working_dir = "~/snaps"
disable_automatic_revert = true
merge_collection = "Base"

[bridge]
tick = "250ms"

[migration]
workers = 2
`), 0o644))
	t.Setenv("ASNAP_BRIDGE_URL", "http://127.0.0.1:9999")
	t.Setenv("ASNAP_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "snaps"), cfg.WorkingDir)
	assert.True(t, cfg.DisableAutomaticRevert)
	assert.Equal(t, "Base", cfg.MergeCollection)
	assert.Equal(t, 250*time.Millisecond, cfg.Bridge.Tick)
	assert.Equal(t, 2, cfg.Migration.Workers)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Bridge.URL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[migration]\nworkers = 0\n"), 0o644))

	_, err := Load(viper.New(), path)
	assert.ErrorContains(t, err, "migration.workers must be at least 1")
}

func TestSetPreservesOtherKeys(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "asnap", "config.toml")
	require.NoError(t, Set(path, KeyMergeCollection, "Base"))
	require.NoError(t, Set(path, KeyBridgeTick, "50ms"))
	require.NoError(t, Set(path, KeyMigrationWorkers, "8"))
	require.NoError(t, Set(path, KeyDisableAutomaticRevert, "true"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, toml.Unmarshal(data, &doc))
	assert.Equal(t, "Base", doc["merge_collection"])
	assert.Equal(t, true, doc["disable_automatic_revert"])
	assert.Equal(t, map[string]any{"tick": "50ms"}, doc["bridge"])
	assert.Equal(t, map[string]any{"workers": int64(8)}, doc["migration"])

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Bridge.Tick)
	assert.Equal(t, 8, cfg.Migration.Workers)
	assert.True(t, cfg.DisableAutomaticRevert)
}

func TestSetValidates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	testCases := []struct {
		name    string
		key     string
		value   string
		message string
	}{
		{name: "unknown key", key: "colour", value: "red", message: "unknown config key"},
		{name: "bad bool", key: KeyDisableAutomaticRevert, value: "maybe", message: "expected true or false"},
		{name: "bad duration", key: KeyBridgeTimeout, value: "soon", message: "expected a duration"},
		{name: "zero workers", key: KeyMigrationWorkers, value: "0", message: "must be at least 1"},
		{name: "bad level", key: KeyLogLevel, value: "chatty", message: "log.level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Set(path, tc.key, tc.value)
			assert.ErrorContains(t, err, tc.message)
		})
	}

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeEffectiveConfig(t *testing.T) {
	t.Parallel()

	data, err := Encode(Config{
		WorkingDir: "/data/snapshots",
		LogLevel:   "warn",
		Bridge:     BridgeConfig{URL: DefaultBridgeURL, Timeout: 5 * time.Second, Tick: 100 * time.Millisecond},
		Migration:  MigrationConfig{Workers: 4, BackupDir: "/data/snapshots/_backups"},
		IndexTTL:   30 * time.Second,
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "working_dir = '/data/snapshots'")
	assert.Contains(t, out, "[bridge]")
	assert.Contains(t, out, "timeout = '5s'")
	assert.Contains(t, out, "tick = '100ms'")
	assert.Contains(t, out, "workers = 4")
}
