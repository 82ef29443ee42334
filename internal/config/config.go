package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	appDirName = "asnap"
	envPrefix  = "ASNAP"

	KeyWorkingDir             = "working_dir"
	KeyDisableAutomaticRevert = "disable_automatic_revert"
	KeyMergeCollection        = "merge_collection"
	KeyLogLevel               = "log.level"
	KeyBridgeURL              = "bridge.url"
	KeyBridgeTimeout          = "bridge.timeout"
	KeyBridgeTick             = "bridge.tick"
	KeyMigrationWorkers       = "migration.workers"
	KeyMigrationBackupDir     = "migration.backup_dir"
	KeyIndexTTL               = "index.ttl"

	DefaultBridgeURL = "http://127.0.0.1:47321"
)

type Config struct {
	// File is the config file that was read, or the one `config set` would create.
	File string

	WorkingDir             string
	DisableAutomaticRevert bool
	MergeCollection        string
	LogLevel               string
	Bridge                 BridgeConfig
	Migration              MigrationConfig
	IndexTTL               time.Duration
}

type BridgeConfig struct {
	URL     string
	Timeout time.Duration
	Tick    time.Duration
}

type MigrationConfig struct {
	Workers   int
	BackupDir string
}

// Dir is $XDG_CONFIG_HOME/asnap, falling back to ~/.config/asnap.
func Dir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDirName), nil
}

func DefaultFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+"."+configType), nil
}

// Load reads config.toml (if any) and ASNAP_* environment overrides into v.
// An explicit file overrides discovery.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, homeDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType(configType)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.AddConfigPath(dir)
		file = filepath.Join(dir, configName+"."+configType)
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		file = used
	}

	cfg := Config{
		File:                   file,
		WorkingDir:             expandHome(v.GetString(KeyWorkingDir), homeDir),
		DisableAutomaticRevert: v.GetBool(KeyDisableAutomaticRevert),
		MergeCollection:        strings.TrimSpace(v.GetString(KeyMergeCollection)),
		LogLevel:               v.GetString(KeyLogLevel),
		Bridge: BridgeConfig{
			URL:     v.GetString(KeyBridgeURL),
			Timeout: v.GetDuration(KeyBridgeTimeout),
			Tick:    v.GetDuration(KeyBridgeTick),
		},
		Migration: MigrationConfig{
			Workers:   v.GetInt(KeyMigrationWorkers),
			BackupDir: expandHome(v.GetString(KeyMigrationBackupDir), homeDir),
		},
		IndexTTL: v.GetDuration(KeyIndexTTL),
	}
	if cfg.Migration.BackupDir == "" {
		cfg.Migration.BackupDir = filepath.Join(cfg.WorkingDir, "_backups")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(KeyWorkingDir, filepath.Join(homeDir, ".local", "share", appDirName, "snapshots"))
	v.SetDefault(KeyDisableAutomaticRevert, false)
	v.SetDefault(KeyMergeCollection, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyBridgeURL, DefaultBridgeURL)
	v.SetDefault(KeyBridgeTimeout, 5*time.Second)
	v.SetDefault(KeyBridgeTick, 100*time.Millisecond)
	v.SetDefault(KeyMigrationWorkers, 4)
	v.SetDefault(KeyMigrationBackupDir, "")
	v.SetDefault(KeyIndexTTL, 30*time.Second)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.WorkingDir) == "" {
		errs = append(errs, errors.New("working_dir is empty"))
	}
	if strings.TrimSpace(c.Bridge.URL) == "" {
		errs = append(errs, errors.New("bridge.url is empty"))
	}
	if c.Bridge.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("bridge.timeout must be positive, got %s", c.Bridge.Timeout))
	}
	if c.Bridge.Tick <= 0 {
		errs = append(errs, fmt.Errorf("bridge.tick must be positive, got %s", c.Bridge.Tick))
	}
	if c.Migration.Workers < 1 {
		errs = append(errs, fmt.Errorf("migration.workers must be at least 1, got %d", c.Migration.Workers))
	}
	if c.IndexTTL < 0 {
		errs = append(errs, fmt.Errorf("index.ttl must not be negative, got %s", c.IndexTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func expandHome(path, homeDir string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "~" {
		return homeDir
	}
	if strings.HasPrefix(trimmed, "~/") {
		return filepath.Join(homeDir, trimmed[2:])
	}
	return trimmed
}
