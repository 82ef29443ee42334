package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	configDirMode   = 0o755
	configFileMode  = 0o644
	tempFilePattern = ".config-*.toml.tmp"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindDuration
)

var knownKeys = map[string]valueKind{
	KeyWorkingDir:             kindString,
	KeyDisableAutomaticRevert: kindBool,
	KeyMergeCollection:        kindString,
	KeyLogLevel:               kindString,
	KeyBridgeURL:              kindString,
	KeyBridgeTimeout:          kindDuration,
	KeyBridgeTick:             kindDuration,
	KeyMigrationWorkers:       kindInt,
	KeyMigrationBackupDir:     kindString,
	KeyIndexTTL:               kindDuration,
}

var ErrUnknownKey = errors.New("unknown config key")

func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for key := range knownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set rewrites one key of the config file, keeping the others as they are.
func Set(path, key, raw string) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}

	value, err := parseValue(key, kind, raw)
	if err != nil {
		return err
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	if err := setNested(doc, strings.Split(key, "."), value); err != nil {
		return err
	}

	return writeDocument(path, doc)
}

// Encode renders the effective configuration as TOML.
func Encode(cfg Config) ([]byte, error) {
	doc := map[string]any{
		KeyWorkingDir:             cfg.WorkingDir,
		KeyDisableAutomaticRevert: cfg.DisableAutomaticRevert,
		KeyMergeCollection:        cfg.MergeCollection,
		"log": map[string]any{
			"level": cfg.LogLevel,
		},
		"bridge": map[string]any{
			"url":     cfg.Bridge.URL,
			"timeout": cfg.Bridge.Timeout.String(),
			"tick":    cfg.Bridge.Tick.String(),
		},
		"migration": map[string]any{
			"workers":    cfg.Migration.Workers,
			"backup_dir": cfg.Migration.BackupDir,
		},
		"index": map[string]any{
			"ttl": cfg.IndexTTL.String(),
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func parseValue(key string, kind valueKind, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)

	switch kind {
	case kindBool:
		value, err := strconv.ParseBool(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false, got %q", key, raw)
		}
		return value, nil
	case kindInt:
		value, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: expected an integer, got %q", key, raw)
		}
		if value < 1 {
			return nil, fmt.Errorf("%s: must be at least 1, got %d", key, value)
		}
		return int64(value), nil
	case kindDuration:
		value, err := time.ParseDuration(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: expected a duration like 5s, got %q", key, raw)
		}
		if value < 0 {
			return nil, fmt.Errorf("%s: must not be negative", key)
		}
		return value.String(), nil
	default:
		if key == KeyLogLevel {
			if _, err := log.ParseLevel(trimmed); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
		}
		return trimmed, nil
	}
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}
	return doc, nil
}

func setNested(doc map[string]any, path []string, value any) error {
	current := doc
	for i, part := range path[:len(path)-1] {
		next, ok := current[part]
		if !ok {
			table := map[string]any{}
			current[part] = table
			current = table
			continue
		}
		table, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("config key %q is not a table", strings.Join(path[:i+1], "."))
		}
		current = table
	}

	current[path[len(path)-1]] = value
	return nil
}

func writeDocument(path string, doc map[string]any) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
