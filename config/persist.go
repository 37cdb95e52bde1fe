package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

// Marshal encodes cfg as toml, json or yaml.
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "toml":
		return toml.Marshal(cfg)
	case "json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config")
		}
		return buf.Bytes(), nil
	case "yaml":
		return yaml.Marshal(cfg)
	default:
		return nil, errors.NewInvalidRequestError("unknown config format %q (want toml, json or yaml)", format)
	}
}

// WriteFile writes cfg as TOML to path, rotating up to three backups of an existing file.
func WriteFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// backupGenerations is how many rotated copies WriteFile keeps.
const backupGenerations = 3

func backupPath(path string, generation int) string {
	return fmt.Sprintf("%s.back%d", path, generation)
}

// createBackup shifts .backN to .backN+1, dropping the oldest, and copies the current file to .back1.
func createBackup(configPath string) error {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	oldest := backupPath(configPath, backupGenerations)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", logger.FieldFile, oldest, logger.FieldError, err)
	}
	for gen := backupGenerations - 1; gen >= 1; gen-- {
		from := backupPath(configPath, gen)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, backupPath(configPath, gen+1)); err != nil {
			return errors.Wrapf(err, "failed to rotate %s", filepath.Base(from))
		}
	}

	if err := os.WriteFile(backupPath(configPath, 1), content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// IsBackupFile reports whether path is a rotated config backup.
func IsBackupFile(path string) bool {
	ext := filepath.Ext(path)
	for gen := 1; gen <= backupGenerations; gen++ {
		if ext == fmt.Sprintf(".back%d", gen) {
			return true
		}
	}
	return false
}
