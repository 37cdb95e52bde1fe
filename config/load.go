package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

// EnvPrefix prefixes every environment override, e.g. CONSENTLENS_MODELS_DIR.
const EnvPrefix = "CONSENTLENS"

// ProjectFileName is searched for from the working directory upwards.
const ProjectFileName = "consentlens.toml"

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	explicitPath  string
	loadedFiles   []string

	// ConfigSources records which file last set each key during loading.
	ConfigSources = map[string]SourceInfo{}
)

// configFile is one layer of the cascade.
type configFile struct {
	source   ConfigSource
	path     string
	required bool
}

// SetConfigFile adds an explicit config file above the cascade and clears the cache.
func SetConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitPath = path
	resetLocked()
}

// Load reads the configuration, caching the result until Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViperLocked()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	mu.Lock()
	defer mu.Unlock()
	return initViperLocked()
}

// LoadWithViper decodes configuration from a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads defaults plus a single config file, ignoring the cascade and environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// Reset clears the cached configuration so the next Load re-reads every layer.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

func resetLocked() {
	globalConfig = nil
	viperInstance = nil
	loadedFiles = nil
	ConfigSources = map[string]SourceInfo{}
}

// LoadedFiles returns the config files merged by the last load, lowest precedence first.
func LoadedFiles() []string {
	mu.Lock()
	defer mu.Unlock()
	return append([]string(nil), loadedFiles...)
}

func initViperLocked() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v, sources, files, err := newViper(candidateFiles(explicitPath))
	if err != nil {
		return nil, err
	}
	viperInstance = v
	ConfigSources = sources
	loadedFiles = files
	return v, nil
}

// newViper builds a Viper with defaults, the given files merged in order, and env binding.
func newViper(files []configFile) (*viper.Viper, map[string]SourceInfo, []string, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	sources := make(map[string]SourceInfo)
	var merged []string
	for _, f := range files {
		if _, err := os.Stat(f.path); err != nil {
			if f.required {
				return nil, nil, nil, errors.Wrapf(err, "config file %s", f.path)
			}
			continue
		}

		layer := viper.New()
		layer.SetConfigFile(f.path)
		layer.SetConfigType("toml")
		if err := layer.ReadInConfig(); err != nil {
			if f.required {
				return nil, nil, nil, errors.Wrapf(err, "failed to read config file %s", f.path)
			}
			logger.Warnw("Ignoring unreadable config file", logger.FieldFile, f.path, logger.FieldError, err)
			continue
		}

		if err := v.MergeConfigMap(layer.AllSettings()); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "failed to merge config file %s", f.path)
		}
		for _, key := range layer.AllKeys() {
			sources[key] = SourceInfo{Source: f.source, Path: f.path}
		}
		merged = append(merged, f.path)
		logger.Debugw("Merged config file", logger.FieldFile, f.path, "source", f.source)
	}
	return v, sources, merged, nil
}

// candidateFiles lists the cascade, lowest precedence first.
func candidateFiles(explicit string) []configFile {
	files := []configFile{{source: SourceSystem, path: "/etc/consentlens/config.toml"}}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, configFile{source: SourceUser, path: filepath.Join(home, ".consentlens", "config.toml")})
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, configFile{source: SourceProject, path: project})
	}
	if explicit != "" {
		files = append(files, configFile{source: SourceExplicit, path: explicit, required: true})
	}
	return files
}

// findProjectConfig walks up from the working directory looking for consentlens.toml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
