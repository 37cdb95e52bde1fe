package config

import (
	"os"
	"sort"
	"strings"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/consentlens/config.toml
	SourceUser        ConfigSource = "user"        // ~/.consentlens/config.toml
	SourceProject     ConfigSource = "project"     // nearest consentlens.toml
	SourceExplicit    ConfigSource = "explicit"    // --config
	SourceEnvironment ConfigSource = "environment" // CONSENTLENS_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource `json:"source" yaml:"source"`
	Path   string       `json:"path" yaml:"path"` // file path or env var name
}

// SettingInfo is one effective setting and its origin.
type SettingInfo struct {
	Key        string       `json:"key" yaml:"key"`
	Value      interface{}  `json:"value" yaml:"value"`
	Source     ConfigSource `json:"source" yaml:"source"`
	SourcePath string       `json:"source_path,omitempty" yaml:"source_path,omitempty"`
}

// FileStatus reports whether a cascade file exists.
type FileStatus struct {
	Source ConfigSource `json:"source" yaml:"source"`
	Path   string       `json:"path" yaml:"path"`
	Exists bool         `json:"exists" yaml:"exists"`
}

// Where lists every file the cascade consults, lowest precedence first.
func Where() []FileStatus {
	mu.Lock()
	explicit := explicitPath
	mu.Unlock()

	var out []FileStatus
	for _, f := range candidateFiles(explicit) {
		_, err := os.Stat(f.path)
		out = append(out, FileStatus{Source: f.source, Path: f.path, Exists: err == nil})
	}
	if !hasSource(out, SourceProject) {
		out = append(out, FileStatus{Source: SourceProject, Path: ProjectFileName})
	}
	return out
}

func hasSource(files []FileStatus, source ConfigSource) bool {
	for _, f := range files {
		if f.Source == source {
			return true
		}
	}
	return false
}

// Introspect returns every effective setting with the layer that set it.
func Introspect() ([]SettingInfo, error) {
	v, err := GetViper()
	if err != nil {
		return nil, err
	}
	mu.Lock()
	sources := make(map[string]SourceInfo, len(ConfigSources))
	for k, s := range ConfigSources {
		sources[k] = s
	}
	mu.Unlock()

	keys := v.AllKeys()
	sort.Strings(keys)

	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sources[key]; ok {
			info = si
		}
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(envKey); ok {
			info = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}
		settings = append(settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     info.Source,
			SourcePath: info.Path,
		})
	}
	return settings, nil
}
