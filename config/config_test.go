package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/document"
	cltest "github.com/teranos/consentlens/internal/testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "models/artifacts", cfg.Models.Dir)
	assert.Equal(t, "*.json", cfg.Models.Pattern)
	assert.False(t, cfg.Models.Strict)
	assert.Equal(t, 5, cfg.Analysis.TopKFeatures)
	assert.Equal(t, 3, cfg.Analysis.MaxSupportingSentences)
	assert.Empty(t, cfg.Analysis.Scenarios)
	assert.Equal(t, 256, cfg.Explanation.CacheSize)
	assert.Equal(t, 320, cfg.Ingest.PreviewLength)
	assert.False(t, cfg.Log.JSON)
	assert.NoError(t, cfg.Validate())
}

func TestCascadePrecedence(t *testing.T) {
	dir := t.TempDir()
	user := cltest.WriteFile(t, dir, "user.toml", `
[models]
dir = "/user/models"
strict = true

[analysis]
top_k_features = 7
`)
	project := cltest.WriteFile(t, dir, "project.toml", `
[analysis]
top_k_features = 8
max_supporting_sentences = 2
`)

	v, sources, files, err := newViper([]configFile{
		{source: SourceUser, path: user},
		{source: SourceProject, path: project},
		{source: SourceSystem, path: filepath.Join(dir, "absent.toml")},
	})
	require.NoError(t, err)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "/user/models", cfg.Models.Dir)
	assert.True(t, cfg.Models.Strict)
	assert.Equal(t, 8, cfg.Analysis.TopKFeatures)
	assert.Equal(t, 2, cfg.Analysis.MaxSupportingSentences)
	assert.Equal(t, 256, cfg.Explanation.CacheSize)

	assert.Equal(t, []string{user, project}, files)
	assert.Equal(t, SourceInfo{Source: SourceProject, Path: project}, sources["analysis.top_k_features"])
	assert.Equal(t, SourceInfo{Source: SourceUser, Path: user}, sources["models.dir"])
}

func TestEnvironmentOverridesFiles(t *testing.T) {
	project := cltest.WriteFile(t, t.TempDir(), "consentlens.toml", "[models]\ndir = \"/from/file\"\n")
	t.Setenv("CONSENTLENS_MODELS_DIR", "/from/env")
	t.Setenv("CONSENTLENS_EXPLANATION_CACHE_SIZE", "64")

	v, _, _, err := newViper([]configFile{{source: SourceProject, path: project}})
	require.NoError(t, err)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Models.Dir)
	assert.Equal(t, 64, cfg.Explanation.CacheSize)
}

func TestExplicitFileMustExist(t *testing.T) {
	_, _, _, err := newViper([]configFile{{source: SourceExplicit, path: filepath.Join(t.TempDir(), "nope.toml"), required: true}})
	assert.Error(t, err)

	bad := cltest.WriteFile(t, t.TempDir(), "bad.toml", "this is = = not toml")
	_, _, _, err = newViper([]configFile{{source: SourceExplicit, path: bad, required: true}})
	assert.Error(t, err)

	// Optional layers that fail to parse are skipped.
	_, _, files, err := newViper([]configFile{{source: SourceUser, path: bad}})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestConfiguredScenarios(t *testing.T) {
	path := cltest.WriteFile(t, t.TempDir(), "consentlens.toml", `
[[analysis.scenarios]]
name = "mail_and_notes"
doc_types = ["email", "NOTES"]

[[analysis.scenarios]]
name = "cv"
doc_types = ["cv"]
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	scenarios, err := cfg.Scenarios()
	require.NoError(t, err)
	assert.Equal(t, []analysis.ScenarioDefinition{
		{Name: "mail_and_notes", DocTypes: []document.DocType{document.DocTypeEmail, document.DocTypeNotes}},
		{Name: "cv", DocTypes: []document.DocType{document.DocTypeCV}},
	}, scenarios)
}

func TestScenariosDefaultWhenEmpty(t *testing.T) {
	scenarios, err := Defaults().Scenarios()
	require.NoError(t, err)
	assert.Equal(t, analysis.DefaultScenarios(), scenarios)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"top_k at upper bound", func(c *Config) { c.Analysis.TopKFeatures = 10 }, false},
		{"top_k zero", func(c *Config) { c.Analysis.TopKFeatures = 0 }, true},
		{"top_k too large", func(c *Config) { c.Analysis.TopKFeatures = 11 }, true},
		{"sentences too large", func(c *Config) { c.Analysis.MaxSupportingSentences = 11 }, true},
		{"cache size zero", func(c *Config) { c.Explanation.CacheSize = 0 }, true},
		{"preview zero", func(c *Config) { c.Ingest.PreviewLength = 0 }, false},
		{"preview negative", func(c *Config) { c.Ingest.PreviewLength = -1 }, true},
		{"empty models dir", func(c *Config) { c.Models.Dir = "" }, true},
		{"empty pattern", func(c *Config) { c.Models.Pattern = "" }, true},
		{"unnamed scenario", func(c *Config) {
			c.Analysis.Scenarios = []ScenarioConfig{{DocTypes: []string{"cv"}}}
		}, true},
		{"unknown doc type", func(c *Config) {
			c.Analysis.Scenarios = []ScenarioConfig{{Name: "x", DocTypes: []string{"fax"}}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalysisOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Analysis.TopKFeatures = 4

	assert.Equal(t, analysis.Options{TopKFeatures: 4, MaxSupportingSentences: 3}, cfg.AnalysisOptions())
	assert.Len(t, cfg.EngineOptions(), 2)
}

func TestLoadWithExplicitFile(t *testing.T) {
	path := cltest.WriteFile(t, t.TempDir(), "explicit.toml", "[ingest]\npreview_length = 40\n")
	SetConfigFile(path)
	t.Cleanup(func() { SetConfigFile("") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Ingest.PreviewLength)
	assert.Contains(t, LoadedFiles(), path)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again)

	settings, err := Introspect()
	require.NoError(t, err)
	var found bool
	for _, s := range settings {
		if s.Key == "ingest.preview_length" {
			found = true
			assert.Equal(t, SourceExplicit, s.Source)
			assert.Equal(t, path, s.SourcePath)
		}
	}
	assert.True(t, found)

	statuses := Where()
	last := statuses[len(statuses)-1]
	assert.True(t, hasSource(statuses, SourceExplicit))
	assert.NotEmpty(t, last.Path)
}

func TestWriteFileRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consentlens.toml")
	cfg := Defaults()

	for i := 1; i <= 5; i++ {
		cfg.Ingest.PreviewLength = i
		require.NoError(t, WriteFile(path, cfg))
	}

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Ingest.PreviewLength)

	for _, suffix := range []string{".back1", ".back2", ".back3"} {
		assert.FileExists(t, path+suffix)
		assert.True(t, IsBackupFile(path+suffix))
	}
	_, err = os.Stat(path + ".back4")
	assert.True(t, os.IsNotExist(err))

	back1, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, 4, back1.Ingest.PreviewLength)
}

func TestMarshalFormats(t *testing.T) {
	cfg := Defaults()

	for _, format := range []string{"toml", "json", "yaml"} {
		data, err := Marshal(cfg, format)
		require.NoError(t, err, format)
		assert.Contains(t, string(data), "top_k_features", format)
	}

	_, err := Marshal(cfg, "ini")
	assert.Error(t, err)
}
