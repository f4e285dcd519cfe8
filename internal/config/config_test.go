package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultGoodreadsPath, cfg.GoodreadsPath)
	assert.Equal(t, DefaultStoryGraphPath, cfg.StoryGraphPath)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, "library_collection.json", cfg.Store.Path)
	assert.Equal(t, []string{"to-read"}, cfg.IgnoredTags)
	assert.Equal(t, InteractiveAuto, cfg.Interactive)
}

func TestLoad_StorePathFollowsBackend(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{backend: "json", want: "library_collection.json"},
		{backend: "YAML", want: "library_collection.yaml"},
		{backend: "sqlite", want: "library_collection.db"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(KeyStoreBackend, tt.backend)

			cfg, err := Load(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Store.Path)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "backend", key: KeyStoreBackend, value: "postgres"},
		{name: "interactive", key: KeyInteractive, value: "voice"},
		{name: "log format", key: KeyLogFormat, value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestNewViper_EnvAndFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("goodreads: from-file.csv\nstore:\n  backend: yaml\n"), 0o644))

	t.Setenv("SHELFMERGE_STORE_PATH", filepath.Join(dir, "books.yaml"))
	t.Setenv("SHELFMERGE_LOG_LEVEL", "debug")

	v, err := NewViper(file)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from-file.csv", cfg.GoodreadsPath)
	assert.Equal(t, BackendYAML, cfg.Store.Backend)
	assert.Equal(t, filepath.Join(dir, "books.yaml"), cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestNewViper_MissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
