// Package config loads shelfmerge settings from flags, SHELFMERGE_* environment
// variables, a .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "SHELFMERGE"

	DefaultGoodreadsPath  = "goodreads_library_export.csv"
	DefaultStoryGraphPath = "storygraph_export.csv"
	DefaultStoreBase      = "library_collection"
)

// Store backends
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Interactive modes
const (
	InteractiveAuto   = "auto"
	InteractiveTUI    = "tui"
	InteractivePrompt = "prompt"
)

// Keys shared with the flag bindings
const (
	KeyGoodreads    = "goodreads"
	KeyStoryGraph   = "storygraph"
	KeyStoreBackend = "store.backend"
	KeyStorePath    = "store.path"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyIgnoredTags  = "ignored_tags"
	KeyInteractive  = "interactive"
)

type Config struct {
	GoodreadsPath  string
	StoryGraphPath string
	Store          StoreConfig
	Log            LogConfig
	IgnoredTags    []string
	Interactive    string
}

type StoreConfig struct {
	Backend string
	Path    string
}

type LogConfig struct {
	Level  string
	Format string
}

// NewViper prepares a viper instance: defaults, environment and, when present,
// the config file. cfgFile overrides the search in the user config directory.
func NewViper(cfgFile string) (*viper.Viper, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "shelfmerge"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// SetDefaults registers every default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGoodreads, DefaultGoodreadsPath)
	v.SetDefault(KeyStoryGraph, DefaultStoryGraphPath)
	v.SetDefault(KeyStoreBackend, BackendJSON)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "")
	v.SetDefault(KeyIgnoredTags, []string{"to-read"})
	v.SetDefault(KeyInteractive, InteractiveAuto)
}

// Load reads the settings out of v and validates them
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		GoodreadsPath:  v.GetString(KeyGoodreads),
		StoryGraphPath: v.GetString(KeyStoryGraph),
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString(KeyStoreBackend)),
			Path:    v.GetString(KeyStorePath),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		IgnoredTags: v.GetStringSlice(KeyIgnoredTags),
		Interactive: strings.ToLower(v.GetString(KeyInteractive)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath(cfg.Store.Backend)
	}
	return cfg, nil
}

// Validate rejects unknown backends and modes
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendJSON, BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("invalid %s %q: expected json, yaml or sqlite", KeyStoreBackend, c.Store.Backend)
	}

	switch c.Interactive {
	case InteractiveAuto, InteractiveTUI, InteractivePrompt:
	default:
		return fmt.Errorf("invalid %s %q: expected auto, tui or prompt", KeyInteractive, c.Interactive)
	}

	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid %s %q: expected console or json", KeyLogFormat, c.Log.Format)
	}
	return nil
}

// DefaultStorePath returns the collection file name used when none is configured
func DefaultStorePath(backend string) string {
	switch backend {
	case BackendYAML:
		return DefaultStoreBase + ".yaml"
	case BackendSQLite:
		return DefaultStoreBase + ".db"
	default:
		return DefaultStoreBase + ".json"
	}
}
