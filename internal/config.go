package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendGit    = "git"
	BackendSQLite = "sqlite"
)

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir,omitempty"`
}

type KeysConfig struct {
	Quit    []string `yaml:"quit,omitempty"`
	Preview []string `yaml:"preview,omitempty"`
	Delete  []string `yaml:"delete,omitempty"`
}

type PickerConfig struct {
	CompactLines int        `yaml:"compact_lines"`
	MatchTags    bool       `yaml:"match_tags"`
	MatchCode    bool       `yaml:"match_code"`
	Keys         KeysConfig `yaml:"keys,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Picker  PickerConfig  `yaml:"picker"`
	Log     LogConfig     `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendGit},
		Picker: PickerConfig{
			CompactLines: 5,
			MatchTags:    true,
			MatchCode:    true,
			Keys: KeysConfig{
				Quit:    []string{"esc", "ctrl+c"},
				Preview: []string{"ctrl+p"},
				Delete:  []string{"ctrl+d"},
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads the YAML file at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
// SNIPMAN_DATA_DIR, SNIPMAN_BACKEND and SNIPMAN_LOG_LEVEL override the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("SNIPMAN_DATA_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := getenv("SNIPMAN_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := getenv("SNIPMAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendGit, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)", c.Storage.Backend, BackendGit, BackendSQLite)
	}
	if c.Picker.CompactLines < 1 {
		return fmt.Errorf("picker.compact_lines must be at least 1, got %d", c.Picker.CompactLines)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// DataDir returns the configured storage directory or the platform default.
func (c *Config) DataDir(paths Paths) string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return paths.DataDir
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// OpenRepository opens the configured storage backend in dir.
func (c *Config) OpenRepository(dir string) (SnippetRepository, error) {
	switch c.Storage.Backend {
	case BackendSQLite:
		return OpenSQLiteRepository(dir)
	default:
		return OpenGitRepository(dir)
	}
}
