package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendGit, cfg.Storage.Backend)
	assert.Equal(t, 5, cfg.Picker.CompactLines)
	assert.Equal(t, []string{"ctrl+p"}, cfg.Picker.Keys.Preview)
	assert.True(t, cfg.Picker.MatchTags)
	assert.True(t, cfg.Picker.MatchCode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `storage:
  backend: sqlite
picker:
  compact_lines: 8
  keys:
    delete: ["ctrl+x"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 8, cfg.Picker.CompactLines)
	assert.Equal(t, []string{"ctrl+x"}, cfg.Picker.Keys.Delete)
	assert.Equal(t, []string{"ctrl+p"}, cfg.Picker.Keys.Preview, "unset keys keep defaults")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "storage: [unclosed"},
		{"unknown backend", "storage:\n  backend: redis\n"},
		{"zero compact lines", "picker:\n  compact_lines: 0\n"},
		{"bad level", "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{
		"SNIPMAN_DATA_DIR":  "/tmp/snips",
		"SNIPMAN_BACKEND":   "sqlite",
		"SNIPMAN_LOG_LEVEL": "debug",
	}

	applyEnvOverrides(cfg, func(k string) string { return env[k] })

	assert.Equal(t, "/tmp/snips", cfg.Storage.Dir)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Picker.MatchCode = false
	cfg.Storage.Dir = "/data"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, loaded.Picker.MatchTags)
	assert.False(t, loaded.Picker.MatchCode, "explicit false survives defaults")
	assert.Equal(t, "/data", loaded.Storage.Dir)
}

func TestConfigDataDir(t *testing.T) {
	paths := Paths{DataDir: "/default"}
	cfg := DefaultConfig()
	assert.Equal(t, "/default", cfg.DataDir(paths))

	cfg.Storage.Dir = "/custom"
	assert.Equal(t, "/custom", cfg.DataDir(paths))
}

func TestConfigOpenRepository(t *testing.T) {
	cfg := DefaultConfig()

	repo, err := cfg.OpenRepository(t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &GitRepository{}, repo)

	cfg.Storage.Backend = BackendSQLite
	repo, err = cfg.OpenRepository(t.TempDir())
	require.NoError(t, err)
	require.IsType(t, &SQLiteRepository{}, repo)
	repo.(*SQLiteRepository).Close()
}
