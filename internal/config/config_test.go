package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("WCST_DB", "")
	t.Setenv("WCST_LOG_LEVEL", "")
	t.Setenv("WCST_SEED", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("WCST_DB", "")
	t.Setenv("WCST_LOG_LEVEL", "")
	t.Setenv("WCST_SEED", "")

	path := filepath.Join(t.TempDir(), "wcst.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database: /var/lib/wcst/sessions.db
logging:
  level: debug
  development: true
task:
  seed: 1234
  persist: false
practice:
  trials: 24
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/wcst/sessions.db", cfg.Database)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, int64(1234), cfg.Task.Seed)
	assert.False(t, cfg.Task.Persist)
	assert.Equal(t, 24, cfg.Practice.Trials)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("WCST_DB", "")
	t.Setenv("WCST_LOG_LEVEL", "")
	t.Setenv("WCST_SEED", "")

	path := filepath.Join(t.TempDir(), "wcst.yaml")
	require.NoError(t, os.WriteFile(path, []byte("practice:\n  trials: 12\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wcst.db", cfg.Database)
	assert.True(t, cfg.Task.Persist)
	assert.Equal(t, 12, cfg.Practice.Trials)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("WCST_DB", "")
	path := filepath.Join(t.TempDir(), "neg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("practice:\n  trials: -1\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("all overrides", func(t *testing.T) {
		t.Setenv("WCST_DB", "env.db")
		t.Setenv("WCST_LOG_LEVEL", "warn")
		t.Setenv("WCST_SEED", "99")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "env.db", cfg.Database)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, int64(99), cfg.Task.Seed)
	})

	t.Run("bad seed", func(t *testing.T) {
		t.Setenv("WCST_SEED", "not-a-number")
		cfg := DefaultConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("WCST_DB", "")
	t.Setenv("WCST_LOG_LEVEL", "")
	t.Setenv("WCST_SEED", "")

	path := filepath.Join(t.TempDir(), "nested", "wcst.yaml")
	cfg := DefaultConfig()
	cfg.Task.Seed = 7
	cfg.Practice.Trials = 30
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
