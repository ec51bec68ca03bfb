package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissyi-gh/taskdeck/internal/notify"
)

// chdir moves into an empty directory so no stray .env is picked up.
func chdir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	chdir(t)
	path := filepath.Join(t.TempDir(), "taskdeck", "config.toml")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "all", cfg.DefaultStatus)

	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, notify.ProductionInterval, interval)

	d, err := cfg.Debounce()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestLoadOrCreateReadsFile(t *testing.T) {
	chdir(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path = "/tmp/tasks.db"
demo = true
default_priority = "high"
`), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tasks.db", cfg.DBPath)
	assert.Equal(t, "high", cfg.DefaultPriority)

	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, notify.DemoInterval, interval)
}

func TestEnvOverrides(t *testing.T) {
	chdir(t)
	require.NoError(t, os.WriteFile(".env", []byte("TASKDECK_SEARCH_DEBOUNCE=250ms\n"), 0o644))
	t.Setenv("TASKDECK_CHECK_INTERVAL", "45s")
	t.Setenv("TASKDECK_DB_PATH", "/tmp/env.db")
	t.Cleanup(func() { os.Unsetenv("TASKDECK_SEARCH_DEBOUNCE") })

	cfg, err := LoadOrCreate(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)

	interval, err := cfg.Interval()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, interval)

	d, err := cfg.Debounce()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)
}

func TestValidateRejectsBadValues(t *testing.T) {
	assert.Error(t, Config{CheckInterval: "soon"}.Validate())
	assert.Error(t, Config{SearchDebounce: "-1s"}.Validate())
	assert.Error(t, Config{DefaultStatus: "archived"}.Validate())
	assert.Error(t, Config{DefaultPriority: "urgent"}.Validate())
	assert.NoError(t, Config{}.Validate())
}
