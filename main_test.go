package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("db_path = %q\nlog_path = %q\n",
		filepath.Join(dir, "tasks.db"), filepath.Join(dir, "taskdeck.log"))
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0o644))
	return cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { configPath = "" })
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTasks(t *testing.T) string {
	t.Helper()
	today := time.Now().Format("2006-01-02")
	doc := fmt.Sprintf(`tasks:
  - title: "Pay rent"
    description: "Transfer before the 1st"
    priority: high
    due_date: %q
  - title: "Return library books"
    description: "Three novels"
    priority: low
    due_date: "2020-01-01"
    completed: true
`, today)
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestImportListStats(t *testing.T) {
	cfg := setupConfig(t)

	out, err := execute(t, "import", writeTasks(t), "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 task(s).")

	out, err = execute(t, "list", "--status", "pending", "--priority", "all", "--search", "", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Pay rent")
	assert.NotContains(t, out, "Return library books")

	out, err = execute(t, "list", "--status", "all", "--priority", "all", "--search", "NOVELS", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Return library books")
	assert.NotContains(t, out, "Pay rent")

	out, err = execute(t, "stats", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "total 2 · completed 1 · pending 1 · overdue 0 · 50% done")
}

func TestListRejectsUnknownFilter(t *testing.T) {
	cfg := setupConfig(t)
	_, err := execute(t, "list", "--status", "archived", "--priority", "all", "--config", cfg)
	assert.Error(t, err)
}

func TestExportWritesFile(t *testing.T) {
	cfg := setupConfig(t)
	_, err := execute(t, "import", writeTasks(t), "--config", cfg)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out.yaml")
	out, err := execute(t, "export", dest, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 task(s)")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Pay rent")
	assert.Contains(t, string(data), "completed: true")
}

func TestRemindPrintsDigest(t *testing.T) {
	cfg := setupConfig(t)

	out, err := execute(t, "remind", "--to", "me@example.com", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks due today or tomorrow.")

	_, err = execute(t, "import", writeTasks(t), "--config", cfg)
	require.NoError(t, err)

	out, err = execute(t, "remind", "--to", "me@example.com", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "To: me@example.com")
	assert.Contains(t, out, "Subject: Task Reminder: 1 task(s) due soon")
	assert.Contains(t, out, "- Pay rent (high priority, due ")
}

func TestCommandsLogToFile(t *testing.T) {
	cfg := setupConfig(t)

	out, err := execute(t, "import", writeTasks(t), "--config", cfg)
	require.NoError(t, err)
	assert.NotContains(t, out, "[store]")

	data, err := os.ReadFile(filepath.Join(filepath.Dir(cfg), "taskdeck.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[store] added task")
}

func TestRootRejectsBadDefaultFilter(t *testing.T) {
	cfg := setupConfig(t)
	f, err := os.OpenFile(cfg, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("default_status = \"archived\"\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = execute(t, "--config", cfg)
	assert.ErrorContains(t, err, "archived")
}
