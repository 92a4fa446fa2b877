package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(dir, "cabinet.db"))
	t.Setenv("STORAGE_PATH", filepath.Join(dir, "storage"))
	t.Setenv("RULES_FILE", "")
	t.Setenv("CABINET_PIN", "3333")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMigrate(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated sqlite database")
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := setupEnv(t)
	file := filepath.Join(dir, "export.json")

	out, err := run(t, "export", "-o", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"payments\"")

	out, err = run(t, "import", "-i", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	out, err = run(t, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, ".json")
}

func TestImportRejectsBadFile(t *testing.T) {
	dir := setupEnv(t)
	file := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0644))

	_, err := run(t, "import", "-i", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid import file")
}

func TestWrongPinIsRejected(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "export", "--pin", "0000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot act as Finance")

	// flags persist on the package-level command
	require.NoError(t, rootCmd.PersistentFlags().Set("pin", ""))
}

func TestRules(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Rules version 2025.1")
	assert.Contains(t, out, "Jersey")
	assert.Contains(t, out, "35,000")

	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules.toml")
	require.NoError(t, os.WriteFile(rulesFile, []byte("colour = \"red\"\n"), 0644))
	t.Setenv("RULES_FILE", rulesFile)

	_, err = run(t, "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}
