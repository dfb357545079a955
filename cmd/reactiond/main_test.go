package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_MODE", "prod")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "reactions.db"))
}

func TestCLI_MigrateThenGet(t *testing.T) {
	sqliteEnv(t)

	_, err := runCLI(t, "migrate")
	require.NoError(t, err)

	out, err := runCLI(t, "get", "my-first-post")
	require.NoError(t, err)
	assert.JSONEq(t, `{"reactions":1}`, out)

	// segunda chamada lê o mesmo registro
	out, err = runCLI(t, "get", "my-first-post")
	require.NoError(t, err)
	assert.JSONEq(t, `{"reactions":1}`, out)
}

func TestCLI_GetWithoutMigrationIsStoreFault(t *testing.T) {
	sqliteEnv(t)

	_, err := runCLI(t, "get", "post")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store exists")
}

func TestCLI_MigrateRejectsMemoryBackend(t *testing.T) {
	t.Setenv("LOG_MODE", "prod")
	t.Setenv("STORE_BACKEND", "memory")

	_, err := runCLI(t, "migrate")
	assert.ErrorIs(t, err, errNotSQL)
}

func TestCLI_BadConfig(t *testing.T) {
	t.Setenv("STORE_BACKEND", "fauna")

	_, err := runCLI(t, "get", "post")
	assert.ErrorContains(t, err, "config error")
}

func TestCLI_GetRequiresSlug(t *testing.T) {
	_, err := runCLI(t, "get")
	assert.Error(t, err)
}
