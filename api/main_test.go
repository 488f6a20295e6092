package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLI(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CHUZONE_STORE_DRIVER", "file")
	t.Setenv("CHUZONE_STORE_FILE_PATH", filepath.Join(dir, "data.json"))
	t.Setenv("CHUZONE_LOG_LEVEL", "error")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatsOnSeededCatalog(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Produits Total: 3")
	assert.Contains(t, out, "Catégories: 3")
	assert.Contains(t, out, "Valeur Totale: 4077.00 €")
}

func TestAddAndList(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "", "add", "  Widget ", "19,99", "Tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget (Tools) 19.99 €")

	out, err = run(t, "", "list", "--category", "Tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Widget")
	assert.NotContains(t, out, "MacBook Pro M3")

	out, err = run(t, "", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Widget"), strings.Index(out, "MacBook Pro M3"), "newest first")
}

func TestAddRejectsBadPrice(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "", "add", "Widget", "abc", "Tools")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Price must be a number")

	out, err := run(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Produits Total: 3")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[y/N]")
	assert.Contains(t, out, "Cancelled")

	out, err = run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "MacBook Pro M3")

	out, err = run(t, "", "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1")

	out, err = run(t, "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "MacBook Pro M3")
	assert.Contains(t, out, "AirPods Pro")
}

func TestClearThenReloadReseeds(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "yes\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog cleared")

	// clear removes the stored key, so the next run starts from the demo data
	out, err = run(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Produits Total: 3")
}

func TestUnknownDriverFails(t *testing.T) {
	setupCLI(t)
	t.Setenv("CHUZONE_STORE_DRIVER", "etcd")

	_, err := run(t, "", "stats")
	assert.Error(t, err)
}
