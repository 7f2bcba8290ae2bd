// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
}

func TestScanFindsNestedFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "B", "b.json"))
	writeFile(t, filepath.Join(root, "A", "deep", "c.json"))
	writeFile(t, filepath.Join(root, "a.json"))
	writeFile(t, filepath.Join(root, "A", "ignore.txt"))

	paths, err := New(".json").Scan(root)
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "A", "deep", "c.json"),
		filepath.Join(root, "B", "b.json"),
		filepath.Join(root, "a.json"),
	}
	assert.Equal(t, want, paths)
}

func TestScanEmptyDirIsNotAnError(t *testing.T) {
	paths, err := New(".json").Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestScanMissingRootFails(t *testing.T) {
	_, err := New(".json").Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}

func TestScanMatchesExtensionCaseInsensitively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "upper.JSON"))

	paths, err := New(".json").Scan(root)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestScanIsDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.json", "m.json", "a.json"} {
		writeFile(t, filepath.Join(root, name))
	}

	first, err := New(".json").Scan(root)
	require.NoError(t, err)
	second, err := New(".json").Scan(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
