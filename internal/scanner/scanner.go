// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package scanner discovers input files under a directory tree.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner finds files with a given extension under a root directory.
type Scanner struct {
	extension string
}

// New creates a scanner matching the given extension, e.g. ".json".
func New(extension string) *Scanner {
	return &Scanner{extension: extension}
}

// Scan walks root recursively and returns the matching file paths sorted
// lexicographically, so a run always processes files in the same order.
// A missing root is an error; a root with no matching files is not.
func (s *Scanner) Scan(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), s.extension) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}
