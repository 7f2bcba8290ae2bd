// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ".json", cfg.Data.Extension)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "1GB", cfg.Database.MaxMemory)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty song dir", func(c *Config) { c.Data.SongDir = "" }},
		{"empty log dir", func(c *Config) { c.Data.LogDir = "" }},
		{"extension without dot", func(c *Config) { c.Data.Extension = "json" }},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"DUCKDB_MAX_MEMORY", "database.max_memory"},
		{"SONG_DATA_DIR", "data.song_dir"},
		{"LOG_DATA_DIR", "data.log_dir"},
		{"LOG_LEVEL", "logging.level"},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransformFunc(tt.env), "env %s", tt.env)
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "playmill.yaml")
	yaml := `
database:
  path: /tmp/test.duckdb
data:
  song_dir: /data/songs
  log_dir: /data/logs
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))

	t.Setenv(ConfigPathEnvVar, cfgPath)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	// File overrides defaults.
	assert.Equal(t, "/tmp/test.duckdb", cfg.Database.Path)
	assert.Equal(t, "/data/songs", cfg.Data.SongDir)
	// Env overrides file and defaults.
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched values keep defaults.
	assert.Equal(t, ".json", cfg.Data.Extension)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "playmill.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  extension: json\n"), 0o600))

	t.Setenv(ConfigPathEnvVar, cfgPath)

	_, err := Load()
	assert.Error(t, err)
}
