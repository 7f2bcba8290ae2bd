// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package config

import (
	"fmt"

	"github.com/playmill/playmill/internal/validation"
)

// Config is the root configuration for the playmill CLI.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Data     DataConfig     `koanf:"data"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig configures the DuckDB target store.
type DatabaseConfig struct {
	// Path is the DuckDB database file. Empty means in-memory, which is
	// only useful for tests since the loaded tables vanish on exit.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage, e.g. "2GB".
	MaxMemory string `koanf:"max_memory" validate:"required"`

	// Threads is the DuckDB thread count. 0 means runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`
}

// DataConfig configures the input directory trees.
type DataConfig struct {
	// SongDir is the root of the song-metadata tree.
	SongDir string `koanf:"song_dir" validate:"required"`

	// LogDir is the root of the activity-log tree.
	LogDir string `koanf:"log_dir" validate:"required"`

	// Extension is the file extension the scanner matches.
	Extension string `koanf:"extension" validate:"required,startswith=."`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
