// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package database wraps the DuckDB connection and provides the schema and
// row-level operations for the star schema: the songs, artists, users and
// time dimensions plus the songplays fact table.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/playmill/playmill/internal/config"
	"github.com/playmill/playmill/internal/logging"
)

// DB wraps the DuckDB connection. It is passed explicitly to every
// component that needs the store; there is no package-level singleton, so
// tests can substitute an in-memory database.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the DuckDB database described by cfg.
// An empty path opens an in-memory database (used by tests).
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	connStr := ""
	if cfg.Path != "" {
		// Ensure the parent directory exists for file-backed databases.
		// 0750 per gosec G301.
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
		connStr = fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
			cfg.Path, numThreads, cfg.MaxMemory)
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The pipeline is single-threaded over a single connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{conn: conn, cfg: cfg}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the underlying connection for ad hoc queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// CountRows returns the row count of one of the five schema tables.
func (db *DB) CountRows(ctx context.Context, table string) (int64, error) {
	if !isSchemaTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var count int64
	// table name is validated against the schema table list above
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table) //nolint:gosec
	if err := db.conn.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing database connection")
	}
}
