// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

/*
schema.go - Star Schema Management

Fact table:
  - songplays: one row per NextSong log event, append-only

Dimension tables:
  - songs, artists: from song-metadata files, first write wins
  - users: from log events, level is mutable (last write wins)
  - time: calendar breakdown keyed by the raw event timestamp

Referential integrity between songplays and the dimensions is maintained by
load order (dimensions before facts within each event), not by foreign key
constraints.
*/
package database

import (
	"context"
	"fmt"
)

// schemaTables lists the five tables in creation order.
var schemaTables = []string{"artists", "songs", "users", "time", "songplays"}

// isSchemaTable reports whether name is one of the five schema tables.
func isSchemaTable(name string) bool {
	for _, t := range schemaTables {
		if t == name {
			return true
		}
	}
	return false
}

// createTableQueries returns the CREATE TABLE statements in creation order.
func createTableQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS artists (
			artist_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			location TEXT,
			latitude DOUBLE,
			longitude DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS songs (
			song_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist_id TEXT NOT NULL,
			year INTEGER,
			duration DOUBLE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			gender TEXT,
			level TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time (
			start_time TIMESTAMP PRIMARY KEY,
			hour INTEGER NOT NULL,
			day INTEGER NOT NULL,
			week INTEGER NOT NULL,
			month INTEGER NOT NULL,
			year INTEGER NOT NULL,
			weekday INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS songplays (
			songplay_id UUID PRIMARY KEY,
			start_time TIMESTAMP NOT NULL,
			user_id INTEGER NOT NULL,
			level TEXT,
			song_id TEXT,
			artist_id TEXT,
			session_id INTEGER,
			location TEXT,
			user_agent TEXT
		)`,
	}
}

// CreateTables creates the five schema tables if they do not exist.
func (db *DB) CreateTables(ctx context.Context) error {
	for _, query := range createTableQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// DropTables drops the five schema tables if they exist, facts first.
func (db *DB) DropTables(ctx context.Context) error {
	for i := len(schemaTables) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", schemaTables[i])
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("drop table %s: %w", schemaTables[i], err)
		}
	}
	return nil
}

// Reset drops and recreates all five tables, returning the store to a
// clean slate before a run.
func (db *DB) Reset(ctx context.Context) error {
	if err := db.DropTables(ctx); err != nil {
		return err
	}
	return db.CreateTables(ctx)
}
