// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package models defines the raw file records and the star-schema rows
// shared across the pipeline.
//
// Raw shapes (records.go) mirror the JSON on disk: SongRecord for
// song-metadata files and LogEvent for newline-delimited activity logs.
// Star shapes (star.go) are the rows loaded into DuckDB: the songs,
// artists, users and time dimensions plus the songplays fact.
package models
