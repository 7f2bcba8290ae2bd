// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package parser deserializes input files into raw records.
//
// Song-metadata files hold a single JSON object. Activity-log files are
// newline-delimited JSON, one event per line. Malformed JSON is not caught
// or retried; the error propagates and aborts the run.
package parser

import (
	"bufio"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/playmill/playmill/internal/models"
)

// maxLineSize bounds a single log line. The source logs stay well under
// 64KiB but user_agent strings make the bufio default too tight.
const maxLineSize = 1 << 20

// ParseSongFile reads one song-metadata file into a SongRecord.
func ParseSongFile(path string) (*models.SongRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read song file %s: %w", path, err)
	}

	rec := &models.SongRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("parse song file %s: %w", path, err)
	}
	return rec, nil
}

// ParseLogFile reads one newline-delimited activity-log file into its
// events, preserving line order. Blank lines are skipped.
func ParseLogFile(path string) ([]models.LogEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	defer f.Close()

	var events []models.LogEvent

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		var ev models.LogEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("parse log file %s line %d: %w", path, line, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log file %s: %w", path, err)
	}

	return events, nil
}
