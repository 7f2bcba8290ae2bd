// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package etl

import "time"

// RunStats holds counters for one ETL run. The pipeline is single-threaded,
// so the counters are plain fields.
type RunStats struct {
	// SongFiles and LogFiles are the matching files the scanner found.
	SongFiles int64
	LogFiles  int64

	// SongRecords and LogEvents are the raw records parsed.
	SongRecords int64
	LogEvents   int64

	// Filtered counts log events whose page was not NextSong.
	Filtered int64

	// Skipped counts records dropped by validation (missing ids,
	// unparseable userId, bad timestamp).
	Skipped int64

	// Rows loaded (or counted, in a dry run) per table.
	Songs     int64
	Artists   int64
	Users     int64
	TimeRows  int64
	SongPlays int64

	// Unmatched counts songplays loaded with NULL song/artist references
	// because the exact (title, artist, duration) lookup found nothing.
	Unmatched int64

	// StartTime is when the run started.
	StartTime time.Time

	// EndTime is when the run completed (zero if still running).
	EndTime time.Time

	// DryRun indicates the run parsed and transformed but loaded nothing.
	DryRun bool
}

// Duration returns the elapsed run time.
func (s *RunStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RecordsPerSecond returns the processing rate over raw records.
func (s *RunStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.SongRecords+s.LogEvents) / duration
}
