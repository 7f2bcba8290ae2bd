// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package etl wires the scanner, parser, transformer and store into the
// batch pipeline: song-metadata directory first, then the activity-log
// directory, one file at a time, one statement at a time.
//
// Errors are never caught or retried. A failure anywhere aborts the run and
// leaves whatever was already committed in place; only schema reset returns
// the store to a clean slate.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/playmill/playmill/internal/config"
	"github.com/playmill/playmill/internal/database"
	"github.com/playmill/playmill/internal/logging"
	"github.com/playmill/playmill/internal/models"
	"github.com/playmill/playmill/internal/parser"
	"github.com/playmill/playmill/internal/scanner"
	"github.com/playmill/playmill/internal/transform"
)

// Pipeline runs the ETL over the configured directory trees.
type Pipeline struct {
	cfg     *config.DataConfig
	db      *database.DB
	scanner *scanner.Scanner
	mapper  *transform.Mapper
	dryRun  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDryRun parses and transforms but skips all loads.
func WithDryRun(dryRun bool) Option {
	return func(p *Pipeline) { p.dryRun = dryRun }
}

// New creates a pipeline over the given data directories and store.
func New(cfg *config.DataConfig, db *database.DB, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		db:      db,
		scanner: scanner.New(cfg.Extension),
		mapper:  transform.NewMapper(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full ETL: song data first so the catalog exists before
// log events are matched against it, then log data.
func (p *Pipeline) Run(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{StartTime: time.Now(), DryRun: p.dryRun}
	defer func() { stats.EndTime = time.Now() }()

	if err := p.processSongData(ctx, stats); err != nil {
		return stats, err
	}
	if err := p.processLogData(ctx, stats); err != nil {
		return stats, err
	}

	logging.Info().
		Int64("song_files", stats.SongFiles).
		Int64("log_files", stats.LogFiles).
		Int64("songs", stats.Songs).
		Int64("artists", stats.Artists).
		Int64("users", stats.Users).
		Int64("time_rows", stats.TimeRows).
		Int64("songplays", stats.SongPlays).
		Int64("unmatched", stats.Unmatched).
		Int64("skipped", stats.Skipped).
		Bool("dry_run", stats.DryRun).
		Dur("duration", stats.Duration()).
		Msg("ETL run completed")

	return stats, nil
}

// processSongData loads the songs and artists dimensions.
func (p *Pipeline) processSongData(ctx context.Context, stats *RunStats) error {
	paths, err := p.scanner.Scan(p.cfg.SongDir)
	if err != nil {
		return fmt.Errorf("scan song data: %w", err)
	}
	stats.SongFiles = int64(len(paths))
	logging.Info().Int("files", len(paths)).Str("dir", p.cfg.SongDir).Msg("Processing song data")

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processSongFile(ctx, path, stats); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) processSongFile(ctx context.Context, path string, stats *RunStats) error {
	rec, err := parser.ParseSongFile(path)
	if err != nil {
		return err
	}
	stats.SongRecords++

	if err := p.mapper.ValidateSongRecord(rec); err != nil {
		stats.Skipped++
		logging.Debug().Err(err).Str("file", path).Msg("Skipping invalid song record")
		return nil
	}

	artist := p.mapper.ToArtist(rec)
	song := p.mapper.ToSong(rec)

	if !p.dryRun {
		// Artist first: the songs row carries its artist_id.
		if err := p.db.UpsertArtist(ctx, &artist); err != nil {
			return err
		}
		if err := p.db.UpsertSong(ctx, &song); err != nil {
			return err
		}
	}
	stats.Artists++
	stats.Songs++

	logging.Debug().Str("file", path).Str("song_id", song.SongID).Msg("Loaded song record")
	return nil
}

// processLogData loads the users and time dimensions and the songplays fact.
func (p *Pipeline) processLogData(ctx context.Context, stats *RunStats) error {
	paths, err := p.scanner.Scan(p.cfg.LogDir)
	if err != nil {
		return fmt.Errorf("scan log data: %w", err)
	}
	stats.LogFiles = int64(len(paths))
	logging.Info().Int("files", len(paths)).Str("dir", p.cfg.LogDir).Msg("Processing log data")

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processLogFile(ctx, path, stats); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) processLogFile(ctx context.Context, path string, stats *RunStats) error {
	events, err := parser.ParseLogFile(path)
	if err != nil {
		return err
	}
	stats.LogEvents += int64(len(events))

	loaded := 0
	for i := range events {
		ev := &events[i]
		if !ev.IsPlay() {
			stats.Filtered++
			continue
		}

		if err := p.mapper.ValidateLogEvent(ev); err != nil {
			stats.Skipped++
			logging.Debug().Err(err).Str("file", path).Msg("Skipping invalid log event")
			continue
		}

		if err := p.loadPlayEvent(ctx, ev, stats); err != nil {
			return err
		}
		loaded++
	}

	logging.Debug().Str("file", path).Int("events", len(events)).Int("plays", loaded).Msg("Processed log file")
	return nil
}

// loadPlayEvent loads one NextSong event: user and time dimensions first,
// then the fact row with its best-effort catalog references.
func (p *Pipeline) loadPlayEvent(ctx context.Context, ev *models.LogEvent, stats *RunStats) error {
	user, err := p.mapper.ToUser(ev)
	if err != nil {
		return err
	}
	timeRow := p.mapper.ToTimeRow(ev.TS)

	// The lookup is read-only, so it also runs in dry-run mode.
	songID, artistID, err := p.db.LookupSongArtist(ctx, ev.Song, ev.Artist, ev.Length)
	if err != nil {
		return err
	}

	play, err := p.mapper.ToSongPlay(ev, songID, artistID)
	if err != nil {
		return err
	}

	if !p.dryRun {
		if err := p.db.UpsertUser(ctx, &user); err != nil {
			return err
		}
		if err := p.db.UpsertTime(ctx, &timeRow); err != nil {
			return err
		}
		if err := p.db.InsertSongPlay(ctx, &play); err != nil {
			return err
		}
	}

	stats.Users++
	stats.TimeRows++
	stats.SongPlays++
	if !play.Matched() {
		stats.Unmatched++
	}
	return nil
}
