// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playmill/playmill/internal/models"
)

// UpsertSong inserts a songs-dimension row. Songs are immutable: a
// conflicting song_id leaves the existing row untouched.
func (db *DB) UpsertSong(ctx context.Context, song *models.Song) error {
	query := `INSERT INTO songs (song_id, title, artist_id, year, duration)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (song_id) DO NOTHING`

	_, err := db.conn.ExecContext(ctx, query,
		song.SongID, song.Title, song.ArtistID, song.Year, song.Duration)
	if err != nil {
		return fmt.Errorf("failed to insert song %s: %w", song.SongID, err)
	}
	return nil
}

// UpsertArtist inserts an artists-dimension row. Artists are immutable:
// a conflicting artist_id leaves the existing row untouched.
func (db *DB) UpsertArtist(ctx context.Context, artist *models.Artist) error {
	query := `INSERT INTO artists (artist_id, name, location, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (artist_id) DO NOTHING`

	_, err := db.conn.ExecContext(ctx, query,
		artist.ArtistID, artist.Name, artist.Location, artist.Latitude, artist.Longitude)
	if err != nil {
		return fmt.Errorf("failed to insert artist %s: %w", artist.ArtistID, err)
	}
	return nil
}

// UpsertUser inserts a users-dimension row. Level is the only mutable
// column: a later event for the same user overwrites it (last write wins).
func (db *DB) UpsertUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (user_id, first_name, last_name, gender, level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET level = EXCLUDED.level`

	_, err := db.conn.ExecContext(ctx, query,
		user.UserID, user.FirstName, user.LastName, user.Gender, user.Level)
	if err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", user.UserID, err)
	}
	return nil
}

// UpsertTime inserts a time-dimension row keyed by the raw timestamp.
// A timestamp observed twice leaves the existing row untouched.
func (db *DB) UpsertTime(ctx context.Context, row *models.TimeRow) error {
	query := `INSERT INTO time (start_time, hour, day, week, month, year, weekday)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (start_time) DO NOTHING`

	_, err := db.conn.ExecContext(ctx, query,
		row.StartTime, row.Hour, row.Day, row.Week, row.Month, row.Year, row.Weekday)
	if err != nil {
		return fmt.Errorf("failed to insert time row %s: %w", row.StartTime, err)
	}
	return nil
}

// InsertSongPlay appends a fact row. Songplay IDs are deterministic, so a
// re-run within one reset cycle hits the primary key and becomes a no-op
// instead of duplicating facts.
func (db *DB) InsertSongPlay(ctx context.Context, play *models.SongPlay) error {
	query := `INSERT INTO songplays (
			songplay_id, start_time, user_id, level,
			song_id, artist_id, session_id, location, user_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`

	_, err := db.conn.ExecContext(ctx, query,
		play.SongplayID, play.StartTime, play.UserID, play.Level,
		play.SongID, play.ArtistID, play.SessionID, play.Location, play.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to insert songplay %s: %w", play.SongplayID, err)
	}
	return nil
}

// LookupSongArtist resolves a play event against the song catalog by exact
// match on (song title, artist name, duration). Both IDs are nil when no
// row matches; the caller loads the fact with NULL references.
//
// Duration is compared with exact floating-point equality. Source timing
// that differs by any amount silently produces an unmatched play; this is
// a documented fragility of the match, not a bug to paper over here.
func (db *DB) LookupSongArtist(ctx context.Context, title, artistName string, duration float64) (songID, artistID *string, err error) {
	query := `SELECT s.song_id, a.artist_id
		FROM songs s
		JOIN artists a ON s.artist_id = a.artist_id
		WHERE s.title = ? AND a.name = ? AND s.duration = ?`

	var sid, aid string
	err = db.conn.QueryRowContext(ctx, query, title, artistName, duration).Scan(&sid, &aid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("lookup song %q by %q: %w", title, artistName, err)
	}
	return &sid, &aid, nil
}

// GetUserLevel returns the stored subscription level for a user.
func (db *DB) GetUserLevel(ctx context.Context, userID int) (string, error) {
	var level string
	err := db.conn.QueryRowContext(ctx,
		"SELECT level FROM users WHERE user_id = ?", userID).Scan(&level)
	if err != nil {
		return "", fmt.Errorf("get level for user %d: %w", userID, err)
	}
	return level, nil
}
