// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

// Package transform derives star-schema rows from raw file records.
package transform

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/playmill/playmill/internal/models"
)

// Mapper converts raw records into dimension and fact rows.
type Mapper struct {
	// source tags the deterministic songplay IDs so they cannot collide
	// with IDs minted by a future ingestion path.
	source string
}

// NewMapper creates a new field mapper.
func NewMapper() *Mapper {
	return &Mapper{source: "playmill-etl"}
}

// ToSong extracts the songs-dimension row from a song-metadata record.
func (m *Mapper) ToSong(rec *models.SongRecord) models.Song {
	return models.Song{
		SongID:   rec.SongID,
		Title:    rec.Title,
		ArtistID: rec.ArtistID,
		Year:     rec.Year,
		Duration: rec.Duration,
	}
}

// ToArtist extracts the artists-dimension row from a song-metadata record.
func (m *Mapper) ToArtist(rec *models.SongRecord) models.Artist {
	return models.Artist{
		ArtistID:  rec.ArtistID,
		Name:      rec.ArtistName,
		Location:  rec.ArtistLocation,
		Latitude:  rec.ArtistLatitude,
		Longitude: rec.ArtistLongitude,
	}
}

// ValidateSongRecord checks that a song record carries the keys both
// dimension rows need. Records failing validation are skipped, matching
// the NULL-id filters the source data requires.
func (m *Mapper) ValidateSongRecord(rec *models.SongRecord) error {
	if rec.SongID == "" {
		return fmt.Errorf("missing song_id")
	}
	if rec.ArtistID == "" {
		return fmt.Errorf("missing artist_id")
	}
	return nil
}

// ValidateLogEvent checks that a play event carries a usable user ID and
// timestamp. Only events passing models.LogEvent.IsPlay are validated;
// other pages never reach the loader.
func (m *Mapper) ValidateLogEvent(ev *models.LogEvent) error {
	if _, err := parseUserID(ev.UserID); err != nil {
		return err
	}
	if ev.TS <= 0 {
		return fmt.Errorf("missing or invalid ts: %d", ev.TS)
	}
	return nil
}

// ToUser extracts the users-dimension row from a play event.
func (m *Mapper) ToUser(ev *models.LogEvent) (models.User, error) {
	userID, err := parseUserID(ev.UserID)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		UserID:    userID,
		FirstName: ev.FirstName,
		LastName:  ev.LastName,
		Gender:    ev.Gender,
		Level:     ev.Level,
	}, nil
}

// ToTimeRow decomposes the event's epoch-millisecond timestamp into its
// calendar parts. All parts are derived in UTC; week is the ISO week
// number and weekday follows Go's convention (Sunday=0).
func (m *Mapper) ToTimeRow(tsMillis int64) models.TimeRow {
	t := time.UnixMilli(tsMillis).UTC()
	_, week := t.ISOWeek()
	return models.TimeRow{
		StartTime: t,
		Hour:      t.Hour(),
		Day:       t.Day(),
		Week:      week,
		Month:     int(t.Month()),
		Year:      t.Year(),
		Weekday:   int(t.Weekday()),
	}
}

// ToSongPlay assembles the fact row for a play event. songID and artistID
// come from the catalog lookup and stay nil when the event had no exact
// (title, artist, duration) match.
func (m *Mapper) ToSongPlay(ev *models.LogEvent, songID, artistID *string) (models.SongPlay, error) {
	userID, err := parseUserID(ev.UserID)
	if err != nil {
		return models.SongPlay{}, err
	}
	return models.SongPlay{
		SongplayID: m.generateDeterministicID(ev, userID),
		StartTime:  time.UnixMilli(ev.TS).UTC(),
		UserID:     userID,
		Level:      ev.Level,
		SongID:     songID,
		ArtistID:   artistID,
		SessionID:  ev.SessionID,
		Location:   ev.Location,
		UserAgent:  ev.UserAgent,
	}, nil
}

// generateDeterministicID creates a deterministic UUID for a play event so
// re-running the import within one schema-reset cycle produces the same
// fact IDs instead of duplicate rows.
func (m *Mapper) generateDeterministicID(ev *models.LogEvent, userID int) uuid.UUID {
	input := fmt.Sprintf("%s:%d:%d:%d:%d", m.source, ev.SessionID, ev.ItemInSession, ev.TS, userID)
	hash := sha256.Sum256([]byte(input))

	// 16 bytes of input cannot fail
	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		return uuid.New()
	}

	id[6] = (id[6] & 0x0f) | 0x50 // Version 5
	id[8] = (id[8] & 0x3f) | 0x80 // Variant 10

	return id
}

// parseUserID converts the quoted userId from the logs into an integer.
// Anonymous sessions carry an empty userId and are invalid.
func parseUserID(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing userId")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid userId %q: %w", raw, err)
	}
	return id, nil
}
