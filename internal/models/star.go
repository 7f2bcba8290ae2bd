// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package models

import (
	"time"

	"github.com/google/uuid"
)

// Song is one row of the songs dimension. Immutable once loaded.
type Song struct {
	SongID   string  `json:"song_id"`
	Title    string  `json:"title"`
	ArtistID string  `json:"artist_id"`
	Year     int     `json:"year"`
	Duration float64 `json:"duration"`
}

// Artist is one row of the artists dimension. Immutable once loaded.
type Artist struct {
	ArtistID  string   `json:"artist_id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// User is one row of the users dimension.
// Level is the subscription tier ("free" or "paid") and is the only mutable
// column: a later log event for the same user overwrites it.
type User struct {
	UserID    int    `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Level     string `json:"level"`
}

// TimeRow is one row of the time dimension, keyed by the raw event
// timestamp. All calendar parts are derived in UTC.
type TimeRow struct {
	StartTime time.Time `json:"start_time"`
	Hour      int       `json:"hour"`
	Day       int       `json:"day"`
	Week      int       `json:"week"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Weekday   int       `json:"weekday"`
}

// SongPlay is one row of the songplays fact table. Append-only.
// SongID and ArtistID are nil when the play could not be matched to the
// song catalog (exact title/artist/duration lookup).
type SongPlay struct {
	SongplayID uuid.UUID `json:"songplay_id"`
	StartTime  time.Time `json:"start_time"`
	UserID     int       `json:"user_id"`
	Level      string    `json:"level"`
	SongID     *string   `json:"song_id"`
	ArtistID   *string   `json:"artist_id"`
	SessionID  int       `json:"session_id"`
	Location   string    `json:"location"`
	UserAgent  string    `json:"user_agent"`
}

// Matched reports whether the play was resolved against the song catalog.
func (p *SongPlay) Matched() bool {
	return p.SongID != nil && p.ArtistID != nil
}
