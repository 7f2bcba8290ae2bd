// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package models

// SongRecord is one song-metadata file as it appears on disk.
// Each file holds exactly one JSON object describing a song and its artist.
type SongRecord struct {
	NumSongs        int      `json:"num_songs"`
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	Year            int      `json:"year"`
	Duration        float64  `json:"duration"`
	ArtistID        string   `json:"artist_id"`
	ArtistName      string   `json:"artist_name"`
	ArtistLocation  string   `json:"artist_location"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
}

// LogEvent is one line of a newline-delimited activity log file.
//
// UserID is kept as a string because the source logs quote it ("88") and
// leave it empty for anonymous sessions; conversion happens in the
// transformer where an empty value marks the event invalid.
type LogEvent struct {
	Artist        string  `json:"artist"`
	Auth          string  `json:"auth"`
	FirstName     string  `json:"firstName"`
	Gender        string  `json:"gender"`
	ItemInSession int     `json:"itemInSession"`
	LastName      string  `json:"lastName"`
	Length        float64 `json:"length"`
	Level         string  `json:"level"`
	Location      string  `json:"location"`
	Method        string  `json:"method"`
	Page          string  `json:"page"`
	Registration  float64 `json:"registration"`
	SessionID     int     `json:"sessionId"`
	Song          string  `json:"song"`
	Status        int     `json:"status"`
	TS            int64   `json:"ts"`
	UserAgent     string  `json:"userAgent"`
	UserID        string  `json:"userId"`
}

// PageNextSong is the page value that marks a play event.
// Only log lines with this page produce songplay facts.
const PageNextSong = "NextSong"

// IsPlay reports whether the event is a song-play page view.
func (e *LogEvent) IsPlay() bool {
	return e.Page == PageNextSong
}
