// Playmill - Song Play ETL for Analytical Queries
// Copyright 2026 Playmill Authors
// SPDX-License-Identifier: MIT
// https://github.com/playmill/playmill

package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSongFile(t *testing.T) {
	rec, err := ParseSongFile(filepath.Join("testdata", "TRAABJL12903CDCF1A.json"))
	require.NoError(t, err)

	assert.Equal(t, "SOUPIRU12A6D4FA1E1", rec.SongID)
	assert.Equal(t, "Der Kleine Dompfaff", rec.Title)
	assert.Equal(t, "ARJIE2Y1187B994AB7", rec.ArtistID)
	assert.Equal(t, "Line Renaud", rec.ArtistName)
	assert.Equal(t, 0, rec.Year)
	assert.InDelta(t, 152.92036, rec.Duration, 1e-9)
	assert.Nil(t, rec.ArtistLatitude)
	assert.Nil(t, rec.ArtistLongitude)
}

func TestParseSongFileMissing(t *testing.T) {
	_, err := ParseSongFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseSongFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := ParseSongFile(path)
	assert.ErrorContains(t, err, "parse song file")
}

func TestParseLogFile(t *testing.T) {
	events, err := ParseLogFile(filepath.Join("testdata", "2018-11-12-events.json"))
	require.NoError(t, err)
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, "NextSong", first.Page)
	assert.Equal(t, "Pavement", first.Artist)
	assert.Equal(t, "Mercy:The Laundromat", first.Song)
	assert.Equal(t, int64(1541990258796), first.TS)
	assert.Equal(t, "10", first.UserID)
	assert.Equal(t, 345, first.SessionID)
	assert.InDelta(t, 99.16036, first.Length, 1e-9)

	// Non-play lines still parse; the transformer filters them.
	assert.Equal(t, "Home", events[1].Page)
	assert.Empty(t, events[1].Artist)

	assert.Equal(t, "paid", events[2].Level)
	assert.Equal(t, "15", events[2].UserID)
}

func TestParseLogFileSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := "\n" + `{"page":"Home","ts":1,"sessionId":1,"userId":"3"}` + "\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	events, err := ParseLogFile(path)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestParseLogFileMalformedLineAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := `{"page":"Home","ts":1,"sessionId":1,"userId":"3"}` + "\n{broken\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := ParseLogFile(path)
	assert.ErrorContains(t, err, "line 2")
}
