// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/models"
)

func openTestFileStore(t *testing.T, path string, mode Mode) Store {
	t.Helper()
	return openTestFileStoreWithLogger(t, path, mode, logger.Nop())
}

func openTestFileStoreWithLogger(t *testing.T, path string, mode Mode, log *logger.Logger) Store {
	t.Helper()
	j, err := openFileJournal(path, log)
	require.NoError(t, err)

	st, err := open(context.Background(), "test", mode, j, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// ── single mode ──────────────────────────────────────────────────────────────

func TestFileStore_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "uploaded-photo-ids-map.txt")

	st := openTestFileStore(t, path, ModeSingle)

	assert.FileExists(t, path)
	assert.Zero(t, st.Len())
	_, ok := st.Get("anything")
	assert.False(t, ok)
}

func TestFileStore_PutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	st := openTestFileStore(t, path, ModeSingle)

	rec, err := st.Put(context.Background(), "101", "5550001")
	require.NoError(t, err)
	assert.Equal(t, models.MappingRecord{Key: "101", Value: "5550001"}, rec)
	assert.Equal(t, "101 -> 5550001", rec.String())

	v, ok := st.Get("101")
	require.True(t, ok)
	assert.Equal(t, "5550001", v)
	assert.True(t, st.Associated("101", "5550001"))
	assert.False(t, st.Associated("101", "other"))

	assert.Equal(t, []string{"101 -> 5550001"}, readLines(t, path))
}

// TestFileStore_SurvivesReopen checks resumability: a committed record is
// visible after the store is closed and opened again.
func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	ctx := context.Background()

	j, err := openFileJournal(path, logger.Nop())
	require.NoError(t, err)
	first, err := open(ctx, "test", ModeSingle, j, logger.Nop())
	require.NoError(t, err)

	_, err = first.Put(ctx, "a", "1")
	require.NoError(t, err)
	_, err = first.Put(ctx, "b", "2")
	require.NoError(t, err)
	// no Close: the record must already be on disk

	second := openTestFileStore(t, path, ModeSingle)
	assert.Equal(t, map[string][]string{"a": {"1"}, "b": {"2"}}, second.Entries())
	require.NoError(t, first.Close())
}

func TestFileStore_SingleModeLastLineWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte("a -> 1\na -> 2\n"), 0o600))

	st := openTestFileStore(t, path, ModeSingle)

	v, ok := st.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, st.Len())
}

func TestFileStore_SkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	content := strings.Join([]string{
		"a -> 1",
		"garbage without separator",
		" -> missing key",
		"missing value -> ",
		"",
		"x -> y -> z",
		"b -> 2\r",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	st := openTestFileStoreWithLogger(t, path, ModeSingle, log)

	assert.Equal(t, map[string][]string{"a": {"1"}, "b": {"2"}}, st.Entries())
	assert.Equal(t, 4, strings.Count(buf.String(), "skipping corrupt sync store line"))
}

func TestFileStore_TerminatesUnfinishedLastLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	require.NoError(t, os.WriteFile(path, []byte("a -> 1"), 0o600))

	st := openTestFileStore(t, path, ModeSingle)
	_, err := st.Put(context.Background(), "b", "2")
	require.NoError(t, err)

	assert.Equal(t, []string{"a -> 1", "b -> 2"}, readLines(t, path))
}

func TestFileStore_RejectsInvalidRecords(t *testing.T) {
	st := openTestFileStore(t, filepath.Join(t.TempDir(), "map.txt"), ModeSingle)
	ctx := context.Background()

	tests := []struct {
		name       string
		key, value string
	}{
		{name: "empty key", key: "", value: "1"},
		{name: "empty value", key: "a", value: ""},
		{name: "separator in key", key: "a -> b", value: "1"},
		{name: "separator in value", key: "a", value: "1 -> 2"},
		{name: "newline", key: "a", value: "1\n2"},
		{name: "carriage return", key: "a\r", value: "1"},
		{name: "key ends with arrow", key: "k ->", value: "v"},
		{name: "value starts with arrow", key: "k", value: "-> v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.Put(ctx, tt.key, tt.value)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
	assert.Zero(t, st.Len())
}

func TestFileStore_RecordsNextToSeparatorSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	ctx := context.Background()

	st := openTestFileStore(t, path, ModeSingle)
	for _, rec := range []models.MappingRecord{
		{Key: "k -", Value: "> v"},
		{Key: "k>", Value: "-v"},
		{Key: "a b", Value: "c d"},
	} {
		_, err := st.Put(ctx, rec.Key, rec.Value)
		require.NoError(t, err)
	}
	_, err := st.Put(ctx, "k ->", "v")
	require.ErrorIs(t, err, ErrInvalidRecord)
	_, err = st.Put(ctx, "k", "-> v")
	require.ErrorIs(t, err, ErrInvalidRecord)
	want := st.Entries()
	require.NoError(t, st.Close())

	reopened := openTestFileStore(t, path, ModeSingle)
	assert.Equal(t, want, reopened.Entries())
	_, ok := reopened.Get("k")
	assert.False(t, ok)
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{id: "12345", valid: true},
		{id: "IMG 0001", valid: true},
		{id: "a->b", valid: true},
		{id: "k -", valid: true},
		{id: "", valid: false},
		{id: "a -> b", valid: false},
		{id: "k ->", valid: false},
		{id: "-> v", valid: false},
		{id: "line\nbreak", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidRecord)
			}
		})
	}
}

func TestFileStore_PutAfterClose(t *testing.T) {
	st := openTestFileStore(t, filepath.Join(t.TempDir(), "map.txt"), ModeSingle)
	require.NoError(t, st.Close())
	require.NoError(t, st.Close(), "second Close must be a no-op")

	_, err := st.Put(context.Background(), "a", "1")
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestFileStore_UnreadablePath(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be opened as a journal file
	_, err := openFileJournal(dir, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnreadable)
}

// ── multi mode ───────────────────────────────────────────────────────────────

func TestFileStore_MultiMode_Associated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	st := openTestFileStore(t, path, ModeMulti)
	ctx := context.Background()

	_, err := st.Put(ctx, "photo-1", "album-1")
	require.NoError(t, err)
	_, err = st.Put(ctx, "photo-1", "album-2")
	require.NoError(t, err)

	assert.True(t, st.Associated("photo-1", "album-1"))
	assert.True(t, st.Associated("photo-1", "album-2"))
	assert.False(t, st.Associated("photo-1", "album-3"))
	assert.False(t, st.Associated("photo-2", "album-1"))

	first, ok := st.Get("photo-1")
	require.True(t, ok)
	assert.Equal(t, "album-1", first)
	assert.Equal(t, map[string][]string{"photo-1": {"album-1", "album-2"}}, st.Entries())
}

// TestFileStore_MultiMode_DeduplicatesWrites verifies that re-adding a known
// pair does not grow the log.
func TestFileStore_MultiMode_DeduplicatesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	st := openTestFileStore(t, path, ModeMulti)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, err := st.Put(ctx, "photo-1", "album-1")
		require.NoError(t, err)
		assert.Equal(t, "photo-1 -> album-1", rec.String())
	}

	assert.Equal(t, []string{"photo-1 -> album-1"}, readLines(t, path))
}

func TestFileStore_MultiMode_ReplaysDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.txt")
	require.NoError(t, os.WriteFile(path, []byte("p -> a\np -> a\np -> b\n"), 0o600))

	st := openTestFileStore(t, path, ModeMulti)
	assert.Equal(t, map[string][]string{"p": {"a", "b"}}, st.Entries())
}

func TestEntries_ReturnsCopy(t *testing.T) {
	st := openTestFileStore(t, filepath.Join(t.TempDir(), "map.txt"), ModeSingle)
	_, err := st.Put(context.Background(), "a", "1")
	require.NoError(t, err)

	entries := st.Entries()
	entries["a"][0] = "mutated"
	entries["b"] = []string{"2"}

	v, _ := st.Get("a")
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, st.Len())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "single", ModeSingle.String())
	assert.Equal(t, "multi", ModeMulti.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
