// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the sync state of photosync: durable, append-only
// "local ID → remote ID" mappings that survive crashes and restarts.
//
// A [Store] keeps an in-memory index rebuilt from its journal on open and
// appends every accepted write to the journal before returning. Two modes
// share the same interface: [ModeSingle] maps a key to one value,
// [ModeMulti] maps a key to a set of values. Journals are either per-store
// text logs or tables of a shared SQLite database.
package store

import (
	"context"

	"github.com/MKhiriev/photosync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Mode selects the value semantics of a [Store].
type Mode int

const (
	// ModeSingle stores one value per key.
	ModeSingle Mode = iota
	// ModeMulti stores a set of values per key.
	ModeMulti
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// Store is a durable key→value index.
//
// Reads never touch the journal. Put is durable when it returns nil: the
// record has been appended and flushed to stable storage.
type Store interface {
	// Name returns the store name used in logs and as the SQLite partition.
	Name() string

	// Mode returns the value semantics chosen at construction.
	Mode() Mode

	// Get returns the value recorded for key. In ModeMulti it returns the
	// first value recorded for key.
	Get(key string) (string, bool)

	// Associated reports whether value is recorded for key.
	Associated(key, value string) bool

	// Put records value for key and flushes the journal.
	//
	// In ModeSingle every call appends a record; callers must not re-add
	// resolved keys. In ModeMulti a pair that is already recorded is not
	// written again.
	Put(ctx context.Context, key, value string) (models.MappingRecord, error)

	// Entries returns a copy of the index. Values keep recording order.
	Entries() map[string][]string

	// Len returns the number of distinct keys.
	Len() int

	// Close flushes and releases the journal. Calling Close more than once
	// is safe.
	Close() error
}

// journal is the durable backend of a Store.
type journal interface {
	// Replay calls fn for every persisted record in write order.
	Replay(ctx context.Context, fn func(key, value string)) error

	// Append persists one record and returns once it is on stable storage.
	Append(ctx context.Context, key, value string) error

	// Close releases the backend.
	Close() error
}
