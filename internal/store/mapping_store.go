// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/photosync/internal/logger"
	"github.com/MKhiriev/photosync/models"
)

type mappingStore struct {
	name    string
	mode    Mode
	journal journal
	logger  *logger.Logger

	mu     sync.RWMutex
	idx    *index
	closed bool
}

// open builds a [Store] on top of j by replaying every persisted record into
// a fresh index. The journal is closed when replay fails.
func open(ctx context.Context, name string, mode Mode, j journal, log *logger.Logger) (Store, error) {
	s := &mappingStore{
		name:    name,
		mode:    mode,
		journal: j,
		logger:  log,
		idx:     newIndex(mode),
	}

	if err := j.Replay(ctx, func(key, value string) { s.idx.add(key, value) }); err != nil {
		_ = j.Close()
		return nil, fmt.Errorf("replay store %s: %w", name, err)
	}

	log.Debug().
		Str("store", name).
		Str("mode", mode.String()).
		Int("keys", s.idx.len()).
		Msg("sync store loaded")

	return s, nil
}

func (s *mappingStore) Name() string { return s.name }

func (s *mappingStore) Mode() Mode { return s.mode }

func (s *mappingStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.get(key)
}

func (s *mappingStore) Associated(key, value string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.has(key, value)
}

func (s *mappingStore) Put(ctx context.Context, key, value string) (models.MappingRecord, error) {
	rec := models.MappingRecord{Key: key, Value: value}
	if err := validateRecord(rec); err != nil {
		return rec, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return rec, ErrStoreClosed
	}

	if s.mode == ModeMulti && s.idx.has(key, value) {
		return rec, nil
	}

	if err := s.journal.Append(ctx, key, value); err != nil {
		return rec, fmt.Errorf("append to store %s: %w", s.name, err)
	}
	s.idx.add(key, value)

	return rec, nil
}

func (s *mappingStore) Entries() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.snapshot()
}

func (s *mappingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.len()
}

func (s *mappingStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.journal.Close(); err != nil {
		return fmt.Errorf("close store %s: %w", s.name, err)
	}
	return nil
}

func validateRecord(rec models.MappingRecord) error {
	for _, part := range []string{rec.Key, rec.Value} {
		if err := ValidateID(part); err != nil {
			return fmt.Errorf("%w in %q", err, rec.String())
		}
	}
	return nil
}

// ValidateID reports whether id can be persisted as the key or the value of
// a mapping record. An id must be non-empty, must not contain the separator
// or a line break, and must not start with "-> " or end with " ->": either
// would make "key -> value" readable two ways.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	case strings.Contains(id, models.MappingSeparator), strings.ContainsAny(id, "\r\n"):
		return fmt.Errorf("%w: %q", ErrInvalidRecord, id)
	case strings.HasPrefix(id, separatorTail), strings.HasSuffix(id, separatorHead):
		return fmt.Errorf("%w: %q is ambiguous next to the separator", ErrInvalidRecord, id)
	}
	return nil
}

var (
	separatorHead = strings.TrimSuffix(models.MappingSeparator, " ")
	separatorTail = strings.TrimPrefix(models.MappingSeparator, " ")
)
