package store

import "errors"

// Sentinel errors returned by stores. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrStoreUnreadable is returned by Open when the backing file or
	// database exists but cannot be read.
	ErrStoreUnreadable = errors.New("sync store is unreadable")

	// ErrStoreUnwritable is returned when a record cannot be appended or
	// flushed.
	ErrStoreUnwritable = errors.New("sync store is unwritable")

	// ErrInvalidRecord is returned by Put and [ValidateID] when a key or value
	// cannot be written as one unambiguous mapping line.
	ErrInvalidRecord = errors.New("invalid mapping record")

	// ErrStoreClosed is returned by Put after Close.
	ErrStoreClosed = errors.New("sync store is closed")

	// ErrUnknownDriver is returned when the storage driver is not supported.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
