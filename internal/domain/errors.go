package domain

import "errors"

var (
	// ErrStorageUnavailable means the durable store could not be opened or its
	// schema could not be ensured. Fatal at startup, never retried internally.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrFlushFailed means a triggered flush did not complete. The in-memory
	// state stays valid and authoritative; durability is at risk until the next
	// successful flush.
	ErrFlushFailed = errors.New("flush failed")

	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("user already exists")

	// ErrClosed is returned by every store operation after Close.
	ErrClosed = errors.New("store is closed")
)
