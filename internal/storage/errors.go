package storage

import "errors"

var (
	// ErrRunNotFound indicates a run ID with no directory or metadata.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrCorruptRun indicates run files that cannot be decoded.
	ErrCorruptRun = errors.New("storage: corrupt run data")
)
