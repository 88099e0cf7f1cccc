package model

import "errors"

// Sentinel errors shared by the stores and adapters. Callers classify a
// failure with errors.Is; the wrapped message carries the details.
var (
	// ErrIO is returned when a file cannot be opened, read or written.
	ErrIO = errors.New("i/o error")

	// ErrParse is returned when a document is malformed or lacks required nodes.
	ErrParse = errors.New("parse error")

	// ErrSerialization is returned when a document cannot be produced.
	ErrSerialization = errors.New("serialization error")

	// ErrVersionMismatch is returned when a file was written by an incompatible major version.
	ErrVersionMismatch = errors.New("incompatible version")

	// ErrImageLoad is returned when an image source cannot be fetched or decoded.
	ErrImageLoad = errors.New("image load error")

	// ErrResourceUnavailable is returned when a live reading is absent or out of range.
	ErrResourceUnavailable = errors.New("resource unavailable")
)
