// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package persist implements the two on-disk forms of spec §4.5 (plain
// textual and variable-byte compressed with a front-coded dictionary) plus
// a BadgerDB-backed snapshot store for the latest build of an index.
package persist

import "errors"

var (
	// ErrTruncatedStream is returned when a compressed stream ends before
	// a complete dictionary or postings block has been read.
	ErrTruncatedStream = errors.New("persist: truncated stream")

	// ErrCorruptDictionary is returned when the front-coded dictionary
	// block cannot be parsed (e.g. a prefix length exceeds the previous
	// term's length).
	ErrCorruptDictionary = errors.New("persist: corrupt dictionary block")

	// ErrMalformedLine is returned by the textual-form reader when a line
	// doesn't match "term : docId(,docId)*".
	ErrMalformedLine = errors.New("persist: malformed textual line")
)
