// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package token turns document text into a stream of lowercased word terms.
//
// A term is a maximal run of Unicode letters, optionally containing an ASCII
// apostrophe as long as at least one letter has already been accumulated
// (so a leading apostrophe is never part of a term). Runs are flushed on any
// other character and lowercased with full Unicode case folding, which can
// expand a single input rune into multiple output runes (e.g. German ß).
package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Stats accumulates counters produced while lexing a document. Stats from
// independently lexed documents merge by plain addition: the zero value is
// the identity element and Merge is associative and commutative.
type Stats struct {
	// CharactersRead is every character consumed, including whitespace and
	// punctuation.
	CharactersRead int

	// CharactersIgnored is every character that was not folded into a term:
	// anything that is neither a letter nor a mid-term apostrophe.
	CharactersIgnored int

	// Lines is 1 for any non-empty input plus one per '\n' encountered.
	Lines int
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	s.CharactersRead += other.CharactersRead
	s.CharactersIgnored += other.CharactersIgnored
	s.Lines += other.Lines
}

// Emit is called once per term found in the input, in order, with a
// zero-based word ordinal that is stable for the life of the lex call.
type Emit func(term string, ordinal int)

// Lex scans text and invokes emit for every term it contains, returning the
// stats gathered along the way. Lexing a document is independent of any
// other document: the same text always yields the same terms, ordinals, and
// stats regardless of what else is being lexed concurrently.
func Lex(text string, emit Emit) Stats {
	var stats Stats
	if len(text) > 0 {
		stats.Lines = 1
	}

	var acc strings.Builder
	ordinal := 0

	flush := func() {
		if acc.Len() == 0 {
			return
		}
		term := folder.String(acc.String())
		acc.Reset()
		emit(term, ordinal)
		ordinal++
	}

	for _, ch := range text {
		stats.CharactersRead++

		if unicode.IsLetter(ch) || (ch == '\'' && acc.Len() > 0) {
			acc.WriteRune(ch)
			continue
		}

		stats.CharactersIgnored++
		if ch == '\n' {
			stats.Lines++
		}
		flush()
	}
	flush()

	return stats
}
