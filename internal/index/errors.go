// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package index

import "errors"

// Sentinel errors returned by the Query method of every TermIndex variant.
var (
	// ErrUnsupportedOperation is returned when an AST node uses a query
	// operator the variant cannot answer (e.g. Near against a doc-posting
	// index, or any positional operator against a bigram index beyond the
	// single Near(a,b,0,1) pattern it special-cases).
	ErrUnsupportedOperation = errors.New("index: unsupported query operation")

	// ErrNoKnownTerm is returned by the cluster-pruning index's Query when
	// none of the query's terms appear in the dictionary, leaving a
	// zero-magnitude query vector.
	ErrNoKnownTerm = errors.New("index: query contains no known term")

	// ErrNotPreprocessed is returned when Query is called on a
	// cluster-pruning index before Preprocess has built the leader set.
	ErrNotPreprocessed = errors.New("index: preprocess has not run")
)
