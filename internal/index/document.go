// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package index implements the inverted-index variants of spec §4.3:
// doc-posting, positional, bigram, segmented and TF-IDF cluster-pruning.
// Every variant implements add_term/query over the querylang AST; merge
// semantics for the parallel builder are documented per variant.
package index

import "sync"

// DocumentId is an opaque, densely-packed identifier assigned in
// registration order. It is stable for the life of the index that
// registered it.
type DocumentId uint32

// DocumentRegistry assigns DocumentIds to file paths in enumeration order
// and remembers the mapping so query results can be resolved back to a
// path. It is safe for concurrent use. The builder registers every document
// from one goroutine while enumerating files, before its workers start.
type DocumentRegistry struct {
	mu    sync.Mutex
	paths []string
}

// NewDocumentRegistry returns an empty registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{}
}

// Register allocates a fresh DocumentId for path and returns it.
func (r *DocumentRegistry) Register(path string) DocumentId {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := DocumentId(len(r.paths))
	r.paths = append(r.paths, path)
	return id
}

// Path returns the path registered for id, if any.
func (r *DocumentRegistry) Path(id DocumentId) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(id) < 0 || int(id) >= len(r.paths) {
		return "", false
	}
	return r.paths[id], true
}

// Count returns the number of documents registered so far.
func (r *DocumentRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// All returns every registered DocumentId in registration order.
func (r *DocumentRegistry) All() []DocumentId {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]DocumentId, len(r.paths))
	for i := range r.paths {
		ids[i] = DocumentId(i)
	}
	return ids
}
