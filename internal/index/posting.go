// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package index

import (
	"sort"

	"github.com/rchuk/goir/internal/querylang"
)

// DocSet is a set of DocumentIds.
type DocSet map[DocumentId]struct{}

func newDocSet(ids ...DocumentId) DocSet {
	s := make(DocSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s DocSet) clone() DocSet {
	out := make(DocSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

func unionSet(a, b DocSet) DocSet {
	out := make(DocSet, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}

func intersectSet(a, b DocSet) DocSet {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(DocSet)
	for id := range small {
		if _, ok := big[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

func differenceSet(a, b DocSet) DocSet {
	out := make(DocSet, len(a))
	for id := range a {
		if _, ok := b[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// PostingIndex is the doc-posting variant of spec §4.3.1: a term maps to
// the set of documents it occurs in, with no positional information.
type PostingIndex struct {
	terms    map[string]DocSet
	universe DocSet
}

// NewPostingIndex returns an empty PostingIndex.
func NewPostingIndex() *PostingIndex {
	return &PostingIndex{terms: make(map[string]DocSet), universe: make(DocSet)}
}

// AddTerm records that term occurs in doc.
func (idx *PostingIndex) AddTerm(term string, doc DocumentId) {
	set, ok := idx.terms[term]
	if !ok {
		set = make(DocSet)
		idx.terms[term] = set
	}
	set[doc] = struct{}{}
	idx.universe[doc] = struct{}{}
}

// Merge absorbs other into idx, unioning per-term document sets. It is
// associative and commutative per the §4.6 merge contract.
func (idx *PostingIndex) Merge(other *PostingIndex) {
	for term, set := range other.terms {
		existing, ok := idx.terms[term]
		if !ok {
			idx.terms[term] = set
			continue
		}
		idx.terms[term] = unionSet(existing, set)
	}
	idx.universe = unionSet(idx.universe, other.universe)
}

// Terms returns a snapshot of the index's postings as term -> document id
// list, each list sorted ascending. The returned map has no term order;
// internal/persist sorts the terms byte-lexicographically when it writes
// them (spec §4.5).
func (idx *PostingIndex) Terms() map[string][]DocumentId {
	out := make(map[string][]DocumentId, len(idx.terms))
	for term, set := range idx.terms {
		ids := make([]DocumentId, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sortDocumentIds(ids)
		out[term] = ids
	}
	return out
}

// FromTerms rebuilds a PostingIndex from a term -> document id list
// mapping, as produced by Terms or read back from persistence.
func FromTerms(terms map[string][]DocumentId) *PostingIndex {
	idx := NewPostingIndex()
	for term, ids := range terms {
		for _, id := range ids {
			idx.AddTerm(term, id)
		}
	}
	return idx
}

func sortDocumentIds(ids []DocumentId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// Query evaluates a querylang AST against the index and returns the
// matching document set.
func (idx *PostingIndex) Query(node *querylang.Node) (DocSet, error) {
	if node == nil {
		return make(DocSet), nil
	}
	switch node.Kind {
	case querylang.False:
		return make(DocSet), nil
	case querylang.Term:
		if set, ok := idx.terms[node.TermText]; ok {
			return set.clone(), nil
		}
		return make(DocSet), nil
	case querylang.And:
		l, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.Query(node.Right)
		if err != nil {
			return nil, err
		}
		return intersectSet(l, r), nil
	case querylang.Or:
		l, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.Query(node.Right)
		if err != nil {
			return nil, err
		}
		return unionSet(l, r), nil
	case querylang.Not:
		x, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		return differenceSet(idx.universe, x), nil
	case querylang.Subtract:
		l, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.Query(node.Right)
		if err != nil {
			return nil, err
		}
		return differenceSet(l, r), nil
	case querylang.Near:
		return nil, ErrUnsupportedOperation
	default:
		return nil, ErrUnsupportedOperation
	}
}
