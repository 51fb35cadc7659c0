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
	"github.com/rchuk/goir/internal/segment"
)

// DocSegment locates a term occurrence to one segment kind of one document.
// The same term occurring in two segments of the same document yields two
// distinct postings, per spec §4.3.4.
type DocSegment struct {
	Doc  DocumentId
	Kind segment.Kind
}

// SegSet is a set of DocSegment locators.
type SegSet map[DocSegment]struct{}

func (s SegSet) clone() SegSet {
	out := make(SegSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func unionSeg(a, b SegSet) SegSet {
	out := make(SegSet, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

func intersectSeg(a, b SegSet) SegSet {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	out := make(SegSet)
	for k := range small {
		if _, ok := big[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func differenceSeg(a, b SegSet) SegSet {
	out := make(SegSet, len(a))
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// SegmentedIndex is the per-segment-weighted variant of spec §4.3.4.
type SegmentedIndex struct {
	terms    map[string]SegSet
	universe SegSet
}

// NewSegmentedIndex returns an empty SegmentedIndex.
func NewSegmentedIndex() *SegmentedIndex {
	return &SegmentedIndex{terms: make(map[string]SegSet), universe: make(SegSet)}
}

// AddTerm records that term occurs in doc's kind segment.
func (idx *SegmentedIndex) AddTerm(term string, doc DocumentId, kind segment.Kind) {
	loc := DocSegment{Doc: doc, Kind: kind}
	set, ok := idx.terms[term]
	if !ok {
		set = make(SegSet)
		idx.terms[term] = set
	}
	set[loc] = struct{}{}
	idx.universe[loc] = struct{}{}
}

// Merge absorbs other into idx, unioning per-term (doc, kind) sets.
func (idx *SegmentedIndex) Merge(other *SegmentedIndex) {
	for term, set := range other.terms {
		existing, ok := idx.terms[term]
		if !ok {
			idx.terms[term] = set
			continue
		}
		idx.terms[term] = unionSeg(existing, set)
	}
	idx.universe = unionSeg(idx.universe, other.universe)
}

// Query evaluates the AST over (document, segment) locators. Near is
// unsupported: the variant carries no positional information.
func (idx *SegmentedIndex) Query(node *querylang.Node) (SegSet, error) {
	if node == nil {
		return make(SegSet), nil
	}
	switch node.Kind {
	case querylang.False:
		return make(SegSet), nil
	case querylang.Term:
		if set, ok := idx.terms[node.TermText]; ok {
			return set.clone(), nil
		}
		return make(SegSet), nil
	case querylang.And:
		l, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.Query(node.Right)
		if err != nil {
			return nil, err
		}
		return intersectSeg(l, r), nil
	case querylang.Or:
		l, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.Query(node.Right)
		if err != nil {
			return nil, err
		}
		return unionSeg(l, r), nil
	case querylang.Not:
		x, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		return differenceSeg(idx.universe, x), nil
	case querylang.Subtract:
		l, err := idx.Query(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.Query(node.Right)
		if err != nil {
			return nil, err
		}
		return differenceSeg(l, r), nil
	default:
		return nil, ErrUnsupportedOperation
	}
}

// RankedDocument is one row of a ranked segmented query result.
type RankedDocument struct {
	Doc   DocumentId
	Score float64
}

// Rank groups a SegSet by document, summing each matched segment kind's
// weight, and returns the rows sorted by score descending, ties broken by
// DocumentId ascending.
func Rank(matches SegSet) []RankedDocument {
	scores := make(map[DocumentId]float64)
	for loc := range matches {
		scores[loc.Doc] += loc.Kind.Weight()
	}
	rows := make([]RankedDocument, 0, len(scores))
	for doc, score := range scores {
		rows = append(rows, RankedDocument{Doc: doc, Score: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Doc < rows[j].Doc
	})
	return rows
}
