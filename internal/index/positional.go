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

// Positions is a strictly increasing sorted set of word-ordinal positions
// within one document.
type Positions []int

func mergePositions(a, b Positions) Positions {
	out := make(Positions, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func insertSorted(positions Positions, pos int) Positions {
	i := sort.SearchInts(positions, pos)
	if i < len(positions) && positions[i] == pos {
		return positions
	}
	positions = append(positions, 0)
	copy(positions[i+1:], positions[i:])
	positions[i] = pos
	return positions
}

// TermPositions maps DocumentId to the sorted positions of one term within
// that document, per spec §3.
type TermPositions map[DocumentId]Positions

func (t TermPositions) clone() TermPositions {
	out := make(TermPositions, len(t))
	for doc, positions := range t {
		cp := make(Positions, len(positions))
		copy(cp, positions)
		out[doc] = cp
	}
	return out
}

// unionPositions returns the per-document union of a and b's position sets.
func unionPositions(a, b TermPositions) TermPositions {
	out := make(TermPositions, len(a)+len(b))
	for doc, positions := range a {
		out[doc] = positions
	}
	for doc, positions := range b {
		if existing, ok := out[doc]; ok {
			out[doc] = mergePositions(existing, positions)
		} else {
			out[doc] = positions
		}
	}
	return out
}

// intersectPositions returns the per-document intersection, dropping
// documents whose intersection is empty.
func intersectPositions(a, b TermPositions) TermPositions {
	out := make(TermPositions)
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for doc, sp := range small {
		bp, ok := big[doc]
		if !ok {
			continue
		}
		inter := intersectSorted(sp, bp)
		if len(inter) > 0 {
			out[doc] = inter
		}
	}
	return out
}

func intersectSorted(a, b Positions) Positions {
	var out Positions
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// differencePositions returns, per document in a, the positions not present
// in b's set for that document; documents absent from b pass through
// unchanged; documents whose result becomes empty are dropped.
func differencePositions(a, b TermPositions) TermPositions {
	out := make(TermPositions, len(a))
	for doc, ap := range a {
		bp, ok := b[doc]
		if !ok {
			out[doc] = ap
			continue
		}
		diff := subtractSorted(ap, bp)
		if len(diff) > 0 {
			out[doc] = diff
		}
	}
	return out
}

func subtractSorted(a, b Positions) Positions {
	bset := make(map[int]struct{}, len(b))
	for _, p := range b {
		bset[p] = struct{}{}
	}
	var out Positions
	for _, p := range a {
		if _, ok := bset[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// documentSub drops any document from a that is also keyed in b, regardless
// of b's positions at that key. Used to implement Not over word-ordinal
// positions: universe document_sub x.
func documentSub(a, b TermPositions) TermPositions {
	out := make(TermPositions, len(a))
	for doc, ap := range a {
		if _, ok := b[doc]; ok {
			continue
		}
		out[doc] = ap
	}
	return out
}

// closeUnion implements spec §4.3.2's close_union_{left,right}: for each
// document present in both a and b, each position p in a with some q in b
// satisfying p-left <= q <= p+right contributes both p and every such q to
// the result. Documents with no qualifying pair are dropped.
func closeUnion(a, b TermPositions, left, right int) TermPositions {
	out := make(TermPositions)
	for doc, ap := range a {
		bp, ok := b[doc]
		if !ok {
			continue
		}
		var hit Positions
		for _, p := range ap {
			lo, hi := p-left, p+right
			start := sort.SearchInts(bp, lo)
			matched := false
			for k := start; k < len(bp) && bp[k] <= hi; k++ {
				hit = insertSorted(hit, bp[k])
				matched = true
			}
			if matched {
				hit = insertSorted(hit, p)
			}
		}
		if len(hit) > 0 {
			out[doc] = hit
		}
	}
	return out
}

// PositionalIndex is the word-ordinal positional variant of spec §4.3.2,
// supporting exact phrase and NEAR{k} queries via the position algebra
// above.
type PositionalIndex struct {
	terms    map[string]TermPositions
	universe TermPositions
}

// NewPositionalIndex returns an empty PositionalIndex.
func NewPositionalIndex() *PositionalIndex {
	return &PositionalIndex{terms: make(map[string]TermPositions), universe: make(TermPositions)}
}

// AddTerm records that term occurs in doc at the given word ordinal.
func (idx *PositionalIndex) AddTerm(term string, doc DocumentId, pos int) {
	tp, ok := idx.terms[term]
	if !ok {
		tp = make(TermPositions)
		idx.terms[term] = tp
	}
	tp[doc] = insertSorted(tp[doc], pos)
	if _, ok := idx.universe[doc]; !ok {
		idx.universe[doc] = nil
	}
}

// Merge absorbs other into idx, unioning per-term per-document position
// sets with duplicates removed — the §4.6 contract for the positional
// variant.
func (idx *PositionalIndex) Merge(other *PositionalIndex) {
	for term, tp := range other.terms {
		existing, ok := idx.terms[term]
		if !ok {
			idx.terms[term] = tp
			continue
		}
		idx.terms[term] = unionPositions(existing, tp)
	}
	for doc := range other.universe {
		if _, ok := idx.universe[doc]; !ok {
			idx.universe[doc] = nil
		}
	}
}

// Query evaluates a querylang AST and returns the set of documents keyed in
// the result. Documents kept by a Not are membership-only keys with no
// positions, and they are returned too.
func (idx *PositionalIndex) Query(node *querylang.Node) (DocSet, error) {
	tp, err := idx.queryPositions(node)
	if err != nil {
		return nil, err
	}
	out := make(DocSet, len(tp))
	for doc := range tp {
		out[doc] = struct{}{}
	}
	return out, nil
}

func (idx *PositionalIndex) queryPositions(node *querylang.Node) (TermPositions, error) {
	if node == nil {
		return make(TermPositions), nil
	}
	switch node.Kind {
	case querylang.False:
		return make(TermPositions), nil
	case querylang.Term:
		if tp, ok := idx.terms[node.TermText]; ok {
			return tp.clone(), nil
		}
		return make(TermPositions), nil
	case querylang.And:
		l, err := idx.queryPositions(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.queryPositions(node.Right)
		if err != nil {
			return nil, err
		}
		return intersectPositions(l, r), nil
	case querylang.Or:
		l, err := idx.queryPositions(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.queryPositions(node.Right)
		if err != nil {
			return nil, err
		}
		return unionPositions(l, r), nil
	case querylang.Not:
		x, err := idx.queryPositions(node.Left)
		if err != nil {
			return nil, err
		}
		return documentSub(idx.universe, x), nil
	case querylang.Subtract:
		l, err := idx.queryPositions(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.queryPositions(node.Right)
		if err != nil {
			return nil, err
		}
		return differencePositions(l, r), nil
	case querylang.Near:
		l, err := idx.queryPositions(node.Left)
		if err != nil {
			return nil, err
		}
		r, err := idx.queryPositions(node.Right)
		if err != nil {
			return nil, err
		}
		return closeUnion(l, r, node.NearLeft, node.NearRight), nil
	default:
		return nil, ErrUnsupportedOperation
	}
}
