// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package index

import "github.com/rchuk/goir/internal/querylang"

// BigramIndex implements spec §4.3.3: each pair of consecutive words in a
// document is indexed under the key "prev_word". Only set-level
// AND/OR/NOT/SUBTRACT and the specific Near(Term(a), Term(b), 0, 1) pattern
// are answerable; any other positional query is an error.
type BigramIndex struct {
	posting *PostingIndex

	hasLast  bool
	lastDoc  DocumentId
	lastWord string
}

// NewBigramIndex returns an empty BigramIndex.
func NewBigramIndex() *BigramIndex {
	return &BigramIndex{posting: NewPostingIndex()}
}

// AddWord feeds the next word of doc's token stream. Consecutive calls with
// the same doc emit a bigram keyed "prev_word"; a call for a different (or
// first) document only resets the tracked previous word and registers doc
// in the universe so Not still sees it.
func (idx *BigramIndex) AddWord(doc DocumentId, word string) {
	if idx.hasLast && idx.lastDoc == doc {
		idx.posting.AddTerm(idx.lastWord+"_"+word, doc)
	} else {
		idx.posting.universe[doc] = struct{}{}
	}
	idx.lastDoc = doc
	idx.lastWord = word
	idx.hasLast = true
}

// Merge absorbs other into idx by unioning the underlying bigram postings.
func (idx *BigramIndex) Merge(other *BigramIndex) {
	idx.posting.Merge(other.posting)
}

// Query evaluates the AST. Term nodes are looked up as literal bigram keys
// ("word_word"); And/Or/Not/Subtract compose those lookups at the set
// level; Near is supported only in the exact shape Near(Term(a), Term(b),
// 0, 1), which is answered by looking up "a_b" directly.
func (idx *BigramIndex) Query(node *querylang.Node) (DocSet, error) {
	if node == nil {
		return make(DocSet), nil
	}
	if node.Kind == querylang.Near {
		if node.NearLeft == 0 && node.NearRight == 1 &&
			node.Left != nil && node.Left.Kind == querylang.Term &&
			node.Right != nil && node.Right.Kind == querylang.Term {
			key := node.Left.TermText + "_" + node.Right.TermText
			if set, ok := idx.posting.terms[key]; ok {
				return set.clone(), nil
			}
			return make(DocSet), nil
		}
		return nil, ErrUnsupportedOperation
	}
	return idx.posting.Query(node)
}
