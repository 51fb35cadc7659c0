// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package build

import (
	"github.com/rchuk/goir/internal/index"
	"github.com/rchuk/goir/internal/segment"
	"github.com/rchuk/goir/internal/token"
)

// Partial is the set of per-document index contributions produced by one
// worker. Every variant is built in the same pass over the document's
// segments so a single tokenizer run serves all five index flavors.
type Partial struct {
	Posting    *index.PostingIndex
	Positional *index.PositionalIndex
	Bigram     *index.BigramIndex
	Segmented  *index.SegmentedIndex
	TFIDF      *index.TFIDFIndex
	Stats      token.Stats
}

func newPartial() *Partial {
	return &Partial{
		Posting:    index.NewPostingIndex(),
		Positional: index.NewPositionalIndex(),
		Bigram:     index.NewBigramIndex(),
		Segmented:  index.NewSegmentedIndex(),
		TFIDF:      index.NewTFIDFIndex(),
	}
}

// indexDocument segments and tokenizes text, populating every variant of p
// for doc. Word-ordinal positions run continuously across all of a
// document's segments, in segment.Each's stable Filename/Title/Authors/
// Body/Epigraph order, so NEAR/phrase queries see one coherent word stream
// per document regardless of which segment a hit falls in.
func indexDocument(p *Partial, doc index.DocumentId, segments *segment.Segments) {
	ordinal := 0
	segments.Each(func(kind segment.Kind, text string) {
		stats := token.Lex(text, func(term string, _ int) {
			p.Posting.AddTerm(term, doc)
			p.Positional.AddTerm(term, doc, ordinal)
			p.Bigram.AddWord(doc, term)
			p.Segmented.AddTerm(term, doc, kind)
			p.TFIDF.AddTerm(term, doc)
			ordinal++
		})
		p.Stats.Merge(stats)
	})
}

// merge absorbs other into p using each variant's associative, commutative
// reduction (§4.6).
func (p *Partial) merge(other *Partial) {
	p.Posting.Merge(other.Posting)
	p.Positional.Merge(other.Positional)
	p.Bigram.Merge(other.Bigram)
	p.Segmented.Merge(other.Segmented)
	p.TFIDF.Merge(other.TFIDF)
	p.Stats.Merge(other.Stats)
}
