// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package engine wires a built index (internal/build) to the query
// language front end (internal/querylang) behind one variant-selectable
// entry point, the shape the CLI and REPL consume.
package engine

import (
	"fmt"
	"time"

	"github.com/rchuk/goir/internal/build"
	"github.com/rchuk/goir/internal/index"
	"github.com/rchuk/goir/internal/metrics"
	"github.com/rchuk/goir/internal/querylang"
	"github.com/rchuk/goir/internal/token"
)

// Variant names accepted by Engine.Query, matching config.Variant*.
const (
	Posting    = "posting"
	Positional = "positional"
	Bigram     = "bigram"
	Segmented  = "segmented"
	TFIDF      = "tfidf"
)

// Hit is one matching document, with an optional relevance score (used by
// the segmented and tf-idf variants; zero for the set-only variants, which
// have no inherent ranking).
type Hit struct {
	Doc   index.DocumentId
	Path  string
	Score float64
}

// Engine answers queries against a fully built index, resolving
// DocumentIds back to file paths for display.
type Engine struct {
	registry *index.DocumentRegistry
	partial  *build.Partial
}

// New wraps a build.Result for querying.
func New(result *build.Result) *Engine {
	return &Engine{registry: result.Registry, partial: result.Partial}
}

// Query runs queryText against the named variant and returns matching
// documents. For Posting/Positional/Bigram the query is parsed as the
// Boolean+proximity grammar (§4.4); for Segmented the same grammar drives a
// weighted rank; for TFIDF the query text is lexed into bag-of-words terms
// and leaderCount controls how many leader clusters are consulted
// (see index.TFIDFIndex.Preprocess).
func (e *Engine) Query(variant, queryText string, leaderCount int) ([]Hit, error) {
	start := time.Now()
	hits, err := e.query(variant, queryText, leaderCount)
	if err != nil {
		metrics.RecordQueryError(variant, errKind(err))
		return nil, err
	}
	metrics.RecordQuery(variant, time.Since(start).Seconds(), len(hits))
	return hits, nil
}

func errKind(err error) string {
	switch err {
	case index.ErrUnsupportedOperation:
		return "unsupported_operation"
	case index.ErrNoKnownTerm:
		return "no_known_term"
	case index.ErrNotPreprocessed:
		return "not_preprocessed"
	default:
		return "query_error"
	}
}

func (e *Engine) query(variant, queryText string, leaderCount int) ([]Hit, error) {
	switch variant {
	case Posting:
		node, err := querylang.ParseString(queryText)
		if err != nil {
			return nil, fmt.Errorf("parsing query: %w", err)
		}
		docs, err := e.partial.Posting.Query(node)
		if err != nil {
			return nil, err
		}
		return e.hitsFromSet(docs), nil

	case Positional:
		node, err := querylang.ParseString(queryText)
		if err != nil {
			return nil, fmt.Errorf("parsing query: %w", err)
		}
		docs, err := e.partial.Positional.Query(node)
		if err != nil {
			return nil, err
		}
		return e.hitsFromSet(docs), nil

	case Bigram:
		node, err := querylang.ParseString(queryText)
		if err != nil {
			return nil, fmt.Errorf("parsing query: %w", err)
		}
		docs, err := e.partial.Bigram.Query(node)
		if err != nil {
			return nil, err
		}
		return e.hitsFromSet(docs), nil

	case Segmented:
		node, err := querylang.ParseString(queryText)
		if err != nil {
			return nil, fmt.Errorf("parsing query: %w", err)
		}
		matches, err := e.partial.Segmented.Query(node)
		if err != nil {
			return nil, err
		}
		ranked := index.Rank(matches)
		hits := make([]Hit, 0, len(ranked))
		for _, r := range ranked {
			hits = append(hits, e.hit(r.Doc, r.Score))
		}
		return hits, nil

	case TFIDF:
		var terms []string
		token.Lex(queryText, func(term string, _ int) {
			terms = append(terms, term)
		})
		ranked, err := e.partial.TFIDF.Query(terms, leaderCount)
		if err != nil {
			return nil, err
		}
		hits := make([]Hit, 0, len(ranked))
		for _, r := range ranked {
			hits = append(hits, e.hit(r.Doc, r.Score))
		}
		return hits, nil

	default:
		return nil, fmt.Errorf("engine: unknown index variant %q", variant)
	}
}

func (e *Engine) hitsFromSet(docs index.DocSet) []Hit {
	hits := make([]Hit, 0, len(docs))
	for doc := range docs {
		hits = append(hits, e.hit(doc, 0))
	}
	return hits
}

func (e *Engine) hit(doc index.DocumentId, score float64) Hit {
	path, _ := e.registry.Path(doc)
	return Hit{Doc: doc, Path: path, Score: score}
}

// Preprocess must be called once before the first TFIDF query, building the
// leader/follower clustering over the current corpus (see
// index.TFIDFIndex.Preprocess).
func (e *Engine) Preprocess(k int) {
	e.partial.TFIDF.Preprocess(k)
}

// DocumentCount returns the number of documents in the underlying corpus.
func (e *Engine) DocumentCount() int {
	return e.registry.Count()
}
