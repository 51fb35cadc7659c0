// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package engine

import (
	"context"
	"testing"

	"github.com/rchuk/goir/internal/build"
)

type fakeProvider struct {
	files map[string]string
}

func (p *fakeProvider) List() ([]string, error) {
	paths := make([]string, 0, len(p.files))
	for path := range p.files {
		paths = append(paths, path)
	}
	return paths, nil
}

func (p *fakeProvider) Read(path string) (string, error) {
	return p.files[path], nil
}

func buildTestEngine(t *testing.T) *Engine {
	t.Helper()
	provider := &fakeProvider{files: map[string]string{
		"hamlet.txt":  "to be or not to be that is the question",
		"macbeth.txt": "tomorrow and tomorrow and tomorrow",
	}}
	result, err := build.NewBuilder(provider, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return New(result)
}

func TestEngine_PostingQuery(t *testing.T) {
	e := buildTestEngine(t)
	hits, err := e.Query(Posting, "question", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "hamlet.txt" {
		t.Fatalf("Query(question) = %+v, want hamlet.txt", hits)
	}
}

func TestEngine_PositionalPhraseQuery(t *testing.T) {
	e := buildTestEngine(t)
	hits, err := e.Query(Positional, `"to be"`, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "hamlet.txt" {
		t.Fatalf("Query(\"to be\") = %+v, want hamlet.txt", hits)
	}
}

func TestEngine_SegmentedQueryRanks(t *testing.T) {
	e := buildTestEngine(t)
	hits, err := e.Query(Segmented, "tomorrow", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "macbeth.txt" {
		t.Fatalf("Query(tomorrow) = %+v, want macbeth.txt", hits)
	}
}

func TestEngine_TFIDFQueryAfterPreprocess(t *testing.T) {
	e := buildTestEngine(t)
	e.Preprocess(e.DocumentCount())
	hits, err := e.Query(TFIDF, "tomorrow", e.DocumentCount())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) == 0 || hits[0].Path != "macbeth.txt" {
		t.Fatalf("Query(tomorrow) = %+v, want macbeth.txt first", hits)
	}
}

func TestEngine_BigramNearLookup(t *testing.T) {
	e := buildTestEngine(t)
	hits, err := e.Query(Bigram, `"to be"`, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "hamlet.txt" {
		t.Fatalf("Query(to be) = %+v, want hamlet.txt", hits)
	}
}

func TestEngine_UnknownVariantErrors(t *testing.T) {
	e := buildTestEngine(t)
	if _, err := e.Query("nonsense", "x", 0); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}
