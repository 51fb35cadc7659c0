// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package index

import "testing"

func TestBigramIndex_NearPatternLookup(t *testing.T) {
	idx := NewBigramIndex()
	// doc 0: "quick brown fox"
	idx.AddWord(0, "quick")
	idx.AddWord(0, "brown")
	idx.AddWord(0, "fox")
	// doc 1: "brown quick fox" -- different adjacency, no "quick brown" bigram
	idx.AddWord(1, "brown")
	idx.AddWord(1, "quick")
	idx.AddWord(1, "fox")

	node := mustParseQuery(t, "quick>brown")
	got, err := idx.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !docSetEqual(got, newDocSet(0)) {
		t.Fatalf("Query(quick>brown) = %v, want {0}", got)
	}
}

func TestBigramIndex_SetLevelAndOr(t *testing.T) {
	idx := NewBigramIndex()
	idx.AddWord(0, "a")
	idx.AddWord(0, "b") // a_b in doc 0
	idx.AddWord(1, "a")
	idx.AddWord(1, "b") // a_b in doc 1
	idx.AddWord(1, "c") // b_c in doc 1

	node := mustParseQuery(t, "a_b&b_c")
	got, err := idx.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !docSetEqual(got, newDocSet(1)) {
		t.Fatalf("Query(a_b & b_c) = %v, want {1}", got)
	}
}

func TestBigramIndex_OtherNearIsUnsupported(t *testing.T) {
	idx := NewBigramIndex()
	idx.AddWord(0, "a")
	idx.AddWord(0, "b")
	idx.AddWord(0, "c")

	node := mustParseQuery(t, "a{2}c")
	if _, err := idx.Query(node); err == nil {
		t.Fatalf("expected error for unsupported Near pattern")
	}
}

func TestBigramIndex_MergeUnionsPostings(t *testing.T) {
	a := NewBigramIndex()
	a.AddWord(0, "x")
	a.AddWord(0, "y")

	b := NewBigramIndex()
	b.AddWord(1, "x")
	b.AddWord(1, "y")

	a.Merge(b)
	node := mustParseQuery(t, "x>y")
	got, err := a.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !docSetEqual(got, newDocSet(0, 1)) {
		t.Fatalf("Query(x>y) = %v, want {0,1}", got)
	}
}
