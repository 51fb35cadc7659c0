// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package index

import (
	"reflect"
	"testing"
)

func TestClosePositions_Commutative(t *testing.T) {
	a := TermPositions{0: {1, 5}}
	b := TermPositions{0: {2, 6}}

	ab := closeUnion(a, b, 0, 1)
	ba := closeUnion(b, a, 1, 0)

	if !reflect.DeepEqual(ab[0], ba[0]) {
		t.Fatalf("close_union not commutative under swapped left/right: %v vs %v", ab, ba)
	}
}

func TestIntersectPositions_SelfIntersectIsIdentity(t *testing.T) {
	a := TermPositions{0: {1, 2, 3}, 1: {4}}
	got := intersectPositions(a, a)
	if !reflect.DeepEqual(got, a) {
		t.Fatalf("A & A = %v, want %v", got, a)
	}
}

func TestDifferencePositions_SelfDifferenceIsEmpty(t *testing.T) {
	a := TermPositions{0: {1, 2, 3}}
	got := differencePositions(a, a)
	if len(got) != 0 {
		t.Fatalf("A \\ A = %v, want empty", got)
	}
}

func TestDifferencePositions_DropsDocAfterIntersectThenDifference(t *testing.T) {
	a := TermPositions{0: {1, 2}}
	b := TermPositions{0: {1, 2}}
	inter := intersectPositions(a, b)
	got := differencePositions(inter, b)
	if len(got) != 0 {
		t.Fatalf("(A & B) \\ B = %v, want empty", got)
	}
}

func TestUnionPositions_Associative(t *testing.T) {
	a := TermPositions{0: {1}}
	b := TermPositions{0: {2}}
	c := TermPositions{0: {3}, 1: {9}}

	abThenC := unionPositions(unionPositions(a, b), c)
	aThenBc := unionPositions(a, unionPositions(b, c))

	if !reflect.DeepEqual(abThenC, aThenBc) {
		t.Fatalf("union not associative: %v vs %v", abThenC, aThenBc)
	}
}

func TestCloseUnion_IncludesBothSidesWithinWindow(t *testing.T) {
	a := TermPositions{0: {10}}
	b := TermPositions{0: {11}}
	got := closeUnion(a, b, 0, 1)
	want := Positions{10, 11}
	if !reflect.DeepEqual([]int(got[0]), []int(want)) {
		t.Fatalf("close_union = %v, want %v", got[0], want)
	}
}

func TestCloseUnion_DropsDocOutsideWindow(t *testing.T) {
	a := TermPositions{0: {10}}
	b := TermPositions{0: {20}}
	got := closeUnion(a, b, 0, 1)
	if len(got) != 0 {
		t.Fatalf("close_union = %v, want empty", got)
	}
}

func TestPositionalIndex_PhraseQuery(t *testing.T) {
	idx := NewPositionalIndex()
	// doc 0: "the cat sat" -> the=0 cat=1 sat=2
	idx.AddTerm("the", 0, 0)
	idx.AddTerm("cat", 0, 1)
	idx.AddTerm("sat", 0, 2)
	// doc 1: "the dog sat" has no "cat" adjacency
	idx.AddTerm("the", 1, 0)
	idx.AddTerm("dog", 1, 1)
	idx.AddTerm("sat", 1, 2)

	node := mustParseQuery(t, `"cat sat"`)
	got, err := idx.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !docSetEqual(got, newDocSet(0)) {
		t.Fatalf("Query(phrase) = %v, want {0}", got)
	}
}

func TestPositionalIndex_NotUsesDocumentSub(t *testing.T) {
	idx := NewPositionalIndex()
	idx.AddTerm("cat", 0, 0)
	idx.AddTerm("dog", 1, 0)

	node := mustParseQuery(t, "!cat")
	got, err := idx.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !docSetEqual(got, newDocSet(1)) {
		t.Fatalf("Query(!cat) = %v, want {1}", got)
	}
}

func TestPositionalIndex_MergeDeduplicatesPositions(t *testing.T) {
	a := NewPositionalIndex()
	a.AddTerm("cat", 0, 1)
	b := NewPositionalIndex()
	b.AddTerm("cat", 0, 1)
	b.AddTerm("cat", 0, 2)

	a.Merge(b)
	got := a.terms["cat"][0]
	want := Positions{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged positions = %v, want %v", got, want)
	}
}
