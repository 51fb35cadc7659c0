// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package index

import (
	"errors"
	"testing"

	"github.com/rchuk/goir/internal/querylang"
)

func docSetEqual(a, b DocSet) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func mustParseQuery(t *testing.T, q string) *querylang.Node {
	t.Helper()
	node, err := querylang.ParseString(q)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", q, err)
	}
	return node
}

func TestPostingIndex_AndOrNotSubtract(t *testing.T) {
	idx := NewPostingIndex()
	idx.AddTerm("cat", 0)
	idx.AddTerm("cat", 1)
	idx.AddTerm("dog", 1)
	idx.AddTerm("dog", 2)

	cases := []struct {
		query string
		want  DocSet
	}{
		{"cat", newDocSet(0, 1)},
		{"cat&dog", newDocSet(1)},
		{"cat|dog", newDocSet(0, 1, 2)},
		{`cat\dog`, newDocSet(0)},
		{"!dog", newDocSet(0)},
		{"ghost", newDocSet()},
	}
	for _, c := range cases {
		node := mustParseQuery(t, c.query)
		got, err := idx.Query(node)
		if err != nil {
			t.Fatalf("Query(%q): %v", c.query, err)
		}
		if !docSetEqual(got, c.want) {
			t.Fatalf("Query(%q) = %v, want %v", c.query, got, c.want)
		}
	}
}

func TestPostingIndex_NearIsUnsupported(t *testing.T) {
	idx := NewPostingIndex()
	idx.AddTerm("a", 0)
	idx.AddTerm("b", 0)
	node := mustParseQuery(t, "a>b")
	if _, err := idx.Query(node); !errors.Is(err, ErrUnsupportedOperation) {
		t.Fatalf("err = %v, want ErrUnsupportedOperation", err)
	}
}

func TestPostingIndex_MergeIsAssociativeAndCommutative(t *testing.T) {
	buildA := func() *PostingIndex {
		idx := NewPostingIndex()
		idx.AddTerm("cat", 0)
		idx.AddTerm("dog", 1)
		return idx
	}
	buildB := func() *PostingIndex {
		idx := NewPostingIndex()
		idx.AddTerm("cat", 2)
		return idx
	}
	buildC := func() *PostingIndex {
		idx := NewPostingIndex()
		idx.AddTerm("fox", 3)
		return idx
	}

	abThenC := buildA()
	abThenC.Merge(buildB())
	abThenC.Merge(buildC())

	bcThenA := buildB()
	bcThenA.Merge(buildC())
	aForBc := buildA()
	bcThenA.terms["cat"] = unionSet(bcThenA.terms["cat"], aForBc.terms["cat"])
	bcThenA.terms["dog"] = aForBc.terms["dog"]
	bcThenA.universe = unionSet(bcThenA.universe, aForBc.universe)

	if !docSetEqual(abThenC.terms["cat"], bcThenA.terms["cat"]) {
		t.Fatalf("cat postings differ under merge order: %v vs %v", abThenC.terms["cat"], bcThenA.terms["cat"])
	}
	if !docSetEqual(abThenC.universe, bcThenA.universe) {
		t.Fatalf("universe differs under merge order: %v vs %v", abThenC.universe, bcThenA.universe)
	}
}
