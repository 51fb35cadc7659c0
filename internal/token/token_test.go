// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package token

import (
	"reflect"
	"testing"
)

func lexAll(t *testing.T, text string) ([]string, Stats) {
	t.Helper()
	var terms []string
	stats := Lex(text, func(term string, ordinal int) {
		if ordinal != len(terms) {
			t.Fatalf("ordinal %d out of order, expected %d", ordinal, len(terms))
		}
		terms = append(terms, term)
	})
	return terms, stats
}

func TestLex_RepeatedLetter(t *testing.T) {
	terms, stats := lexAll(t, "AaAaA")
	if !reflect.DeepEqual(terms, []string{"aaaaa"}) {
		t.Fatalf("terms = %v", terms)
	}
	if stats.CharactersRead != 5 || stats.CharactersIgnored != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestLex_UnicodeFolding(t *testing.T) {
	terms, _ := lexAll(t, "ЯКЕ ЯкЕ яке")
	if len(terms) != 3 {
		t.Fatalf("expected 3 tokens, got %v", terms)
	}
	for _, term := range terms {
		if term != "яке" {
			t.Fatalf("term %q not folded", term)
		}
	}
}

func TestLex_Apostrophes(t *testing.T) {
	terms, _ := lexAll(t, "it's 'tis don't")
	want := []string{"it's", "tis", "don't"}
	if !reflect.DeepEqual(terms, want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
}

func TestLex_CharacterCounts(t *testing.T) {
	_, stats := lexAll(t, "hello, world!\nbye.\n")
	if stats.CharactersRead != 19 {
		t.Fatalf("characters_read = %d, want 19", stats.CharactersRead)
	}
	if stats.CharactersIgnored != 6 {
		t.Fatalf("characters_ignored = %d, want 6", stats.CharactersIgnored)
	}
	if stats.Lines != 3 {
		t.Fatalf("lines = %d, want 3", stats.Lines)
	}
}

func TestLex_EmptyInput(t *testing.T) {
	terms, stats := lexAll(t, "")
	if len(terms) != 0 {
		t.Fatalf("expected no terms, got %v", terms)
	}
	if stats.Lines != 0 {
		t.Fatalf("lines = %d, want 0 for empty input", stats.Lines)
	}
}

func TestStats_MergeIsAssociativeAndCommutative(t *testing.T) {
	a := Stats{CharactersRead: 3, CharactersIgnored: 1, Lines: 1}
	b := Stats{CharactersRead: 5, CharactersIgnored: 2, Lines: 2}
	c := Stats{CharactersRead: 7, CharactersIgnored: 0, Lines: 1}

	ab := a
	ab.Merge(b)
	abc := ab
	abc.Merge(c)

	bc := b
	bc.Merge(c)
	abc2 := a
	abc2.Merge(bc)

	if abc != abc2 {
		t.Fatalf("merge not associative: %+v != %+v", abc, abc2)
	}

	ba := b
	ba.Merge(a)
	if ba != ab {
		t.Fatalf("merge not commutative: %+v != %+v", ba, ab)
	}
}
