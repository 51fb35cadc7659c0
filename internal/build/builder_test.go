// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package build

import (
	"context"
	"testing"

	"github.com/rchuk/goir/internal/querylang"
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

func TestBuilder_IndexesAllDocuments(t *testing.T) {
	provider := &fakeProvider{files: map[string]string{
		"data/a.txt": "the cat sat",
		"data/b.txt": "the dog ran",
	}}
	b := NewBuilder(provider, nil)
	result, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Registry.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", result.Registry.Count())
	}

	node, err := querylang.ParseString("cat")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	docs, err := result.Partial.Posting.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Query(cat) = %v, want one document", docs)
	}
}

func TestBuilder_SkipsInvalidUTF8(t *testing.T) {
	provider := &fakeProvider{files: map[string]string{
		"good.txt": "hello world",
		"bad.txt":  string([]byte{0xff, 0xfe, 0x00}),
	}}
	b := NewBuilder(provider, nil)
	result, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.Registry.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (bad.txt should be skipped)", result.Registry.Count())
	}
}

func TestBuilder_MergeIsOrderIndependent(t *testing.T) {
	provider := &fakeProvider{files: map[string]string{
		"one.txt":   "alpha beta",
		"two.txt":   "beta gamma",
		"three.txt": "gamma delta",
	}}
	first, err := NewBuilder(provider, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build #1: %v", err)
	}
	second, err := NewBuilder(provider, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build #2: %v", err)
	}

	node, _ := querylang.ParseString("beta")
	firstDocs, err := first.Partial.Posting.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	secondDocs, err := second.Partial.Posting.Query(node)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(firstDocs) != len(secondDocs) {
		t.Fatalf("result sizes differ across independent builds: %d vs %d", len(firstDocs), len(secondDocs))
	}
}
