// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package persist

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/rchuk/goir/internal/index"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("opening in-memory badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := newTestDB(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := NewStore(db, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStore_SaveAndLoadLatest(t *testing.T) {
	store := newTestStore(t)
	postings := samplePostings()
	ctx := context.Background()

	meta, err := store.Save(ctx, "positional", postings)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.TermCount != len(postings) {
		t.Fatalf("TermCount = %d, want %d", meta.TermCount, len(postings))
	}

	got, loadedMeta, err := store.LoadLatest(ctx, "positional")
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if loadedMeta.SnapshotID != meta.SnapshotID {
		t.Fatalf("snapshot id mismatch: %s vs %s", loadedMeta.SnapshotID, meta.SnapshotID)
	}
	for term, ids := range postings {
		if len(got[term]) != len(ids) {
			t.Fatalf("term %q: got %v, want %v", term, got[term], ids)
		}
	}
}

func TestStore_LoadLatestUnknownNameErrors(t *testing.T) {
	store := newTestStore(t)
	if _, _, err := store.LoadLatest(context.Background(), "nonexistent"); err == nil {
		t.Fatalf("expected error loading unknown snapshot name")
	}
}

func TestStore_SaveUpdatesLatestPointer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, "doc-posting", map[string][]index.DocumentId{"a": {0}}); err != nil {
		t.Fatalf("Save #1: %v", err)
	}
	secondMeta, err := store.Save(ctx, "doc-posting", map[string][]index.DocumentId{"a": {0}, "b": {1}})
	if err != nil {
		t.Fatalf("Save #2: %v", err)
	}

	got, loadedMeta, err := store.LoadLatest(ctx, "doc-posting")
	if err != nil {
		t.Fatalf("LoadLatest: %v", err)
	}
	if loadedMeta.SnapshotID != secondMeta.SnapshotID {
		t.Fatalf("latest pointer did not move to the second save")
	}
	if len(got) != 2 {
		t.Fatalf("got = %v, want 2 terms", got)
	}
}
