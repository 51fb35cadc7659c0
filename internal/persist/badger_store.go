// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package persist

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/rchuk/goir/internal/index"
)

const (
	keyPrefixSnap   = "goir:index:"
	keySuffixData   = ":data"
	keySuffixMeta   = ":meta"
	keySuffixLatest = ":latest"
)

// Metadata describes one saved index snapshot.
type Metadata struct {
	SnapshotID     string `json:"snapshot_id"`
	Name           string `json:"name"`
	CreatedAtMilli int64  `json:"created_at_milli"`
	TermCount      int    `json:"term_count"`
	CompressedSize int64  `json:"compressed_size"`
	ContentHash    string `json:"content_hash"`
}

// Store persists compressed index snapshots in BadgerDB, keyed by a
// caller-chosen name (typically the index variant, e.g. "positional").
// Snapshots are written with the §4.5 compressed form, gzipped, and
// content-hashed so a corrupted snapshot is detected on load rather than
// silently returning wrong postings.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// NewStore wraps an already-open BadgerDB instance.
func NewStore(db *badger.DB, logger *slog.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("persist: badger db must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

// Save compresses postings and stores it under name, updating the "latest"
// pointer for that name.
func (s *Store) Save(ctx context.Context, name string, postings map[string][]index.DocumentId) (*Metadata, error) {
	if ctx == nil {
		return nil, fmt.Errorf("persist: ctx must not be nil")
	}

	var raw bytes.Buffer
	if err := WriteCompressed(&raw, postings); err != nil {
		return nil, fmt.Errorf("encoding postings: %w", err)
	}

	var compressed bytes.Buffer
	gw, err := gzip.NewWriterLevel(&compressed, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	if _, err := gw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compressing snapshot: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip writer: %w", err)
	}

	compressedData := compressed.Bytes()
	snapshotID := hashBytes([]byte(fmt.Sprintf("%s:%d", name, len(compressedData))))[:16]
	contentHash := hashBytes(compressedData)

	meta := &Metadata{
		SnapshotID:     snapshotID,
		Name:           name,
		CreatedAtMilli: time.Now().UnixMilli(),
		TermCount:      len(postings),
		CompressedSize: int64(len(compressedData)),
		ContentHash:    contentHash,
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshaling metadata: %w", err)
	}

	dataKey := keyPrefixSnap + name + ":" + snapshotID + keySuffixData
	metaKey := keyPrefixSnap + name + ":" + snapshotID + keySuffixMeta
	latestKey := keyPrefixSnap + name + keySuffixLatest

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(dataKey), compressedData); err != nil {
			return err
		}
		if err := txn.Set([]byte(metaKey), metaJSON); err != nil {
			return err
		}
		return txn.Set([]byte(latestKey), []byte(snapshotID))
	})
	if err != nil {
		return nil, fmt.Errorf("writing snapshot to badger: %w", err)
	}

	s.logger.Info("index snapshot saved",
		slog.String("name", name),
		slog.String("snapshot_id", snapshotID),
		slog.Int("term_count", meta.TermCount),
		slog.Int64("compressed_size", meta.CompressedSize),
	)
	return meta, nil
}

// LoadLatest returns the most recently saved snapshot for name.
func (s *Store) LoadLatest(ctx context.Context, name string) (map[string][]index.DocumentId, *Metadata, error) {
	if ctx == nil {
		return nil, nil, fmt.Errorf("persist: ctx must not be nil")
	}

	latestKey := keyPrefixSnap + name + keySuffixLatest
	var snapshotID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			snapshotID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, nil, fmt.Errorf("reading latest pointer for %s: %w", name, err)
	}

	return s.load(name, snapshotID)
}

func (s *Store) load(name, snapshotID string) (map[string][]index.DocumentId, *Metadata, error) {
	dataKey := keyPrefixSnap + name + ":" + snapshotID + keySuffixData
	metaKey := keyPrefixSnap + name + ":" + snapshotID + keySuffixMeta

	var compressedData, metaJSON []byte
	err := s.db.View(func(txn *badger.Txn) error {
		dataItem, err := txn.Get([]byte(dataKey))
		if err != nil {
			return fmt.Errorf("reading data for %s: %w", snapshotID, err)
		}
		if compressedData, err = dataItem.ValueCopy(nil); err != nil {
			return err
		}
		metaItem, err := txn.Get([]byte(metaKey))
		if err != nil {
			return fmt.Errorf("reading metadata for %s: %w", snapshotID, err)
		}
		metaJSON, err = metaItem.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(metaJSON, &meta); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling metadata for %s: %w", snapshotID, err)
	}
	if actual := hashBytes(compressedData); meta.ContentHash != "" && meta.ContentHash != actual {
		return nil, nil, fmt.Errorf("persist: integrity check failed for %s: expected %s, got %s", snapshotID, meta.ContentHash, actual)
	}

	gr, err := gzip.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing snapshot %s: %w", snapshotID, err)
	}
	defer gr.Close()
	raw, err := io.ReadAll(gr)
	if err != nil {
		return nil, nil, fmt.Errorf("reading decompressed snapshot %s: %w", snapshotID, err)
	}

	postings, err := ReadCompressed(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding snapshot %s: %w", snapshotID, err)
	}
	return postings, &meta, nil
}

func hashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
