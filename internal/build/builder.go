// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package build

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rchuk/goir/internal/index"
	"github.com/rchuk/goir/internal/metrics"
	"github.com/rchuk/goir/internal/segment"
)

// Result is the fully merged index built from a corpus: one populated
// instance of every variant, plus the document registry needed to resolve
// ids back to paths and the aggregated lexer stats.
type Result struct {
	// BuildID identifies this build run for log correlation, the same role
	// the teacher's egress guard gives a per-request uuid.
	BuildID  string
	Registry *index.DocumentRegistry
	Partial  *Partial
}

// Builder runs the parallel indexing pipeline of spec §4.6: a worker pool
// of size max(1, cpus-1) segments and tokenizes each document, populating
// one partial index per document, reduced by an associative, commutative
// merge.
type Builder struct {
	provider FileProvider
	logger   *slog.Logger
}

// NewBuilder returns a Builder reading documents from provider.
func NewBuilder(provider FileProvider, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{provider: provider, logger: logger}
}

// workerCount returns max(1, cpus-1), per spec §4.6.
func workerCount() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		return 1
	}
	return n
}

// Build enumerates the provider's files, registers one DocumentId per file
// that opens, is non-empty and is valid UTF-8, and indexes those documents
// in parallel. Files that fail to open or aren't UTF-8 are skipped and
// logged, not fatal; empty files are skipped silently.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	buildID := uuid.New().String()
	start := time.Now()
	paths, err := b.provider.List()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	registry := index.NewDocumentRegistry()
	type job struct {
		doc  index.DocumentId
		path string
		text string
	}
	var jobs []job
	for _, path := range paths {
		text, err := b.provider.Read(path)
		if err != nil {
			b.logger.Warn("skipping document", slog.String("build_id", buildID), slog.String("path", path), slog.Any("error", fmt.Errorf("%w: %v", ErrFileSkipped, err)))
			metrics.RecordDocumentSkipped("unreadable")
			continue
		}
		if text == "" {
			continue
		}
		if !utf8.ValidString(text) {
			b.logger.Warn("skipping document", slog.String("build_id", buildID), slog.String("path", path), slog.Any("error", fmt.Errorf("%w: not valid UTF-8", ErrFileSkipped)))
			metrics.RecordDocumentSkipped("invalid_utf8")
			continue
		}
		doc := registry.Register(path)
		jobs = append(jobs, job{doc: doc, path: path, text: text})
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workerCount())
	resultCh := make(chan *Partial, len(jobs))

	for _, j := range jobs {
		j := j
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			segments, err := segment.For(j.path, j.text)
			if err != nil {
				return fmt.Errorf("segmenting %s: %w", j.path, err)
			}

			partial := newPartial()
			indexDocument(partial, j.doc, segments)
			resultCh <- partial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	close(resultCh)

	merged := newPartial()
	for partial := range resultCh {
		merged.merge(partial)
	}

	for _, variant := range []string{"posting", "positional", "bigram", "segmented", "tfidf"} {
		for range jobs {
			metrics.RecordDocumentIndexed(variant)
		}
	}
	metrics.RecordBuildDuration(time.Since(start).Seconds())

	b.logger.Info("index build complete",
		slog.String("build_id", buildID),
		slog.Int("documents", len(jobs)),
		slog.Int("characters_read", merged.Stats.CharactersRead),
	)

	return &Result{BuildID: buildID, Registry: registry, Partial: merged}, nil
}
