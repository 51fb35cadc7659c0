// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package build implements the parallel indexing pipeline of spec §4.6: a
// worker pool reads documents, segments and tokenizes them, and populates
// per-document partial indexes that are merged by an associative,
// commutative reduction.
package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileProvider enumerates and opens the documents to index. The default
// implementation walks an OS directory tree; a GCS-backed provider exists
// too, and tests supply an in-memory provider.
type FileProvider interface {
	// List returns every file path under the provider's root, in no
	// particular order.
	List() ([]string, error)
	// Read returns the contents of path. An unreadable file returns an
	// error; the builder skips it and keeps going. Read does not check
	// UTF-8 validity: the builder checks and skips non-UTF-8 text itself.
	Read(path string) (string, error)
}

// osFileProvider walks a directory on the local filesystem.
type osFileProvider struct {
	root string
}

// NewOSFileProvider returns a FileProvider rooted at dir.
func NewOSFileProvider(dir string) FileProvider {
	return &osFileProvider{root: dir}
}

func (p *osFileProvider) List() ([]string, error) {
	var paths []string
	err := filepath.Walk(p.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", p.root, err)
	}
	return paths, nil
}

func (p *osFileProvider) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// limitedProvider caps List to at most limit paths, in whatever order the
// wrapped provider returns them. A limit of 0 means unlimited.
type limitedProvider struct {
	inner FileProvider
	limit int
}

// WithFileLimit wraps provider so Build indexes at most limit files (spec
// §6's FILE_LIMIT argument). limit <= 0 means unlimited.
func WithFileLimit(provider FileProvider, limit int) FileProvider {
	if limit <= 0 {
		return provider
	}
	return &limitedProvider{inner: provider, limit: limit}
}

func (p *limitedProvider) List() ([]string, error) {
	paths, err := p.inner.List()
	if err != nil {
		return nil, err
	}
	if len(paths) > p.limit {
		paths = paths[:p.limit]
	}
	return paths, nil
}

func (p *limitedProvider) Read(path string) (string, error) {
	return p.inner.Read(path)
}
