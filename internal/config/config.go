// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package config loads goir's YAML configuration. Default returns the
// embedded default document; Load parses any YAML bytes. The CLI has no
// option for supplying a config file and always uses Default.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var structValidator = validator.New()

//go:embed default_config.yaml
var defaultConfigYAML []byte

// Variant names accepted by default_variant / the CLI's --variant flag.
const (
	VariantPosting    = "posting"
	VariantPositional = "positional"
	VariantBigram     = "bigram"
	VariantSegmented  = "segmented"
	VariantTFIDF      = "tfidf"
)

// Config holds the ambient settings the CLI and builder read.
//
// Thread Safety: immutable after Load returns; safe for concurrent use.
type Config struct {
	// WorkerCount is the configured worker pool size, 0 meaning auto. It is
	// parsed and validated only: the builder does not read it and always
	// sizes its pool as max(1, cpus-1) (build.workerCount).
	WorkerCount int `yaml:"worker_count" validate:"gte=0"`

	// BasePath is the default corpus directory for the build command.
	BasePath string `yaml:"base_path" validate:"required"`

	// LeaderFollowerK is the default k passed to TFIDFIndex.Preprocess.
	LeaderFollowerK int `yaml:"leader_follower_k" validate:"gt=0"`

	// DefaultVariant selects which index backend the REPL starts with.
	DefaultVariant string `yaml:"default_variant" validate:"oneof=posting positional bigram segmented tfidf"`
}

var (
	mu          sync.RWMutex
	once        sync.Once
	cached      *Config
	cachedLoadErr error
)

// Default returns the embedded default configuration, loaded once and
// cached for subsequent calls.
func Default() (*Config, error) {
	mu.RLock()
	if cached != nil || cachedLoadErr != nil {
		cfg, err := cached, cachedLoadErr
		mu.RUnlock()
		return cfg, err
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	once.Do(func() {
		cached, cachedLoadErr = Load(defaultConfigYAML)
	})
	return cached, cachedLoadErr
}

// Load parses and validates a Config from YAML bytes, applying defaults for
// zero-valued fields.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}

	if cfg.BasePath == "" {
		cfg.BasePath = "data/shakespeare"
	}
	if cfg.LeaderFollowerK <= 0 {
		cfg.LeaderFollowerK = 3
	}
	if cfg.DefaultVariant == "" {
		cfg.DefaultVariant = VariantPositional
	}
	if cfg.WorkerCount < 0 {
		cfg.WorkerCount = 0
	}

	if err := structValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	slog.Debug("config loaded",
		slog.String("base_path", cfg.BasePath),
		slog.String("default_variant", cfg.DefaultVariant),
		slog.Int("leader_follower_k", cfg.LeaderFollowerK),
	)
	return &cfg, nil
}
