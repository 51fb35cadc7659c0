// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"

	"github.com/rchuk/goir/internal/build"
	"github.com/rchuk/goir/internal/config"
	"github.com/rchuk/goir/internal/engine"
)

// gcsBucket, when non-empty, redirects corpus loading to Google Cloud
// Storage: BASE_PATH is then read as an object-name prefix under this
// bucket instead of a local directory. Shared across the root command and
// its build/query subcommands via a persistent flag.
var gcsBucket string

func newRootCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "goir [BASE_PATH] [FILE_LIMIT]",
		Short: "In-memory inverted index builder and query REPL",
		Long: "goir indexes a text corpus in memory and answers Boolean+proximity\n" +
			"queries against it. With no subcommand it builds BASE_PATH and starts\n" +
			"an interactive REPL.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath, limit, err := parsePositionalArgs(args)
			if err != nil {
				return err
			}
			e, err := loadEngine(cmd.Context(), basePath, limit)
			if err != nil {
				return err
			}
			return runREPL(cmd, e, basePath, variant)
		},
	}

	cfg, err := config.Default()
	defaultVariant := config.VariantPositional
	if err == nil {
		defaultVariant = cfg.DefaultVariant
	}
	cmd.PersistentFlags().StringVar(&variant, "variant", defaultVariant,
		"index backend to query: posting, positional, bigram, segmented, tfidf")
	cmd.PersistentFlags().StringVar(&gcsBucket, "gcs-bucket", "",
		"read the corpus from this Google Cloud Storage bucket instead of local disk; BASE_PATH is then an object-name prefix")

	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newQueryCommand())

	return cmd
}

// parsePositionalArgs interprets the spec §6 CLI contract
// `program [BASE_PATH [FILE_LIMIT]]`.
func parsePositionalArgs(args []string) (basePath string, limit int, err error) {
	cfg, cfgErr := config.Default()
	basePath = "data/shakespeare"
	if cfgErr == nil {
		basePath = cfg.BasePath
	}

	if len(args) >= 1 {
		basePath = args[0]
	}
	if len(args) >= 2 {
		limit, err = strconv.Atoi(args[1])
		if err != nil || limit < 0 {
			return "", 0, fmt.Errorf("FILE_LIMIT must be a non-negative integer, got %q", args[1])
		}
	}
	return basePath, limit, nil
}

// reportCorpusStatus writes the standard "indexed N documents" line, or the
// spec-mandated literal "no files processed" when the corpus (after
// unreadable/invalid/empty files are skipped) contains zero documents — see
// spec §8 scenario #4.
func reportCorpusStatus(out io.Writer, basePath string, count int) {
	if count == 0 {
		fmt.Fprintln(out, "no files processed")
		return
	}
	fmt.Fprintf(out, "indexed %d documents from %s\n", count, basePath)
}

// loadEngine builds the full corpus at basePath (capped at limit files, 0
// meaning unlimited) and wraps the result for querying. When --gcs-bucket is
// set, basePath is read as an object-name prefix in that bucket instead of
// a local directory.
func loadEngine(ctx context.Context, basePath string, limit int) (*engine.Engine, error) {
	var provider build.FileProvider
	if gcsBucket != "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating GCS client: %w", err)
		}
		provider = build.NewGCSFileProvider(ctx, client, gcsBucket, basePath)
	} else {
		provider = build.NewOSFileProvider(basePath)
	}
	provider = build.WithFileLimit(provider, limit)
	result, err := build.NewBuilder(provider, slog.Default()).Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("building index at %s: %w", basePath, err)
	}

	e := engine.New(result)

	cfg, cfgErr := config.Default()
	k := 3
	if cfgErr == nil {
		k = cfg.LeaderFollowerK
	}
	n := e.DocumentCount()
	if n > 0 {
		e.Preprocess(k)
	}
	return e, nil
}
