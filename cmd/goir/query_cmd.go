// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rchuk/goir/internal/config"
)

func newQueryCommand() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:   "query BASE_PATH QUERY...",
		Short: "Build the index at BASE_PATH and run a single query, for piping or scripting",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath := args[0]
			queryText := strings.Join(args[1:], " ")

			e, err := loadEngine(cmd.Context(), basePath, 0)
			if err != nil {
				return err
			}
			if e.DocumentCount() == 0 {
				reportCorpusStatus(cmd.OutOrStdout(), basePath, 0)
				return nil
			}

			cfg, cfgErr := config.Default()
			leaderK := 3
			if cfgErr == nil {
				leaderK = cfg.LeaderFollowerK
			}

			hits, err := e.Query(variant, queryText, leaderK)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, hit := range hits {
				if hit.Score != 0 {
					fmt.Fprintf(out, "%s\t%.4f\n", hit.Path, hit.Score)
				} else {
					fmt.Fprintln(out, hit.Path)
				}
			}
			return nil
		},
	}

	cfg, err := config.Default()
	defaultVariant := config.VariantPositional
	if err == nil {
		defaultVariant = cfg.DefaultVariant
	}
	cmd.Flags().StringVar(&variant, "variant", defaultVariant,
		"index backend to query: posting, positional, bigram, segmented, tfidf")

	return cmd
}
