// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build [BASE_PATH] [FILE_LIMIT]",
		Short: "Build the index and report corpus statistics without entering the REPL",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath, limit, err := parsePositionalArgs(args)
			if err != nil {
				return err
			}
			e, err := loadEngine(cmd.Context(), basePath, limit)
			if err != nil {
				return err
			}
			reportCorpusStatus(cmd.OutOrStdout(), basePath, e.DocumentCount())
			return nil
		},
	}
}
