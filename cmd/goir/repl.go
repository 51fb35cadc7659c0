// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rchuk/goir/internal/config"
	"github.com/rchuk/goir/internal/engine"
)

// variantCycle is the fixed order `s` steps through in the REPL.
var variantCycle = []string{
	config.VariantPosting,
	config.VariantPositional,
	config.VariantBigram,
	config.VariantSegmented,
	config.VariantTFIDF,
}

// runREPL implements spec §6's interactive loop: a line of input is a
// query unless it is exactly `q` (exit) or `s` (switch backend). Query
// errors are printed and the loop continues rather than exiting.
func runREPL(cmd *cobra.Command, e *engine.Engine, basePath, variant string) error {
	cfg, err := config.Default()
	leaderK := 3
	if err == nil {
		leaderK = cfg.LeaderFollowerK
	}

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(in)
	interactive := isTerminal(in)

	if e.DocumentCount() == 0 {
		reportCorpusStatus(out, basePath, 0)
		return nil
	}

	fmt.Fprintf(out, "goir ready: %d documents indexed, backend=%s\n", e.DocumentCount(), variant)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q":
			return nil
		case "s":
			variant = nextVariant(variant)
			fmt.Fprintf(out, "switched to backend: %s\n", variant)
			continue
		}

		hits, err := e.Query(variant, line, leaderK)
		if err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		if len(hits) == 0 {
			fmt.Fprintln(out, "(no matches)")
			continue
		}
		for _, hit := range hits {
			if hit.Score != 0 {
				fmt.Fprintf(out, "%s\t%.4f\n", hit.Path, hit.Score)
			} else {
				fmt.Fprintln(out, hit.Path)
			}
		}
	}
}

// isTerminal reports whether in is an interactive terminal, so the REPL can
// skip printing "> " prompts into a pipe or redirected file.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func nextVariant(current string) string {
	for i, v := range variantCycle {
		if v == current {
			return variantCycle[(i+1)%len(variantCycle)]
		}
	}
	return variantCycle[0]
}
