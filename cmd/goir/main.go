// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Command goir builds and queries an in-memory inverted index over a text
// corpus, exposing five pluggable index backends (posting, positional,
// bigram, segmented, tf-idf) behind one Boolean+proximity query language.
//
// Usage:
//
//	goir [BASE_PATH [FILE_LIMIT]]
//	goir build data/shakespeare
//	goir query data/shakespeare '"to be" | tomorrow'
//
// With no subcommand, goir builds BASE_PATH (default "data/shakespeare",
// optionally capped at FILE_LIMIT files) and drops into an interactive
// REPL. Type a query to search, `s` to switch the active index backend,
// `q` to exit.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
