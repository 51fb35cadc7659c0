// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package persist

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rchuk/goir/internal/index"
)

// WriteTextual writes postings in the plain form of spec §4.5: one line per
// term, "term : docId(, docId)*", terms in byte-sorted order.
func WriteTextual(w io.Writer, postings map[string][]index.DocumentId) error {
	terms := sortedKeys(postings)
	bw := bufio.NewWriter(w)
	for _, term := range terms {
		ids := postings[term]
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = strconv.FormatUint(uint64(id), 10)
		}
		if _, err := fmt.Fprintf(bw, "%s : %s\n", term, strings.Join(parts, ", ")); err != nil {
			return fmt.Errorf("writing textual postings: %w", err)
		}
	}
	return bw.Flush()
}

// ReadTextual parses the textual form back into a term -> document id list
// mapping.
func ReadTextual(r io.Reader) (map[string][]index.DocumentId, error) {
	out := make(map[string][]index.DocumentId)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		term, ids, err := parseTextualLine(line)
		if err != nil {
			return nil, err
		}
		out[term] = ids
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading textual postings: %w", err)
	}
	return out, nil
}

func parseTextualLine(line string) (string, []index.DocumentId, error) {
	sep := strings.Index(line, ":")
	if sep < 0 {
		return "", nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	term := strings.TrimSpace(line[:sep])
	rest := strings.TrimSpace(line[sep+1:])
	if term == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	if rest == "" {
		return term, nil, nil
	}
	fields := strings.Split(rest, ",")
	ids := make([]index.DocumentId, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q: %v", ErrMalformedLine, line, err)
		}
		ids = append(ids, index.DocumentId(n))
	}
	return term, ids, nil
}

func sortedKeys(m map[string][]index.DocumentId) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
