// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package segment

import "strings"

// For dispatches to the right Segmenter based on the file extension in
// path: ".fb2" gets the structured segmenter, everything else the
// plain-text one. If the structured segmenter fails to parse, For falls
// back to plain-text so a malformed document still gets indexed.
func For(path, text string) (*Segments, error) {
	if strings.EqualFold(extOf(path), ".fb2") {
		segments, err := (Structured{Path: path, Text: text}).Segment()
		if err == nil {
			return segments, nil
		}
	}

	return (PlainText{Path: path, Text: text}).Segment()
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
