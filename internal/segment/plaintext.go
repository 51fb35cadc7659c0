// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package segment

import "strings"

// PlainText segments a document as a single Body run containing the whole
// text, plus one Filename run per path component. It is the fallback
// segmenter for any document the structured segmenter doesn't recognize or
// fails to parse.
type PlainText struct {
	Path string
	Text string
}

// Segment implements Segmenter.
func (p PlainText) Segment() (*Segments, error) {
	segments := New()
	segments.Add(Body, p.Text)
	addPathComponents(segments, p.Path)
	return segments, nil
}

func addPathComponents(segments *Segments, path string) {
	for _, component := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		segments.Add(Filename, component)
	}
}
