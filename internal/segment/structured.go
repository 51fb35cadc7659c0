// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package segment

import (
	"encoding/xml"
	"fmt"
)

// Structured segments an FB2-like book document: a description block
// carrying a title and authors, and a body made of recursively nested
// sections whose paragraphs each become a Body run. Path components still
// become Filename runs, same as PlainText.
//
// Unlike a full FB2 binding, Structured only understands the handful of
// elements the spec's segment kinds need (book-title, author name parts,
// section/paragraph nesting) — anything else in the document is ignored
// rather than rejected.
type Structured struct {
	Path string
	Text string
}

type fb2Book struct {
	XMLName     xml.Name       `xml:"FictionBook"`
	Description fb2Description `xml:"description"`
	Bodies      []fb2Body      `xml:"body"`
}

type fb2Description struct {
	TitleInfo fb2TitleInfo `xml:"title-info"`
}

type fb2TitleInfo struct {
	BookTitle string      `xml:"book-title"`
	Authors   []fb2Author `xml:"author"`
}

type fb2Author struct {
	FirstName  string `xml:"first-name"`
	LastName   string `xml:"last-name"`
	MiddleName string `xml:"middle-name"`
	Nickname   string `xml:"nickname"`
}

type fb2Body struct {
	Sections []fb2Section `xml:"section"`
}

type fb2Section struct {
	Sections   []fb2Section `xml:"section"`
	Paragraphs []string     `xml:"p"`
}

// Segment implements Segmenter. On any XML parse error it returns the error
// so the caller can fall back to PlainText, per spec §4.2.
func (s Structured) Segment() (*Segments, error) {
	var book fb2Book
	if err := xml.Unmarshal([]byte(s.Text), &book); err != nil {
		return nil, fmt.Errorf("parsing structured document: %w", err)
	}

	segments := New()
	segments.Add(Title, book.Description.TitleInfo.BookTitle)

	for _, author := range book.Description.TitleInfo.Authors {
		addAuthor(segments, author)
	}

	for _, body := range book.Bodies {
		addSections(segments, body.Sections)
	}

	addPathComponents(segments, s.Path)

	return segments, nil
}

func addAuthor(segments *Segments, author fb2Author) {
	verbose := author.FirstName != "" || author.LastName != ""
	if verbose {
		if author.FirstName != "" {
			segments.Add(Authors, author.FirstName)
		}
		if author.LastName != "" {
			segments.Add(Authors, author.LastName)
		}
		if author.MiddleName != "" {
			segments.Add(Authors, author.MiddleName)
		}
		if author.Nickname != "" {
			segments.Add(Authors, author.Nickname)
		}
		return
	}

	if author.Nickname != "" {
		segments.Add(Authors, author.Nickname)
	}
}

func addSections(segments *Segments, sections []fb2Section) {
	for _, section := range sections {
		addSections(segments, section.Sections)
		for _, paragraph := range section.Paragraphs {
			segments.Add(Body, paragraph)
		}
	}
}
