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
	"strconv"

	"github.com/rchuk/goir/internal/index"
)

// vbEncode appends the variable-byte encoding of n (spec §4.5): base-128,
// most-significant group first, every byte's high bit clear except the
// last, which has it set. n == 0 encodes as the single byte 0x80.
func vbEncode(n int, out []byte) []byte {
	var groups []byte
	groups = append(groups, byte(n&0x7f))
	n >>= 7
	for n > 0 {
		groups = append(groups, byte(n&0x7f))
		n >>= 7
	}
	// groups is least-significant-group first; emit most-significant first
	// and flag the last emitted byte (the original least-significant group).
	for i := len(groups) - 1; i > 0; i-- {
		out = append(out, groups[i])
	}
	out = append(out, groups[0]|0x80)
	return out
}

// vbDecode reads one variable-byte integer from r.
func vbDecode(r io.ByteReader) (int, error) {
	n := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}
		n = (n << 7) | int(b&0x7f)
		if b&0x80 != 0 {
			return n, nil
		}
	}
}

// WriteCompressed writes postings as a front-coded dictionary block
// followed by a variable-byte-encoded postings block, per spec §4.5.
func WriteCompressed(w io.Writer, postings map[string][]index.DocumentId) error {
	terms := sortedKeys(postings)
	bw := bufio.NewWriter(w)

	prev := ""
	for _, term := range terms {
		pl := commonPrefixLen(prev, term)
		if _, err := bw.WriteString(strconv.Itoa(pl)); err != nil {
			return fmt.Errorf("writing dictionary block: %w", err)
		}
		if _, err := bw.WriteString(term[pl:]); err != nil {
			return fmt.Errorf("writing dictionary block: %w", err)
		}
		prev = term
	}
	if err := bw.WriteByte(0x00); err != nil {
		return fmt.Errorf("writing dictionary terminator: %w", err)
	}

	var buf []byte
	for _, term := range terms {
		ids := append([]index.DocumentId(nil), postings[term]...)
		sortIds(ids)
		buf = vbEncode(len(ids), buf[:0])
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writing postings block: %w", err)
		}
		prevID := 0
		for _, id := range ids {
			gap := int(id) - prevID
			buf = vbEncode(gap, buf[:0])
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("writing postings block: %w", err)
			}
			prevID = int(id)
		}
	}

	return bw.Flush()
}

// ReadCompressed parses a stream produced by WriteCompressed back into a
// term -> document id list mapping.
func ReadCompressed(r io.Reader) (map[string][]index.DocumentId, error) {
	br := bufio.NewReader(r)

	terms, err := readDictionary(br)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]index.DocumentId, len(terms))
	for _, term := range terms {
		count, err := vbDecode(br)
		if err != nil {
			return nil, err
		}
		ids := make([]index.DocumentId, count)
		doc := 0
		for i := 0; i < count; i++ {
			gap, err := vbDecode(br)
			if err != nil {
				return nil, err
			}
			doc += gap
			ids[i] = index.DocumentId(doc)
		}
		out[term] = ids
	}
	return out, nil
}

// readDictionary parses the front-coded dictionary block: alternating runs
// of ASCII digits (a prefix length) and non-digit, non-NUL bytes (the
// suffix), terminated by a single 0x00 byte. Terms contain only Unicode
// letters and apostrophes (never ASCII digits), so scanning for the next
// digit byte unambiguously ends a suffix run even mid-rune.
func readDictionary(br *bufio.Reader) ([]string, error) {
	var terms []string
	prev := ""
	for {
		b, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}
		if b == 0x00 {
			return terms, nil
		}
		if err := br.UnreadByte(); err != nil {
			return nil, err
		}

		plStr, err := readDigitRun(br)
		if err != nil {
			return nil, err
		}
		pl, err := strconv.Atoi(plStr)
		if err != nil || pl > len(prev) {
			return nil, fmt.Errorf("%w: invalid prefix length %q", ErrCorruptDictionary, plStr)
		}

		suffix, err := readSuffixRun(br)
		if err != nil {
			return nil, err
		}

		term := prev[:pl] + suffix
		terms = append(terms, term)
		prev = term
	}
}

func readDigitRun(br *bufio.Reader) (string, error) {
	var digits []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}
		if b < '0' || b > '9' {
			if err := br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return "", fmt.Errorf("%w: expected prefix length digits", ErrCorruptDictionary)
	}
	return string(digits), nil
}

func readSuffixRun(br *bufio.Reader) (string, error) {
	var suffix []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTruncatedStream, err)
		}
		if b == 0x00 || (b >= '0' && b <= '9') {
			if err := br.UnreadByte(); err != nil {
				return "", err
			}
			break
		}
		suffix = append(suffix, b)
	}
	return string(suffix), nil
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func sortIds(ids []index.DocumentId) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
