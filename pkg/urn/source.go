// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package urn

import "strings"

// sentinel is returned by Buffer.At for an out-of-range offset. It is not a
// valid byte of urn source (urn source is restricted to the printable ASCII
// the lexer understands plus whitespace), so it cannot be confused with real
// content.
const sentinel byte = 0

// A Buffer owns a source file's text and a precomputed index of line start
// offsets, so that diagnostics can print the line a Range falls on without
// rescanning the text.
type Buffer struct {
	name  string
	text  string
	lines []int // lines[i] is the 0-based byte offset of line i+1's first byte
}

// NewBuffer returns a Buffer over text, identified in diagnostics by name
// (typically the path the text was read from, or "<stdin>").
func NewBuffer(text, name string) *Buffer {
	b := &Buffer{name: name, text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
	return b
}

// Name returns the display name this buffer was constructed with.
func (b *Buffer) Name() string { return b.name }

// Text returns the buffer's full source text.
func (b *Buffer) Text() string { return b.text }

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.text) }

// At returns the byte at the 1-based offset off, or sentinel if off is
// outside [1, Len()].
func (b *Buffer) At(off int) byte {
	if off < 1 || off > len(b.text) {
		return sentinel
	}
	return b.text[off-1]
}

// Line returns the text of the 1-based line n, without its trailing
// newline. It returns "" for a line number outside the buffer.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	start := b.lines[n-1]
	end := len(b.text)
	if n < len(b.lines) {
		end = b.lines[n]
	}
	return strings.TrimSuffix(b.text[start:end], "\n")
}

// Position is a point in a Buffer: a 1-based line and column, and a 1-based
// absolute byte offset into the buffer's text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Range is a half-open span [Start, Finish) of Positions within a Buffer,
// carrying the source's display name and a borrowed handle to the Buffer so
// diagnostics can print the line the range falls on. Finish points just past
// the last byte the range covers.
type Range struct {
	Start, Finish Position
	Name          string
	buf           *Buffer
}

// Contents returns the substring of the backing buffer the range covers, or
// "" if the range was not constructed from a buffer (e.g. a synthetic
// zero-width range).
func (r Range) Contents() string {
	if r.buf == nil || r.Start.Offset < 1 || r.Finish.Offset-1 > len(r.buf.text) {
		return ""
	}
	return r.buf.text[r.Start.Offset-1 : r.Finish.Offset-1]
}

// Line returns the full source line the range's start falls on, for
// diagnostic printing.
func (r Range) Line() string {
	if r.buf == nil {
		return ""
	}
	return r.buf.Line(r.Start.Line)
}

// span returns the Range spanning from r's start to other's finish. Both
// must share the same buffer and name; span is used to grow a list's range
// as its open and close brackets are discovered.
func span(start, finish Range) Range {
	return Range{Start: start.Start, Finish: finish.Finish, Name: start.Name, buf: start.buf}
}
