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

// Package indent provides an io.Writer that prefixes every line written to
// it with a fixed string, used by the urn tool's tree format to nest
// printed trees.
package indent

import "bytes"

// Writer wraps an io.Writer, inserting prefix immediately before the first
// byte of every line — including blank lines — but never after the final
// byte written if nothing follows it.
type Writer struct {
	w      Interface
	prefix []byte
	atBOL  bool
}

// Interface is the subset of io.Writer Writer needs; named separately so
// this package does not have to import io just for the one method.
type Interface interface {
	Write(p []byte) (int, error)
}

// NewWriter returns a Writer that indents everything written to it with
// prefix before handing it to w.
func NewWriter(w Interface, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), atBOL: true}
}

// Write implements io.Writer. Its return value counts bytes of p
// represented in what the underlying Writer accepted, not bytes actually
// sent to the underlying Writer (which includes the inserted prefixes).
func (iw *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var out []byte
	fromInput := make([]bool, 0, len(p)+len(iw.prefix))
	for _, c := range p {
		if iw.atBOL {
			out = append(out, iw.prefix...)
			for range iw.prefix {
				fromInput = append(fromInput, false)
			}
			iw.atBOL = false
		}
		out = append(out, c)
		fromInput = append(fromInput, true)
		if c == '\n' {
			iw.atBOL = true
		}
	}
	if len(out) == 0 {
		return 0, nil
	}
	written, err := iw.w.Write(out)
	if written > len(out) {
		written = len(out)
	}
	n := 0
	for i := 0; i < written; i++ {
		if fromInput[i] {
			n++
		}
	}
	return n, err
}

// Bytes returns in with prefix inserted before every line.
func Bytes(prefix, in []byte) []byte {
	var buf bytes.Buffer
	w := NewWriter(&buf, string(prefix))
	w.Write(in)
	return buf.Bytes()
}

// String returns in with prefix inserted before every line.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}
