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

import (
	"strings"
	"testing"

	"github.com/openconfig/gnmi/errdiff"
)

func lexParse(t *testing.T, src string) (*Node, *Recorder) {
	t.Helper()
	buf := NewBuffer(src, "<test>")
	sink := NewRecorder()
	toks, err := Lex(buf, sink)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	root, err := Parse(toks, sink)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return root, sink
}

// TestEndToEndDefun is scenario 1: a single top-level list of length 4.
func TestEndToEndDefun(t *testing.T) {
	root, _ := lexParse(t, "(defun f (x) (* x 2))")
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level forms, want 1", len(root.Children))
	}
	defn := root.Children[0]
	if defn.Kind != KindList || len(defn.Children) != 4 {
		t.Fatalf("defn = %v, want a 4-element list", defn)
	}
	wantKinds := []Kind{KindSymbol, KindSymbol, KindList, KindList}
	for i, k := range wantKinds {
		if defn.Children[i].Kind != k {
			t.Errorf("child %d kind = %v, want %v", i, defn.Children[i].Kind, k)
		}
	}
	if defn.Children[0].Contents != "defun" || defn.Children[1].Contents != "f" {
		t.Errorf("got symbols %q %q, want defun f", defn.Children[0].Contents, defn.Children[1].Contents)
	}
	args := defn.Children[2]
	if len(args.Children) != 1 || args.Children[0].Contents != "x" {
		t.Errorf("args = %v, want [x]", args)
	}
	body := defn.Children[3]
	if len(body.Children) != 3 || body.Children[0].Contents != "*" || body.Children[2].Contents != "2" {
		t.Errorf("body = %v, want [* x 2]", body)
	}
}

// TestEndToEndQuote is scenario 2.
func TestEndToEndQuote(t *testing.T) {
	root, _ := lexParse(t, "'a")
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level forms, want 1", len(root.Children))
	}
	tag, datum, ok := root.Children[0].ReaderMacro()
	if !ok || tag != "quote" || datum.Contents != "a" {
		t.Errorf("got tag=%q ok=%v datum=%v, want quote/a", tag, ok, datum)
	}
}

// TestEndToEndUnquoteSplice is scenario 3.
func TestEndToEndUnquoteSplice(t *testing.T) {
	root, _ := lexParse(t, ",@xs")
	tag, datum, ok := root.Children[0].ReaderMacro()
	if !ok || tag != "unquote-splice" || datum.Contents != "xs" {
		t.Errorf("got tag=%q ok=%v datum=%v, want unquote-splice/xs", tag, ok, datum)
	}
}

// TestEndToEndBracketSpecies is scenario 4: three nested lists with
// preserved open lexemes.
func TestEndToEndBracketSpecies(t *testing.T) {
	root, _ := lexParse(t, "(a [b {c}])")
	outer := root.Children[0]
	if outer.Open != '(' || outer.Close != ')' {
		t.Errorf("outer open/close = %c/%c, want (/)", outer.Open, outer.Close)
	}
	mid := outer.Children[1]
	if mid.Open != '[' || mid.Close != ']' {
		t.Errorf("mid open/close = %c/%c, want [/]", mid.Open, mid.Close)
	}
	inner := mid.Children[1]
	if inner.Open != '{' || inner.Close != '}' {
		t.Errorf("inner open/close = %c/%c, want {/}", inner.Open, inner.Close)
	}
}

// TestEndToEndUnterminatedList is scenario 5.
func TestEndToEndUnterminatedList(t *testing.T) {
	buf := NewBuffer("(a (b)", "<test>")
	sink := NewRecorder()
	toks, err := Lex(buf, sink)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if _, err := Parse(toks, sink); err == nil {
		t.Fatal("Parse of an unterminated list unexpectedly succeeded")
	}
	errs := sink.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d fatal diagnostics, want 1", len(errs))
	}
	if len(errs[0].Annotations) != 2 {
		t.Fatalf("got %d annotations, want 2 (outer open, eof)", len(errs[0].Annotations))
	}
}

// TestEndToEndBracketMismatch is scenario 6.
func TestEndToEndBracketMismatch(t *testing.T) {
	buf := NewBuffer("(a ])", "<test>")
	sink := NewRecorder()
	toks, err := Lex(buf, sink)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	_, err = Parse(toks, sink)
	if diff := errdiff.Substring(err, "bracket species mismatch"); diff != "" {
		t.Error(diff)
	}
	errs := sink.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d fatal diagnostics, want 1", len(errs))
	}
	msg := errs[0].Message
	if !strings.Contains(msg, "')'") || !strings.Contains(msg, "']'") {
		t.Errorf("message %q does not mention both expected ')' and found ']'", msg)
	}
}

// TestEndToEndUnterminatedString is scenario 7.
func TestEndToEndUnterminatedString(t *testing.T) {
	buf := NewBuffer(`"unterminated`, "<test>")
	sink := NewRecorder()
	if _, err := Lex(buf, sink); err == nil {
		t.Fatal("Lex of an unterminated string unexpectedly succeeded")
	}
}

// TestEndToEndIndentWarning is scenario 8: parses successfully with exactly
// one indent warning, for (c) against (b) — not against the atom a.
func TestEndToEndIndentWarning(t *testing.T) {
	root, sink := lexParse(t, "(a\n  (b)\n   (c))")
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level forms, want 1", len(root.Children))
	}
	var warnings int
	for _, d := range sink.Diagnostics {
		if !d.Fatal {
			warnings++
		}
	}
	if warnings != 1 {
		t.Errorf("got %d warnings, want exactly 1", warnings)
	}
}

// TestEndToEndComment is scenario 9.
func TestEndToEndComment(t *testing.T) {
	root, _ := lexParse(t, "; just a comment\n42")
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level forms, want 1", len(root.Children))
	}
	n := root.Children[0]
	if n.Kind != KindNumber || n.Contents != "42" {
		t.Errorf("got %v, want number 42", n)
	}
}

// TestEndToEndNegativeNumberVsSymbol is scenario 10.
func TestEndToEndNegativeNumberVsSymbol(t *testing.T) {
	root, _ := lexParse(t, "(-3 -x)")
	list := root.Children[0]
	if list.Children[0].Kind != KindNumber || list.Children[0].Contents != "-3" {
		t.Errorf("first child = %v, want number -3", list.Children[0])
	}
	if list.Children[1].Kind != KindSymbol || list.Children[1].Contents != "-x" {
		t.Errorf("second child = %v, want symbol -x", list.Children[1])
	}
}

// TestReaderMacroStackedUnwind exercises ''x: two reader macros wrapping one
// datum, confirming unwind pops both auto-close frames transitively.
func TestReaderMacroStackedUnwind(t *testing.T) {
	root, _ := lexParse(t, "''x")
	outerTag, outerDatum, ok := root.Children[0].ReaderMacro()
	if !ok || outerTag != "quote" {
		t.Fatalf("outer ReaderMacro: tag=%q ok=%v", outerTag, ok)
	}
	innerTag, innerDatum, ok := outerDatum.ReaderMacro()
	if !ok || innerTag != "quote" {
		t.Fatalf("inner ReaderMacro: tag=%q ok=%v", innerTag, ok)
	}
	if innerDatum.Kind != KindSymbol || innerDatum.Contents != "x" {
		t.Errorf("innermost datum = %v, want symbol x", innerDatum)
	}
}

// TestReaderMacroInsideList confirms a reader macro's auto-close unwinds
// only up to the enclosing real list, not past it: 'a followed by more
// siblings in the same list must all land as siblings, not be swallowed.
func TestReaderMacroInsideList(t *testing.T) {
	root, _ := lexParse(t, "('a b)")
	list := root.Children[0]
	if len(list.Children) != 2 {
		t.Fatalf("got %d children, want 2 ('a and b)", len(list.Children))
	}
	tag, datum, ok := list.Children[0].ReaderMacro()
	if !ok || tag != "quote" || datum.Contents != "a" {
		t.Errorf("first child = tag=%q ok=%v datum=%v, want quote/a", tag, ok, datum)
	}
	if list.Children[1].Contents != "b" {
		t.Errorf("second child = %v, want symbol b", list.Children[1])
	}
}

// TestStrayClose confirms a close with an empty stack is reported and
// fatal, not silently ignored.
func TestStrayClose(t *testing.T) {
	buf := NewBuffer(")", "<test>")
	sink := NewRecorder()
	toks, err := Lex(buf, sink)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if _, err := Parse(toks, sink); err == nil {
		t.Fatal("Parse of a stray close unexpectedly succeeded")
	}
}

// TestCloseInsideReaderMacro confirms a bracket close cannot terminate a
// reader macro's auto-close frame — only a datum can.
func TestCloseInsideReaderMacro(t *testing.T) {
	buf := NewBuffer("(')", "<test>")
	sink := NewRecorder()
	toks, err := Lex(buf, sink)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if _, err := Parse(toks, sink); err == nil {
		t.Fatal("Parse of a close swallowing an open reader macro unexpectedly succeeded")
	}
	errs := sink.Errors()
	if len(errs) != 1 || len(errs[0].Annotations) != 2 {
		t.Fatalf("got %v, want one fatal diagnostic with 2 annotations", errs)
	}
}

// TestInvariantRootHasNoBrackets is Invariant 5 for the root: the
// root is never bracket-delimited, so its Open/Close stay zero.
func TestInvariantRootHasNoBrackets(t *testing.T) {
	root, _ := lexParse(t, "(a)")
	if root.Open != 0 || root.Close != 0 {
		t.Errorf("root Open/Close = %c/%c, want zero", root.Open, root.Close)
	}
}

// TestIdempotence is the idempotence property: re-lexing and re-parsing the
// contents of a list node yields a structurally equal subtree.
func TestIdempotence(t *testing.T) {
	root, _ := lexParse(t, "(defun f (x) (* x 2))")
	list := root.Children[0]
	src := list.Range.Contents()
	reparsed, _ := lexParse(t, src)
	if len(reparsed.Children) != 1 {
		t.Fatalf("re-parse produced %d top-level forms, want 1", len(reparsed.Children))
	}
	if !structurallyEqual(t, list, reparsed.Children[0]) {
		t.Errorf("re-parsed subtree is not structurally equal to the original")
	}
}

func structurallyEqual(t *testing.T, a, b *Node) bool {
	t.Helper()
	if a.Kind != b.Kind || a.Contents != b.Contents || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !structurallyEqual(t, a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// TestRoundTrip is the round-trip property: concatenating token contents
// with whitespace and comments dropped reconstructs the input minus
// whitespace and comments.
func TestRoundTrip(t *testing.T) {
	src := "(a  b\n ;comment\n c)"
	buf := NewBuffer(src, "<test>")
	sink := NewRecorder()
	toks, err := Lex(buf, sink)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	var got strings.Builder
	for _, tok := range toks {
		if tok.Code == EOF {
			continue
		}
		got.WriteString(tok.Contents)
	}
	if want := "(abc)"; got.String() != want {
		t.Errorf("round-trip = %q, want %q", got.String(), want)
	}
}
