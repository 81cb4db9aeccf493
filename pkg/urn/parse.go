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

// This file implements Parse, which folds a flat Token list into a tree of
// Nodes. See SPEC_FULL.md §4.E for the state machine;
// the comments below track that state machine section by section.

// macroName maps a reader-macro Code to the synthetic leading symbol name
// its list is seeded with.
func macroName(c Code) string {
	switch c {
	case Quote:
		return "quote"
	case Quasiquote:
		return "quasiquote"
	case Unquote:
		return "unquote"
	case UnquoteSplice:
		return "unquote-splice"
	}
	return ""
}

// frame is the in-progress counterpart of a list Node: the transient state
// (auto-close, the token that opened it) that Parse needs while a list is
// still accepting children, but which a finished Node never carries. These
// are kept off Node itself and are discarded when the frame is popped.
type frame struct {
	list      *Node
	autoClose bool
	openTok   *Token // nil only for the root frame
}

type parser struct {
	sink  Sink
	head  *frame
	stack []*frame
}

// Parse folds tokens, which must end in exactly one EOF token, into a
// single root list node containing the top-level forms. It reports bracket
// mismatches, stray closes, and unterminated lists via sink and returns a
// non-nil err in those cases; no partial tree is returned.
func Parse(tokens []*Token, sink Sink) (root *Node, err error) {
	defer func() {
		if err != nil {
			root = nil
		}
	}()
	defer recoverAbort(&err)
	root = &Node{Kind: KindList}
	p := &parser{sink: sink, head: &frame{list: root}}
	for _, tok := range tokens {
		p.step(tok)
	}
	return root, nil
}

func (p *parser) step(tok *Token) {
	switch tok.Code {
	case Symbol, Key, String, Number:
		p.appendAtom(tok)
		p.unwind(tok)
	case Open:
		p.indentCheck(tok)
		p.push(tok)
	case Close:
		p.handleClose(tok)
	case Quote, Quasiquote, Unquote, UnquoteSplice:
		p.handleReaderMacro(tok)
	case EOF:
		p.handleEOF(tok)
	}
}

func (p *parser) link(n *Node) {
	n.parent = p.head.list
	p.head.list.Children = append(p.head.list.Children, n)
}

func (p *parser) appendAtom(tok *Token) {
	kind := map[Code]Kind{Symbol: KindSymbol, Key: KindKey, String: KindString, Number: KindNumber}[tok.Code]
	p.link(&Node{Kind: kind, Contents: tok.Contents, Range: tok.Range})
}

// push opens a new list for an Open token: tok's bracket species becomes
// the new list's Open/Close, and the new list is appended as a child of the
// current head before the head changes.
func (p *parser) push(tok *Token) {
	list := &Node{Kind: KindList, Open: tok.Contents[0], Close: tok.Match, Range: Range{Start: tok.Range.Start, Name: tok.Range.Name, buf: tok.Range.buf}}
	p.link(list)
	p.stack = append(p.stack, p.head)
	p.head = &frame{list: list, openTok: tok}
}

// pop restores the previous head. The completed list was already linked
// into its parent's Children at push time, so nothing moves here — only
// the frame (and its transients) is discarded.
func (p *parser) pop() {
	n := len(p.stack)
	p.head = p.stack[n-1]
	p.stack = p.stack[:n-1]
}

func (p *parser) handleClose(tok *Token) {
	if len(p.stack) == 0 {
		p.sink.PutError(tok.Range, "'%s' without matching '%s'", tok.Contents, string(tok.Match))
		p.sink.Fail("stray closing bracket")
	}
	if p.head.autoClose {
		p.sink.PutError(tok.Range, "'%s' without matching '%s' inside quote", tok.Contents, string(tok.Match))
		p.sink.PutLines(
			Annotation{Range: p.head.openTok.Range, Label: "reader macro opened here"},
			Annotation{Range: tok.Range, Label: "stray close here"},
		)
		p.sink.Fail("closing bracket inside reader macro")
	}
	if p.head.list.Close != tok.Contents[0] {
		p.sink.PutError(tok.Range, "Expected '%s', got '%s'", string(p.head.list.Close), tok.Contents)
		p.sink.PutLines(
			Annotation{Range: p.head.openTok.Range, Label: "opened here"},
			Annotation{Range: tok.Range, Label: "closed here"},
		)
		p.sink.Fail("bracket species mismatch")
	}
	p.head.list.Range = span(p.head.list.Range, tok.Range)
	p.pop()
	p.unwind(tok)
}

// handleReaderMacro pushes a new, bracket-less list seeded with a synthetic
// symbol naming the macro, and marks it auto-close: once its one datum is
// complete (an atom appended, or a list closed), unwind pops it again.
// Unlike an atom or a close, this does not run unwind itself; the macro's
// own list is exactly what must still receive its datum.
func (p *parser) handleReaderMacro(tok *Token) {
	list := &Node{Kind: KindList, Range: Range{Start: tok.Range.Start, Name: tok.Range.Name, buf: tok.Range.buf}}
	p.link(list)
	p.stack = append(p.stack, p.head)
	p.head = &frame{list: list, autoClose: true, openTok: tok}

	sym := &Node{Kind: KindSymbol, Contents: macroName(tok.Code), Range: tok.Range, parent: list}
	list.Children = append(list.Children, sym)
}

func (p *parser) handleEOF(tok *Token) {
	if len(p.stack) == 0 {
		return
	}
	outer := p.head
	for _, fr := range p.stack {
		if fr.openTok != nil {
			outer = fr
			break
		}
	}
	p.sink.PutError(tok.Range, "Expected ')', got eof")
	p.sink.PutLines(
		Annotation{Range: outer.openTok.Range, Label: "unterminated list opened here"},
		Annotation{Range: tok.Range, Label: "end of file here"},
	)
	p.sink.Fail("unterminated list")
}

// unwind implements the auto-close discipline: once the datum a reader
// macro (or a reader macro wrapping a reader macro, as in ''x) was waiting
// for has just been appended or closed, pop it — repeatedly, since closing
// one auto-close frame may itself satisfy the one above it.
func (p *parser) unwind(tok *Token) {
	for p.head.autoClose {
		if len(p.stack) == 0 {
			p.sink.PutError(tok.Range, "reader macro closed with no enclosing list")
			p.sink.Fail("auto-close with empty stack")
		}
		p.head.list.Range = span(p.head.list.Range, tok.Range)
		p.pop()
	}
}

// indentCheck implements the non-fatal indentation heuristic: an Open
// token on a new line from the most recent sibling LIST (not a plain atom
// — the first argument after a keyword symbol, e.g. defun's f, is not
// itself indentation evidence) at a different column suggests a missing
// close bracket upstream.
func (p *parser) indentCheck(tok *Token) {
	children := p.head.list.Children
	if len(children) == 0 {
		return
	}
	prev := children[len(children)-1]
	if prev.Kind != KindList {
		return
	}
	if prev.Range.Start.Line != tok.Range.Start.Line && prev.Range.Start.Column != tok.Range.Start.Column {
		p.sink.PutWarning(tok.Range, "Different indent compared with previous expressions.")
		p.sink.PutExplain("a closing ')' may be missing on a previous line")
	}
}
