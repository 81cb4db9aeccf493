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

package main

import (
	"fmt"
	"io"

	"github.com/urn-lang/urn/pkg/urn"
)

func init() {
	register(&formatter{
		name: "sexpr",
		f:    doSexpr,
		help: "re-render the parsed tree as source text, one top-level form per line",
	})
}

// macroSigil maps a reader-macro tag back to the punctuation it was read
// from, the inverse of the mapping lex.go's run applies on the way in.
var macroSigil = map[string]string{
	"quote":          "'",
	"quasiquote":     "`",
	"unquote":        ",",
	"unquote-splice": ",@",
}

func doSexpr(w io.Writer, roots []*urn.Node) {
	for _, root := range roots {
		for _, n := range root.Children {
			writeSexpr(w, n)
			fmt.Fprintln(w)
		}
	}
}

func writeSexpr(w io.Writer, n *urn.Node) {
	if tag, datum, ok := n.ReaderMacro(); ok {
		fmt.Fprint(w, macroSigil[tag])
		writeSexpr(w, datum)
		return
	}
	if n.Kind != urn.KindList {
		fmt.Fprint(w, n.Contents)
		return
	}
	open, close := byte('('), byte(')')
	if n.Open != 0 {
		open, close = n.Open, n.Close
	}
	fmt.Fprintf(w, "%c", open)
	for i, c := range n.Children {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		writeSexpr(w, c)
	}
	fmt.Fprintf(w, "%c", close)
}
