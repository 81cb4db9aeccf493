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

	"github.com/urn-lang/urn/pkg/indent"
	"github.com/urn-lang/urn/pkg/urn"
)

func init() {
	register(&formatter{
		name: "tree",
		f:    doTree,
		help: "display the parsed node tree, one node per line",
	})
}

func doTree(w io.Writer, roots []*urn.Node) {
	for _, root := range roots {
		for _, n := range root.Children {
			writeNode(w, n)
		}
	}
}

// writeNode prints n and, for a list, all of its children indented two
// spaces further than n itself.
func writeNode(w io.Writer, n *urn.Node) {
	if n.Kind != urn.KindList {
		fmt.Fprintf(w, "%s %q\n", n.Kind, n.Contents)
		return
	}
	if tag, datum, ok := n.ReaderMacro(); ok {
		fmt.Fprintf(w, "%s\n", tag)
		writeNode(indent.NewWriter(w, "  "), datum)
		return
	}
	fmt.Fprintf(w, "list {\n")
	body := indent.NewWriter(w, "  ")
	for _, c := range n.Children {
		writeNode(body, c)
	}
	fmt.Fprintf(w, "}\n")
}
