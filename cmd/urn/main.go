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

// Program urn lexes and parses urn source files and prints their syntax
// tree.
//
// Usage: urn [--path DIR] [--format FORMAT] [FILE ...]
//
// If no FILE is given, standard input is read under the display name
// "<stdin>". DIR, if given, is a comma-separated list of directories
// appended to the search path used to resolve bare module names.
//
// THIS PROGRAM IS A DEVELOPMENT TOOL, not a contract: its output format may
// change at any time.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"github.com/pborman/getopt"

	"github.com/urn-lang/urn/pkg/library"
	"github.com/urn-lang/urn/pkg/urn"
)

// formatter mirrors the teacher's pluggable output formats: each format
// registers itself from an init function in its own file (see tree.go,
// sexpr.go).
type formatter struct {
	name string
	f    func(io.Writer, []*urn.Node)
	help string
}

var formatters = map[string]*formatter{}

func register(f *formatter) { formatters[f.name] = f }

var stop = os.Exit

func main() {
	var format string
	var paths []string
	var help bool

	getopt.ListVarLong(&paths, "path", 0, "comma separated list of directories to add to the search path", "DIR[,DIR...]")
	getopt.StringVarLong(&format, "format", 0, "format to display", "FORMAT")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE ...]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
		return
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		var names []string
		for n := range formatters {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, n := range names {
			fmt.Fprintf(os.Stderr, "    %s - %s\n", n, formatters[n].help)
		}
		stop(0)
		return
	}

	if format == "" {
		format = "tree"
	}
	f, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format\n", format)
		stop(1)
		return
	}

	lib := library.New()
	for _, p := range paths {
		lib.AddPath(p)
	}

	files := getopt.Args()
	var roots []*urn.Node

	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
			return
		}
		root, err := parseStdin(string(data))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
			return
		}
		roots = append(roots, root)
	}

	var failed bool
	for _, name := range files {
		root, err := lib.Load(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed = true
			continue
		}
		roots = append(roots, root)
	}
	if failed {
		stop(1)
		return
	}

	f.f(os.Stdout, roots)
}

// parseStdin runs the same Lex/Parse pair library.Cache.Load uses, but on
// data that was already read from stdin rather than from a named file.
func parseStdin(data string) (*urn.Node, error) {
	buf := urn.NewBuffer(data, "<stdin>")
	sink := urn.NewWriter(os.Stderr)
	toks, err := urn.Lex(buf, sink)
	if err != nil {
		return nil, err
	}
	return urn.Parse(toks, sink)
}
