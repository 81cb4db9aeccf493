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

// Package urn implements the front-end reader of the urn Lisp dialect: a
// lexer that scans source text into a flat token list, and a parser that
// folds that list into a tree of position-annotated nodes.
//
// At its simplest, the Lex and Parse functions are used together:
//
//	buf := urn.NewBuffer(src, "example.urn")
//	rec := urn.NewRecorder()
//	toks, err := urn.Lex(buf, rec)
//	if err == nil {
//	  root, err := urn.Parse(toks, rec)
//	}
//
// Neither function evaluates, macro-expands, or type-checks the source; they
// only recover its syntactic structure. See package urn/library for a
// higher-level, file-backed entry point.
package urn
