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

import "fmt"

// Code is the tag of a Token. Punctuation tokens get named Codes rather
// than being keyed by rune. urn's bracket species (round/square/curly) all
// share the Open and Close codes; a Token's Contents and Match tell the
// species apart.
type Code int

const (
	Open Code = iota
	Close
	Quote
	Quasiquote
	Unquote
	UnquoteSplice
	Number
	String
	Symbol
	Key
	EOF
)

func (c Code) String() string {
	switch c {
	case Open:
		return "open"
	case Close:
		return "close"
	case Quote:
		return "quote"
	case Quasiquote:
		return "quasiquote"
	case Unquote:
		return "unquote"
	case UnquoteSplice:
		return "unquote-splice"
	case Number:
		return "number"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Key:
		return "key"
	case EOF:
		return "eof"
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// A Token is one lexical unit produced by Lex. For Open, Match holds the
// expected closing bracket character; for Close, Match holds the matching
// opening bracket character. Match is zero for every other Code.
type Token struct {
	Code     Code
	Contents string
	Range    Range
	Match    byte
}

func (t *Token) String() string {
	if t.Contents == "" {
		return fmt.Sprintf("%s:%d:%d: %v", t.Range.Name, t.Range.Start.Line, t.Range.Start.Column, t.Code)
	}
	return fmt.Sprintf("%s:%d:%d: %v %q", t.Range.Name, t.Range.Start.Line, t.Range.Start.Column, t.Code, t.Contents)
}
