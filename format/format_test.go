// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"testing"

	"github.com/bf-tools/bf/parser"
)

func TestFormatParseRoundTrip(t *testing.T) {
	srcs := []string{
		"+++---",
		">><<",
		"+[>>+<<]++++++[-][>,]-><-",
		"",
		"[[+]-]",
	}
	for _, src := range srcs {
		code, err := parser.ParseString(src)
		if err != nil {
			t.Fatalf("%q: ParseString: %v", src, err)
		}
		got := String(code)
		if got != src {
			t.Fatalf("String(Parse(%q)) = %q, want %q", src, got, src)
		}
		code2, err := parser.ParseString(got)
		if err != nil {
			t.Fatalf("%q: re-parsing formatted output: %v", got, err)
		}
		if String(code2) != got {
			t.Fatalf("formatting is not idempotent for %q", src)
		}
	}
}

func TestFormatDropsComments(t *testing.T) {
	code, err := parser.ParseString("hello + world")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if got, want := String(code), "+"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
