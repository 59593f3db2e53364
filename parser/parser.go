// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser turns Brainfuck source text into a surface ast.Code tree,
// validating bracket matching along the way.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bf-tools/bf/ast"
)

// UnmatchedClosingBracketError is returned when a ']' is encountered with no
// matching open '[' on the bracket stack.
type UnmatchedClosingBracketError struct {
	CharPos int // rune offset of the offending ']' in the input
}

func (e UnmatchedClosingBracketError) Error() string {
	return fmt.Sprintf("parser: unmatched closing bracket at char %d", e.CharPos)
}

// ErrUnclosedBracket is returned when input ends while one or more '['
// remain open.
var ErrUnclosedBracket = fmt.Errorf("parser: unclosed bracket")

// scanner walks a rune stream, tracking the rune offset for error reporting.
//
// Unlike wast.Scanner this one doesn't need lookahead: Brainfuck's grammar
// is a single pass over single-character tokens.
type scanner struct {
	r   *bufio.Reader
	pos int
}

func newScanner(r io.Reader) *scanner {
	return &scanner{r: bufio.NewReader(r)}
}

func (s *scanner) next() (rune, bool) {
	ch, _, err := s.r.ReadRune()
	if err != nil {
		return 0, false
	}
	s.pos++
	return ch, true
}

// Parse reads Brainfuck source from r and returns its surface AST. Every
// character except `+ - > < . , [ ]` is ignored (treated as a comment).
func Parse(r io.Reader) (ast.Code, error) {
	s := newScanner(r)

	// stack[0] is the sentinel top-level body; each '[' pushes a fresh one.
	stack := []ast.Code{nil}

	for {
		ch, ok := s.next()
		if !ok {
			break
		}

		top := len(stack) - 1
		switch ch {
		case '+':
			stack[top] = append(stack[top], ast.Instr{Op: ast.Add, Val: 1})
		case '-':
			stack[top] = append(stack[top], ast.Instr{Op: ast.Sub, Val: 1})
		case '>':
			stack[top] = append(stack[top], ast.Instr{Op: ast.PtrAdd, N: 1})
		case '<':
			stack[top] = append(stack[top], ast.Instr{Op: ast.PtrSub, N: 1})
		case '.':
			stack[top] = append(stack[top], ast.Instr{Op: ast.Putchar})
		case ',':
			stack[top] = append(stack[top], ast.Instr{Op: ast.Getchar})
		case '[':
			stack = append(stack, nil)
		case ']':
			if len(stack) <= 1 {
				return nil, UnmatchedClosingBracketError{CharPos: s.pos - 1}
			}
			body := stack[top]
			stack = stack[:top]
			top = len(stack) - 1
			stack[top] = append(stack[top], ast.Instr{Op: ast.Loop, Body: body})
		}
	}

	if len(stack) != 1 {
		return nil, ErrUnclosedBracket
	}
	return stack[0], nil
}

// ParseString is a convenience wrapper around Parse for in-memory source.
func ParseString(src string) (ast.Code, error) {
	return Parse(strings.NewReader(src))
}
