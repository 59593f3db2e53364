// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format serializes a surface ast.Code tree back to Brainfuck
// source text, the inverse of package parser. Parsing the output reproduces
// code exactly when every Add/Sub/PtrAdd/PtrSub in it has a count of 1, as
// the parser produces; larger counts come back as runs of unit
// instructions. Comment characters are never emitted, so formatting
// parsed source yields that source with its comments removed.
package format

import (
	"bufio"
	"io"
	"strings"

	"github.com/bf-tools/bf/ast"
)

type writer struct {
	bw  *bufio.Writer
	err error
}

func (w *writer) WriteString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.bw.WriteString(s)
}

func (w *writer) writeCode(code ast.Code) {
	for _, ins := range code {
		if w.err != nil {
			return
		}
		switch ins.Op {
		case ast.Add:
			w.WriteString(strings.Repeat("+", int(ins.Val)))
		case ast.Sub:
			w.WriteString(strings.Repeat("-", int(ins.Val)))
		case ast.PtrAdd:
			w.WriteString(strings.Repeat(">", ins.N))
		case ast.PtrSub:
			w.WriteString(strings.Repeat("<", ins.N))
		case ast.Putchar:
			w.WriteString(".")
		case ast.Getchar:
			w.WriteString(",")
		case ast.Loop:
			w.WriteString("[")
			w.writeCode(ins.Body)
			w.WriteString("]")
		}
	}
}

// WriteTo writes code's Brainfuck source representation to out.
func WriteTo(out io.Writer, code ast.Code) error {
	w := &writer{bw: bufio.NewWriter(out)}
	w.writeCode(code)
	if w.err != nil {
		return w.err
	}
	return w.bw.Flush()
}

// String returns code's Brainfuck source representation.
func String(code ast.Code) string {
	var sb strings.Builder
	// WriteTo's only failure mode is the underlying writer's, and
	// strings.Builder never errors.
	_ = WriteTo(&sb, code)
	return sb.String()
}
