// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ir defines the optimizer's intermediate representation: OptCode, a
// sequence of basic blocks in which straight-line cell mutations are
// summarized as position-indexed deltas, plus the lift/lower bridges to and
// from the surface ast.Code tree. This corresponds to what package disasm
// does for WebAssembly bytecode in the teacher repository, adapted for a
// much simpler source language.
package ir

// Kind identifies which variant of Block is populated.
type Kind uint8

const (
	// KindBasic summarizes a straight-line segment of cell mutations.
	KindBasic Kind = iota
	// KindIO is a single Putchar or Getchar.
	KindIO
	// KindLoop is a nested OptCode executed while the current cell is
	// non-zero.
	KindLoop
)

// IOOp distinguishes the two IO block variants.
type IOOp uint8

const (
	IOPutchar IOOp = iota
	IOGetchar
)

func (op IOOp) String() string {
	switch op {
	case IOPutchar:
		return "Putchar"
	case IOGetchar:
		return "Getchar"
	default:
		return "IOOp(?)"
	}
}

// Block is one element of an OptCode: a closed sum type over Basic, IO, and
// Loop, following the same "one struct, fields keyed off a Kind tag" idiom as
// disasm.Instr in the teacher repository rather than an interface hierarchy.
type Block struct {
	Kind Kind

	// Basic block fields.
	Cells     DeltaMap
	PtrOffset int

	// IO block fields.
	IOOp     IOOp
	IOOffset int

	// Loop block field.
	Body OptCode
}

// OptCode is an ordered sequence of optimizer blocks.
type OptCode []Block

// Len returns the number of blocks, recursing into loop bodies, matching
// ast.Code.Len's "loop header plus body" counting convention.
func (c OptCode) Len() int {
	n := 0
	for _, b := range c {
		n++
		if b.Kind == KindLoop {
			n += b.Body.Len()
		}
	}
	return n
}

// NetOffset sums the ptr_offset of every top-level Basic block, provided
// every nested Loop's body itself has a net offset of exactly 0. If any
// nested loop's net offset is undefined or non-zero, the result is
// undefined, reported via the second return value.
func (c OptCode) NetOffset() (int, bool) {
	total := 0
	for _, b := range c {
		switch b.Kind {
		case KindBasic:
			total += b.PtrOffset
		case KindLoop:
			inner, ok := b.Body.NetOffset()
			if !ok || inner != 0 {
				return 0, false
			}
		}
	}
	return total, true
}

// HasSideEffects reports whether any IO block, or any side-effecting nested
// loop, is reachable from c.
func (c OptCode) HasSideEffects() bool {
	for _, b := range c {
		switch b.Kind {
		case KindIO:
			return true
		case KindLoop:
			if b.Body.HasSideEffects() {
				return true
			}
		}
	}
	return false
}
