// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast defines the surface syntax tree produced by package parser:
// a tree of run-length-encoded Brainfuck operations.
package ast

// Op identifies the kind of a surface instruction.
type Op uint8

const (
	// Add wraps-adds Val to the current cell.
	Add Op = iota
	// Sub wraps-subtracts Val from the current cell.
	Sub
	// PtrAdd shifts the data pointer right by Val cells.
	PtrAdd
	// PtrSub shifts the data pointer left by Val cells.
	PtrSub
	// Putchar writes the current cell to the output stream.
	Putchar
	// Getchar reads a byte from the input stream into the current cell.
	Getchar
	// Loop repeats Body while the current cell is non-zero.
	Loop
)

func (op Op) String() string {
	switch op {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case PtrAdd:
		return "PtrAdd"
	case PtrSub:
		return "PtrSub"
	case Putchar:
		return "Putchar"
	case Getchar:
		return "Getchar"
	case Loop:
		return "Loop"
	default:
		return "Op(?)"
	}
}

// Instr is a single surface instruction.
//
// Val carries the wrapping add/sub amount (1..=255) for Add/Sub, and N the
// pointer displacement for PtrAdd/PtrSub. Body carries the loop body for
// Loop. All other fields are zero for the remaining ops.
type Instr struct {
	Op   Op
	Val  uint8 // meaningful for Add, Sub
	N    int   // meaningful for PtrAdd, PtrSub
	Body Code  // meaningful for Loop
}

// Code is an ordered sequence of surface instructions.
type Code []Instr

// Len returns the number of instructions in code, counting a Loop as one
// instruction plus its body's length (not counting the brackets).
func (c Code) Len() int {
	n := 0
	for _, ins := range c {
		n++
		if ins.Op == Loop {
			n += ins.Body.Len()
		}
	}
	return n
}

// CharLen returns the number of significant source characters c would format
// to: run-length-encoded Add/Sub/PtrAdd/PtrSub expand to Val or N characters,
// Putchar/Getchar count as one, and a Loop costs 2 (its brackets) plus its
// body's CharLen.
func (c Code) CharLen() int {
	n := 0
	for _, ins := range c {
		switch ins.Op {
		case Add, Sub:
			n += int(ins.Val)
		case PtrAdd, PtrSub:
			n += ins.N
		case Putchar, Getchar:
			n++
		case Loop:
			n += 2 + ins.Body.CharLen()
		}
	}
	return n
}
