// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp executes InterpCode: a flat, offset-addressed bytecode
// lowered from the optimizer's block IR, against a lazily growing tape of
// wrapping byte cells.
package interp

// Op identifies an InterpCode instruction.
type Op uint8

// Every cell reference is expressed as a non-negative distance behind the
// current data pointer (cell index = dp - Off), not an absolute index: the
// compiler always moves dp forward to cover the furthest cell a block
// touches before addressing any of them, so every reference it emits looks
// backwards from there.
const (
	// OpSet assigns Val directly to the cell at dp-Off.
	OpSet Op = iota
	// OpAdd adds Val (wrapping) to the cell at dp-Off.
	OpAdd
	// OpPtrAdd advances dp by N, growing the tape if needed.
	OpPtrAdd
	// OpPtrSub retreats dp by N; it is an error to underflow past 0.
	OpPtrSub
	// OpSetInputOffset records the distance behind dp that JmpT/JmpF/AddMove
	// read as the loop condition/source cell.
	OpSetInputOffset
	// OpAddMove adds tape[dp-input_offset]*Val (wrapping) into the cell at
	// dp-Off, then zeroes tape[dp-input_offset]. It is the closed form of a
	// single-decrement transfer loop such as `[->++<]`, computed in one step
	// instead of iterating.
	OpAddMove
	// OpPutchar writes the cell at dp-Off to output.
	OpPutchar
	// OpGetchar reads one byte of input into the cell at dp-Off.
	OpGetchar
	// OpJmpF jumps to Target if the cell at dp-input_offset is zero.
	OpJmpF
	// OpJmpT jumps to Target if the cell at dp-input_offset is non-zero.
	OpJmpT
	// OpJmp jumps to Target unconditionally.
	OpJmp
)

func (op Op) String() string {
	switch op {
	case OpSet:
		return "Set"
	case OpAdd:
		return "Add"
	case OpPtrAdd:
		return "PtrAdd"
	case OpPtrSub:
		return "PtrSub"
	case OpSetInputOffset:
		return "SetInputOffset"
	case OpAddMove:
		return "AddMove"
	case OpPutchar:
		return "Putchar"
	case OpGetchar:
		return "Getchar"
	case OpJmpF:
		return "JmpF"
	case OpJmpT:
		return "JmpT"
	case OpJmp:
		return "Jmp"
	default:
		return "Op(?)"
	}
}

// Instr is one InterpCode instruction. Which fields are meaningful depends
// on Op, following the same tagged-struct idiom as ast.Instr and ir.Block
// rather than a family of concrete instruction types.
type Instr struct {
	Op Op

	Off int   // Set, Add, AddMove (destination cell), Putchar, Getchar: distance behind dp
	Val uint8 // Set, Add, AddMove (multiplier)
	N   int   // PtrAdd, PtrSub, SetInputOffset

	Target int // JmpF, JmpT, Jmp: instruction index to jump to
}

// Program is a flat sequence of InterpCode instructions, jump targets
// resolved to absolute instruction indices.
type Program []Instr
