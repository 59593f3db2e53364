// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package invariant checks the structural invariants OptCode and
// interp.Program are expected to maintain, mirroring the role package
// validate plays for WebAssembly modules in the teacher repository: a
// post-hoc checker callable from tests and tooling, not something the
// normal compile path must run.
package invariant

import (
	"errors"
	"fmt"

	"github.com/bf-tools/bf/interp"
	"github.com/bf-tools/bf/ir"
)

// Error wraps an invariant violation with the block index at which it was
// found.
type Error struct {
	Index int // index into the OptCode or Program where the error occurs
	Err   error
}

func (e Error) Error() string {
	return fmt.Sprintf("invariant: at index %d: %v", e.Index, e.Err)
}

// ErrAdjacentLoops is returned when a Loop block immediately follows another
// Loop block: GroupInstructions always removes the second one, so surviving
// OptCode must never contain this shape.
var ErrAdjacentLoops = errors.New("invariant: adjacent loop blocks")

// ErrZeroDelta is returned when a Basic block's delta map holds an entry
// with value 0; DeltaMap.Add is expected to prune these as they occur.
var ErrZeroDelta = errors.New("invariant: zero-valued delta entry")

// CheckOptCode verifies that code holds no zero deltas and no two adjacent
// Loop blocks, recursing into every loop body.
func CheckOptCode(code ir.OptCode) error {
	var prevWasLoop bool
	for i, b := range code {
		switch b.Kind {
		case ir.KindBasic:
			var err error
			b.Cells.Range(func(offset int, val uint8) {
				if val == 0 && err == nil {
					err = Error{Index: i, Err: ErrZeroDelta}
				}
			})
			if err != nil {
				return err
			}
			prevWasLoop = false
		case ir.KindLoop:
			if prevWasLoop {
				return Error{Index: i, Err: ErrAdjacentLoops}
			}
			if err := CheckOptCode(b.Body); err != nil {
				return err
			}
			prevWasLoop = true
		default:
			prevWasLoop = false
		}
	}
	return nil
}

// ErrInvalidJumpTarget is returned when a JmpT/JmpF/Jmp instruction's Target
// falls outside the Program.
var ErrInvalidJumpTarget = errors.New("invariant: jump target out of range")

// CheckProgram verifies that every jump instruction in prog targets a valid
// instruction index (or the one-past-the-end index, a valid loop exit).
func CheckProgram(prog interp.Program) error {
	for i, instr := range prog {
		switch instr.Op {
		case interp.OpJmpT, interp.OpJmpF, interp.OpJmp:
			if instr.Target < 0 || instr.Target > len(prog) {
				return Error{Index: i, Err: ErrInvalidJumpTarget}
			}
		}
	}
	return nil
}
