// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile lowers optimizer OptCode into interp.Program: a flat,
// offset-addressed bytecode with absolute jump targets, the same
// structured-to-unstructured rewrite that package compile performs on
// WebAssembly blocks in the teacher repository, adapted to Brainfuck's much
// simpler control flow (loops only, no branch tables).
package compile

import (
	"github.com/bf-tools/bf/interp"
	"github.com/bf-tools/bf/ir"
)

// Compile lowers code into a ready-to-run Program.
func Compile(code ir.OptCode) interp.Program {
	var out interp.Program
	lowerSeq(&out, code)
	return out
}

func lowerSeq(out *interp.Program, code ir.OptCode) {
	for _, b := range code {
		switch b.Kind {
		case ir.KindBasic:
			lowerBasic(out, b)
		case ir.KindIO:
			lowerIO(out, b)
		case ir.KindLoop:
			lowerLoop(out, b.Body)
		}
	}
}

// lowerBasic emits one PtrAdd to the block's furthest forward reach (so the
// tape is grown once, up front), then addresses every delta as a
// backward-looking Add relative to that peak, and finally emits a PtrSub
// back to the block's net displacement if it lies behind the peak.
func lowerBasic(out *interp.Program, b ir.Block) {
	m := b.PtrOffset
	if mx := b.Cells.MaxOffset(); mx > m {
		m = mx
	}
	if m < 0 {
		m = 0
	}
	if m > 0 {
		*out = append(*out, interp.Instr{Op: interp.OpPtrAdd, N: m})
	}
	b.Cells.Range(func(offset int, val uint8) {
		*out = append(*out, interp.Instr{Op: interp.OpAdd, Off: m - offset, Val: val})
	})
	if delta := b.PtrOffset - m; delta != 0 {
		emitMove(out, delta)
	}
}

func lowerIO(out *interp.Program, b ir.Block) {
	if b.IOOffset != 0 {
		emitMove(out, b.IOOffset)
	}
	op := interp.OpPutchar
	if b.IOOp == ir.IOGetchar {
		op = interp.OpGetchar
	}
	*out = append(*out, interp.Instr{Op: op, Off: 0})
	if b.IOOffset != 0 {
		emitMove(out, -b.IOOffset)
	}
}

func emitMove(out *interp.Program, delta int) {
	if delta > 0 {
		*out = append(*out, interp.Instr{Op: interp.OpPtrAdd, N: delta})
	} else if delta < 0 {
		*out = append(*out, interp.Instr{Op: interp.OpPtrSub, N: -delta})
	}
}

func lowerLoop(out *interp.Program, body ir.OptCode) {
	// A loop whose entire body is itself one loop, e.g. `[[+]]` or
	// `[[->+<]]`, is redundant: the inner loop's condition is the same cell
	// the outer loop just tested non-zero, so the outer JmpF/JmpT shell never
	// does anything the inner one doesn't already do. Unwrap repeatedly
	// before pattern-matching so the inner body gets specialized directly.
	for len(body) == 1 && body[0].Kind == ir.KindLoop {
		body = body[0].Body
	}

	if val, ok := clearLoopDelta(body); ok {
		_ = val
		*out = append(*out, interp.Instr{Op: interp.OpSet, Off: 0, Val: 0})
		return
	}
	if to, mul, ok := transferLoopTarget(body); ok {
		m := to
		if m < 0 {
			m = 0
		}
		if m > 0 {
			*out = append(*out, interp.Instr{Op: interp.OpPtrAdd, N: m})
		}
		*out = append(*out, interp.Instr{Op: interp.OpSetInputOffset, N: m})
		*out = append(*out, interp.Instr{Op: interp.OpAddMove, Off: m - to, Val: mul})
		if m != 0 {
			emitMove(out, -m)
		}
		return
	}
	if len(body) == 0 {
		*out = append(*out, interp.Instr{Op: interp.OpSetInputOffset, N: 0})
		jmpF := len(*out)
		*out = append(*out, interp.Instr{Op: interp.OpJmpF})
		self := len(*out)
		*out = append(*out, interp.Instr{Op: interp.OpJmp, Target: self})
		(*out)[jmpF].Target = len(*out)
		return
	}

	*out = append(*out, interp.Instr{Op: interp.OpSetInputOffset, N: 0})
	jmpF := len(*out)
	*out = append(*out, interp.Instr{Op: interp.OpJmpF})
	bodyStart := len(*out)
	lowerSeq(out, body)
	*out = append(*out, interp.Instr{Op: interp.OpSetInputOffset, N: 0})
	*out = append(*out, interp.Instr{Op: interp.OpJmpT, Target: bodyStart})
	(*out)[jmpF].Target = len(*out)
}

// clearLoopDelta recognizes a loop whose body is a single Basic block that
// only ever touches its own cell, e.g. `[-]` or `[+]`. Such a loop always
// terminates and always leaves the cell at 0, regardless of its starting
// value, exactly when the per-iteration delta is coprime with 256 (odd):
// otherwise repeated addition can cycle through a residue class that never
// includes 0 for some starting values, so the rewrite would be unsound.
func clearLoopDelta(body ir.OptCode) (uint8, bool) {
	if len(body) != 1 || body[0].Kind != ir.KindBasic || body[0].PtrOffset != 0 {
		return 0, false
	}
	if body[0].Cells.Len() != 1 {
		return 0, false
	}
	val, ok := body[0].Cells.Get(0)
	if !ok || val%2 == 0 {
		return 0, false
	}
	return val, true
}

// transferLoopTarget recognizes a single-target transfer loop such as
// `[->+<]` or `[->>--<<]`: a single Basic block whose own cell decrements by
// exactly 1 (guaranteeing termination after exactly as many iterations as
// the cell's starting value) and which touches exactly one other cell. The
// cumulative effect is a single multiply-accumulate, reported as the target
// offset and multiplier.
func transferLoopTarget(body ir.OptCode) (to int, mul uint8, ok bool) {
	if len(body) != 1 || body[0].Kind != ir.KindBasic || body[0].PtrOffset != 0 {
		return 0, 0, false
	}
	cells := body[0].Cells
	if cells.Len() != 2 {
		return 0, 0, false
	}
	self, hasSelf := cells.Get(0)
	if !hasSelf || self != 255 {
		return 0, 0, false
	}
	found := false
	cells.Range(func(offset int, val uint8) {
		if offset != 0 {
			to, mul, found = offset, val, true
		}
	})
	return to, mul, found
}
