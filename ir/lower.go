// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "github.com/bf-tools/bf/ast"

// Lower expands OptCode back into a surface ast.Code tree. For each Basic
// block it walks the delta map in ascending offset order, moving the
// pointer to each populated cell and emitting the instruction that produces
// the recorded wrapping delta in fewer characters (Add for deltas below 128,
// Sub of 256 minus the delta otherwise), then moves to the block's net
// ptr_offset. IO and Loop blocks lower directly.
func Lower(code OptCode) ast.Code {
	var out ast.Code
	for _, b := range code {
		switch b.Kind {
		case KindBasic:
			out = append(out, lowerBasic(b)...)
		case KindIO:
			out = append(out, move(b.IOOffset)...)
			if b.IOOp == IOPutchar {
				out = append(out, ast.Instr{Op: ast.Putchar})
			} else {
				out = append(out, ast.Instr{Op: ast.Getchar})
			}
			out = append(out, move(-b.IOOffset)...)
		case KindLoop:
			out = append(out, ast.Instr{Op: ast.Loop, Body: Lower(b.Body)})
		}
	}
	return out
}

func lowerBasic(b Block) ast.Code {
	var out ast.Code
	pos := 0
	b.Cells.Range(func(offset int, val uint8) {
		out = append(out, move(offset-pos)...)
		pos = offset
		if val < 128 {
			out = append(out, ast.Instr{Op: ast.Add, Val: val})
		} else {
			out = append(out, ast.Instr{Op: ast.Sub, Val: 0 - val})
		}
	})
	out = append(out, move(b.PtrOffset-pos)...)
	return out
}

// move returns the PtrAdd or PtrSub instruction needed to shift the pointer
// by n cells, or nil if n is 0.
func move(n int) ast.Code {
	switch {
	case n > 0:
		return ast.Code{{Op: ast.PtrAdd, N: n}}
	case n < 0:
		return ast.Code{{Op: ast.PtrSub, N: -n}}
	default:
		return nil
	}
}
