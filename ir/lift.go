// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "github.com/bf-tools/bf/ast"

// Lift summarizes a surface ast.Code tree into OptCode: straight-line runs
// of Add/Sub/PtrAdd/PtrSub collapse into a single Basic block's delta map
// plus net pointer displacement; Putchar/Getchar become IO blocks that act
// as a barrier between Basic blocks; Loop recurses.
func Lift(code ast.Code) OptCode {
	l := &lifter{}
	l.walk(code)
	l.flushBasic()
	return l.out
}

type lifter struct {
	out   OptCode
	off   int
	cells DeltaMap
}

func (l *lifter) walk(code ast.Code) {
	for _, ins := range code {
		switch ins.Op {
		case ast.Add:
			l.cells.Add(l.off, ins.Val)
		case ast.Sub:
			l.cells.Add(l.off, uint8(0)-ins.Val)
		case ast.PtrAdd:
			l.off += ins.N
		case ast.PtrSub:
			l.off -= ins.N
		case ast.Putchar:
			l.emitIO(IOPutchar)
		case ast.Getchar:
			l.emitIO(IOGetchar)
		case ast.Loop:
			l.flushBasic()
			l.out = append(l.out, Block{Kind: KindLoop, Body: Lift(ins.Body)})
		}
	}
}

// flushBasic emits the accumulated Basic block, folding the running pointer
// offset into its net ptr_offset, and resets the accumulator.
func (l *lifter) flushBasic() {
	if l.cells.Empty() && l.off == 0 {
		return
	}
	l.out = append(l.out, Block{Kind: KindBasic, Cells: *l.cells.Clone(), PtrOffset: l.off})
	l.cells = DeltaMap{}
	l.off = 0
}

// emitIO flushes any pending Basic block (which absorbs the pending pointer
// displacement), then appends an IO block. Since the preceding Basic block
// always carries the full displacement, the IO block's own offset is 0: the
// pointer is already positioned at the IO's target cell.
func (l *lifter) emitIO(op IOOp) {
	l.flushBasic()
	l.out = append(l.out, Block{Kind: KindIO, IOOp: op, IOOffset: 0})
}
