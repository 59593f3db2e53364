// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/bf-tools/bf/ir"

// GroupInstructions coalesces adjacent Basic blocks that share a boundary
// with no IO block between them, drops Basic blocks left empty by that
// coalescing, and removes a Loop immediately preceded by another Loop (the
// cell the second loop would test is already known to be zero, since the
// first loop only exits once its own cell reaches zero and loops do not
// cross basic-block boundaries without passing through one). It recurses
// into every loop body it keeps.
//
// GroupInstructions never increases OptCode.Len(): merging strictly removes
// blocks, and dropping a dead loop removes one outright.
type GroupInstructions struct{}

func (GroupInstructions) Name() string { return "group-instructions" }

func (p GroupInstructions) Run(code ir.OptCode) (ir.OptCode, bool) {
	out, changed := p.runOnce(code)
	return out, changed
}

func (p GroupInstructions) runOnce(code ir.OptCode) (ir.OptCode, bool) {
	changed := false
	var out ir.OptCode
	var acc *ir.Block // pending merged Basic block, flushed at the next non-Basic block

	flush := func() {
		if acc == nil {
			return
		}
		if acc.Cells.Empty() && acc.PtrOffset == 0 {
			changed = true
		} else {
			out = append(out, *acc)
		}
		acc = nil
	}

	for _, b := range code {
		switch b.Kind {
		case ir.KindBasic:
			if acc == nil {
				c := b
				c.Cells = *b.Cells.Clone()
				acc = &c
				continue
			}
			changed = true
			mergeBasic(acc, b)

		case ir.KindIO:
			flush()
			out = append(out, b)

		case ir.KindLoop:
			flush()
			if len(out) > 0 && out[len(out)-1].Kind == ir.KindLoop {
				changed = true
				continue
			}
			body, bodyChanged := p.runOnce(b.Body)
			changed = changed || bodyChanged
			out = append(out, ir.Block{Kind: ir.KindLoop, Body: body})
		}
	}
	flush()

	return out, changed
}

// mergeBasic folds b, which directly follows acc with no intervening block,
// into acc. b's deltas are relative to b's own entry pointer position, which
// is acc's exit position (acc.PtrOffset), so they're shifted before merging.
func mergeBasic(acc *ir.Block, b ir.Block) {
	b.Cells.Range(func(offset int, val uint8) {
		acc.Cells.Add(acc.PtrOffset+offset, val)
	})
	acc.PtrOffset += b.PtrOffset
}
