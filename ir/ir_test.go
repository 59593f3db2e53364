// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"testing"

	"github.com/bf-tools/bf/ast"
	"github.com/bf-tools/bf/parser"
)

func TestDeltaMapAddPrunesZero(t *testing.T) {
	var m DeltaMap
	m.Add(3, 5)
	m.Add(3, 251) // 5+251 = 256 -> wraps to 0
	if !m.Empty() {
		t.Fatalf("expected entry to be pruned, got %d entries", m.Len())
	}
}

func TestDeltaMapOrdering(t *testing.T) {
	var m DeltaMap
	m.Add(2, 1)
	m.Add(-1, 1)
	m.Add(0, 1)
	var offsets []int
	m.Range(func(offset int, val uint8) { offsets = append(offsets, offset) })
	want := []int{-1, 0, 2}
	if len(offsets) != len(want) {
		t.Fatalf("got %v, want %v", offsets, want)
	}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("got %v, want %v", offsets, want)
		}
	}
}

func TestLiftBasicRun(t *testing.T) {
	code, err := parser.ParseString("+++>>+<.")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	opt := Lift(code)
	if len(opt) != 2 {
		t.Fatalf("got %d blocks, want 2 (basic, io)", len(opt))
	}
	basic := opt[0]
	if basic.Kind != KindBasic {
		t.Fatalf("block 0 kind = %v, want KindBasic", basic.Kind)
	}
	if v, ok := basic.Cells.Get(0); !ok || v != 3 {
		t.Fatalf("cells[0] = %d,%v want 3,true", v, ok)
	}
	if v, ok := basic.Cells.Get(2); !ok || v != 1 {
		t.Fatalf("cells[2] = %d,%v want 1,true", v, ok)
	}
	if basic.PtrOffset != 1 {
		t.Fatalf("ptr_offset = %d, want 1", basic.PtrOffset)
	}
	io := opt[1]
	if io.Kind != KindIO || io.IOOp != IOPutchar || io.IOOffset != 0 {
		t.Fatalf("io block = %+v, want Putchar at offset 0", io)
	}
}

func TestLiftLoopResetsAccumulator(t *testing.T) {
	code, err := parser.ParseString("+[-]+")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	opt := Lift(code)
	if len(opt) != 3 {
		t.Fatalf("got %d blocks, want 3 (basic, loop, basic)", len(opt))
	}
	if opt[0].Kind != KindBasic || opt[1].Kind != KindLoop || opt[2].Kind != KindBasic {
		t.Fatalf("got kinds %v,%v,%v", opt[0].Kind, opt[1].Kind, opt[2].Kind)
	}
	if opt[2].PtrOffset != 0 {
		t.Fatalf("trailing basic block ptr_offset = %d, want 0", opt[2].PtrOffset)
	}
}

func TestLiftLowerRoundTrip(t *testing.T) {
	cases := []string{
		"+++---",
		">><<",
		"+[>>+<<-]++++++[-][>,]-><-",
		"++++++++[>++++++++<-]>+.",
		",.",
		"[-]",
		"[->+<]",
	}
	for _, src := range cases {
		code, err := parser.ParseString(src)
		if err != nil {
			t.Fatalf("%q: ParseString: %v", src, err)
		}
		opt := Lift(code)
		back := Lower(opt)
		if !sameNetEffect(code, back) {
			t.Fatalf("%q: round trip mismatch: got %+v, want %+v", src, back, code)
		}
	}
}

// sameNetEffect compares two ast.Code trees by executing them against a
// simulated infinite tape and checking that the resulting tape and final
// pointer position agree; Lift/Lower may reorder individual PtrAdd/PtrSub
// and Add/Sub instructions as long as the net effect is identical.
func sameNetEffect(a, b ast.Code) bool {
	ta, pa := simulate(a)
	tb, pb := simulate(b)
	if pa != pb {
		return false
	}
	return tapesEqual(ta, tb)
}

func simulate(code ast.Code) (map[int]uint8, int) {
	tape := map[int]uint8{}
	pos := 0
	var run func(ast.Code)
	run = func(c ast.Code) {
		for _, ins := range c {
			switch ins.Op {
			case ast.Add:
				tape[pos] += ins.Val
			case ast.Sub:
				tape[pos] -= ins.Val
			case ast.PtrAdd:
				pos += ins.N
			case ast.PtrSub:
				pos -= ins.N
			case ast.Loop:
				for tape[pos] != 0 {
					run(ins.Body)
				}
			}
		}
	}
	run(code)
	return tape, pos
}

func tapesEqual(a, b map[int]uint8) bool {
	for k, v := range a {
		if v != 0 && b[k] != v {
			return false
		}
	}
	for k, v := range b {
		if v != 0 && a[k] != v {
			return false
		}
	}
	return true
}
