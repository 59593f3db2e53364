// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bf-tools/bf/bfio"
)

// ErrDataPointerUnderflow is returned when a PtrSub would move the data
// pointer below cell 0.
var ErrDataPointerUnderflow = errors.New("interp: data pointer underflow")

// InvalidOffsetError is returned when an instruction references a cell
// behind the tape's allocated region, i.e. Off (or input_offset) exceeds the
// current data pointer. A correctly compiled Program never does this; the
// check guards against malformed or hand-built InterpCode.
type InvalidOffsetError struct {
	DP  int
	Off int
}

func (e InvalidOffsetError) Error() string {
	return fmt.Sprintf("interp: invalid offset %d behind dp=%d", e.Off, e.DP)
}

// VM executes a Program against a tape of wrapping byte cells.
type VM struct {
	tape []uint8
	dp   int
	ip   int

	inputOffset int

	code Program
	out  *bfio.Writer
	in   *bfio.Reader
}

// NewVM returns a VM ready to run code, reading Getchar input from in and
// writing Putchar output to out.
func NewVM(code Program, in io.Reader, out io.Writer) *VM {
	return &VM{
		tape: make([]uint8, 1),
		code: code,
		out:  bfio.NewWriter(out),
		in:   bfio.NewReader(in),
	}
}

// Reset rewinds the VM to run code again from a blank tape.
func (vm *VM) Reset(code Program) {
	vm.tape = vm.tape[:1]
	vm.tape[0] = 0
	vm.dp = 0
	vm.ip = 0
	vm.inputOffset = 0
	vm.code = code
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// growTo ensures the tape covers index dp, growing to the next power of two
// that does.
func (vm *VM) growTo(dp int) {
	if dp < len(vm.tape) {
		return
	}
	grown := make([]uint8, nextPow2(dp+1))
	copy(grown, vm.tape)
	vm.tape = grown
}

func (vm *VM) cell(off int) (int, error) {
	idx := vm.dp - off
	if idx < 0 || idx >= len(vm.tape) {
		return 0, InvalidOffsetError{DP: vm.dp, Off: off}
	}
	return idx, nil
}

// Run executes the VM's Program to completion, flushing buffered output
// before returning. Execution stops at the first error encountered; I/O
// errors from the underlying reader/writer are returned unwrapped from
// their originating call.
func (vm *VM) Run(ctx context.Context) error {
	for vm.ip < len(vm.code) {
		if err := ctx.Err(); err != nil {
			return err
		}

		instr := vm.code[vm.ip]
		switch instr.Op {
		case OpSet:
			idx, err := vm.cell(instr.Off)
			if err != nil {
				return err
			}
			vm.tape[idx] = instr.Val

		case OpAdd:
			idx, err := vm.cell(instr.Off)
			if err != nil {
				return err
			}
			vm.tape[idx] += instr.Val

		case OpAddMove:
			src, err := vm.cell(vm.inputOffset)
			if err != nil {
				return err
			}
			dst, err := vm.cell(instr.Off)
			if err != nil {
				return err
			}
			vm.tape[dst] += vm.tape[src] * instr.Val
			vm.tape[src] = 0

		case OpPtrAdd:
			vm.dp += instr.N
			vm.growTo(vm.dp)

		case OpPtrSub:
			if vm.dp-instr.N < 0 {
				return ErrDataPointerUnderflow
			}
			vm.dp -= instr.N

		case OpSetInputOffset:
			vm.inputOffset = instr.N

		case OpPutchar:
			idx, err := vm.cell(instr.Off)
			if err != nil {
				return err
			}
			if err := vm.out.WriteByte(vm.tape[idx]); err != nil {
				return err
			}

		case OpGetchar:
			idx, err := vm.cell(instr.Off)
			if err != nil {
				return err
			}
			b, err := vm.in.ReadByte()
			if err != nil {
				return err
			}
			vm.tape[idx] = b

		case OpJmpF:
			idx, err := vm.cell(vm.inputOffset)
			if err != nil {
				return err
			}
			if vm.tape[idx] == 0 {
				vm.ip = instr.Target
				continue
			}

		case OpJmpT:
			idx, err := vm.cell(vm.inputOffset)
			if err != nil {
				return err
			}
			if vm.tape[idx] != 0 {
				vm.ip = instr.Target
				continue
			}

		case OpJmp:
			vm.ip = instr.Target
			continue
		}
		vm.ip++
	}
	return vm.out.Flush()
}
