// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package invariant

import (
	"errors"
	"testing"

	"github.com/bf-tools/bf/compile"
	"github.com/bf-tools/bf/interp"
	"github.com/bf-tools/bf/ir"
	"github.com/bf-tools/bf/optimize"
	"github.com/bf-tools/bf/parser"
)

func TestCheckOptCodeRejectsAdjacentLoops(t *testing.T) {
	loop := ir.Block{Kind: ir.KindLoop, Body: ir.OptCode{}}
	code := ir.OptCode{loop, loop}
	err := CheckOptCode(code)
	var ierr Error
	if !errors.As(err, &ierr) || !errors.Is(ierr.Err, ErrAdjacentLoops) {
		t.Fatalf("got %v, want ErrAdjacentLoops", err)
	}
}

func TestCheckOptCodeAcceptsOptimizedPipelineOutput(t *testing.T) {
	code, err := parser.ParseString("+[>>+<<]++++++[-][>,]-><-")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	opt := optimize.NewManager().Run(ir.Lift(code))
	if err := CheckOptCode(opt); err != nil {
		t.Fatalf("CheckOptCode: %v", err)
	}
}

func TestCheckProgramRejectsOutOfRangeTarget(t *testing.T) {
	prog := interp.Program{{Op: interp.OpJmp, Target: 5}}
	err := CheckProgram(prog)
	var ierr Error
	if !errors.As(err, &ierr) || !errors.Is(ierr.Err, ErrInvalidJumpTarget) {
		t.Fatalf("got %v, want ErrInvalidJumpTarget", err)
	}
}

func TestCheckProgramAcceptsCompiledOutput(t *testing.T) {
	code, err := parser.ParseString("++++++++[>++++++++<-]>+.")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	opt := optimize.NewManager().Run(ir.Lift(code))
	prog := compile.Compile(opt)
	if err := CheckProgram(prog); err != nil {
		t.Fatalf("CheckProgram: %v", err)
	}
}
