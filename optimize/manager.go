// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optimize

import "github.com/bf-tools/bf/ir"

// Manager holds an ordered list of passes and drives them to a fixed point.
type Manager struct {
	passes []Pass
}

// Builder constructs a Manager pass by pass.
type Builder struct {
	passes []Pass
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPass appends a pass to the builder and returns it for chaining.
func (b *Builder) AddPass(p Pass) *Builder {
	b.passes = append(b.passes, p)
	return b
}

// AddDefaultPasses appends the passes run unless the caller opts out of them,
// which is currently just GroupInstructions.
func (b *Builder) AddDefaultPasses() *Builder {
	return b.AddPass(GroupInstructions{})
}

// Build finishes construction and returns the Manager.
func (b *Builder) Build() *Manager {
	return &Manager{passes: b.passes}
}

// NewManager returns a Manager running the default pass set.
func NewManager() *Manager {
	return NewBuilder().AddDefaultPasses().Build()
}

// Run applies every registered pass in order, repeating full sweeps until
// one sweep leaves code completely unchanged.
func (m *Manager) Run(code ir.OptCode) ir.OptCode {
	for {
		sweepChanged := false
		for _, p := range m.passes {
			var changed bool
			code, changed = p.Run(code)
			sweepChanged = sweepChanged || changed
		}
		if !sweepChanged {
			return code
		}
	}
}
