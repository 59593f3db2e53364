// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimize runs OptCode through a fixed-point pass manager, applying
// pure rewrites that shrink or simplify the optimizer IR without changing
// program behavior.
package optimize

import "github.com/bf-tools/bf/ir"

// Pass rewrites an OptCode tree, reporting whether it changed anything.
// Implementations must be pure: the same input always produces the same
// output, with no reliance on shared state across calls.
type Pass interface {
	Name() string
	Run(code ir.OptCode) (ir.OptCode, bool)
}
