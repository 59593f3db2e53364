// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "sort"

// delta is one entry of a DeltaMap: the wrapping 8-bit change applied at a
// cell offset relative to a Basic block's entry pointer position.
type delta struct {
	Offset int
	Val    uint8
}

// DeltaMap is a position-indexed map from signed cell offset to a wrapping
// 8-bit delta, kept sorted by offset at all times so that lowering (which
// must iterate ascending) never needs a separate sort step. Per the design
// notes this is deliberately a sorted flat structure, not a hash map.
type DeltaMap struct {
	entries []delta
}

func (m *DeltaMap) search(offset int) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Offset >= offset
	})
}

// Add merges a wrapping delta into the map at offset, removing the entry if
// the accumulated value wraps back to zero.
func (m *DeltaMap) Add(offset int, val uint8) {
	i := m.search(offset)
	if i < len(m.entries) && m.entries[i].Offset == offset {
		sum := m.entries[i].Val + val
		if sum == 0 {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
		} else {
			m.entries[i].Val = sum
		}
		return
	}
	if val == 0 {
		return
	}
	m.entries = append(m.entries, delta{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = delta{Offset: offset, Val: val}
}

// Get returns the delta at offset and whether one is present.
func (m *DeltaMap) Get(offset int) (uint8, bool) {
	i := m.search(offset)
	if i < len(m.entries) && m.entries[i].Offset == offset {
		return m.entries[i].Val, true
	}
	return 0, false
}

// Len reports the number of non-zero entries.
func (m *DeltaMap) Len() int { return len(m.entries) }

// Empty reports whether the map has no non-zero entries.
func (m *DeltaMap) Empty() bool { return len(m.entries) == 0 }

// MaxOffset returns the greatest offset with a non-zero entry, or 0 if the
// map is empty.
func (m *DeltaMap) MaxOffset() int {
	if len(m.entries) == 0 {
		return 0
	}
	return m.entries[len(m.entries)-1].Offset
}

// Range calls fn for every entry in ascending offset order.
func (m *DeltaMap) Range(fn func(offset int, val uint8)) {
	for _, e := range m.entries {
		fn(e.Offset, e.Val)
	}
}

// Equal reports whether two delta maps hold the same entries.
func (m *DeltaMap) Equal(o *DeltaMap) bool {
	if len(m.entries) != len(o.entries) {
		return false
	}
	for i := range m.entries {
		if m.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of m.
func (m *DeltaMap) Clone() *DeltaMap {
	c := &DeltaMap{entries: make([]delta, len(m.entries))}
	copy(c.entries, m.entries)
	return c
}
