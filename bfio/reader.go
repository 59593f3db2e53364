// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bfio

import (
	"bufio"
	"errors"
	"io"
)

// ErrEndOfInput is returned by Reader.ReadByte once the underlying stream is
// exhausted, distinguishing a clean end-of-input from a genuine I/O failure.
var ErrEndOfInput = errors.New("bfio: end of input")

// Reader reads the single bytes Getchar consumes, one at a time.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader pulling bytes from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadByte returns the next input byte, or ErrEndOfInput once r is
// exhausted. Any other error is returned unwrapped from the underlying
// reader.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, ErrEndOfInput
	}
	return b, err
}
