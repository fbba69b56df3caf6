// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// Structural decode errors, per the class-file format taxonomy. Wrap these
// with DecodeError (or fmt.Errorf's %w) so callers can both errors.Is
// against the sentinel and recover the offset/index at which it was
// detected.
var (
	ErrTruncated               = errors.New("truncated: read past end of input")
	ErrBadMagic                = errors.New("bad magic number, not a class file")
	ErrBadConstantRef          = errors.New("constant pool index refers to an entry of the wrong tag")
	ErrWrongTag                = errors.New("constant pool entry has an unexpected tag for this accessor")
	ErrBadUTF8                 = errors.New("invalid modified-UTF-8 encoding")
	ErrUnknownOpcode           = errors.New("unrecognized bytecode opcode")
	ErrMalformedCode           = errors.New("code attribute failed to decode to a consistent length")
	ErrAttributeLengthMismatch = errors.New("attribute declared length does not match bytes consumed")
)

// DecodeError annotates a sentinel decode error with the byte offset and,
// where applicable, the constant-pool index at which it was detected.
type DecodeError struct {
	Err    error
	Offset int
	Index  int // -1 when not applicable
}

func (e *DecodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s (offset %d, cp index %d)", e.Err, e.Offset, e.Index)
	}
	return fmt.Sprintf("%s (offset %d)", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func newDecodeErr(err error, offset int) error {
	return &DecodeError{Err: err, Offset: offset, Index: -1}
}

func newCPErr(err error, offset, index int) error {
	return &DecodeError{Err: err, Offset: offset, Index: index}
}

// Warning records a recoverable anomaly found during decode: something
// the decoder continued past rather than failing on.
type Warning struct {
	Message string
	Offset  int
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (offset %d)", w.Message, w.Offset)
}
