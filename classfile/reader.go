// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "math"

// Cursor is a bounds-checked big-endian reader over an immutable byte
// slice. It never copies the underlying bytes; Sub carves out a
// length-prefixed substructure (an attribute body, a Code blob) with its
// own independent bound.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Tell returns the current offset.
func (c *Cursor) Tell() int { return c.pos }

// Len returns the total length of the cursor's backing slice.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the cursor to an absolute offset. It does not itself bound-
// check against data length; the next read will fail with Truncated if
// the seek went out of range.
func (c *Cursor) Seek(offset int) { c.pos = offset }

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return newDecodeErr(ErrTruncated, c.pos)
	}
	c.pos += n
	return nil
}

func (c *Cursor) need(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return newDecodeErr(ErrTruncated, c.pos)
	}
	return nil
}

// U8 reads one unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// U16 reads a big-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := uint16(c.data[c.pos])<<8 | uint16(c.data[c.pos+1])
	c.pos += 2
	return v, nil
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := uint32(c.data[c.pos])<<24 | uint32(c.data[c.pos+1])<<16 |
		uint32(c.data[c.pos+2])<<8 | uint32(c.data[c.pos+3])
	c.pos += 4
	return v, nil
}

// U64 reads a big-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	hi, err := c.U32()
	if err != nil {
		return 0, err
	}
	lo, err := c.U32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// I32 reads a big-endian signed int32.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// I64 reads a big-endian signed int64.
func (c *Cursor) I64() (int64, error) {
	v, err := c.U64()
	return int64(v), err
}

// F32 reads an IEEE-754 single-precision float.
func (c *Cursor) F32() (float32, error) {
	v, err := c.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// F64 reads an IEEE-754 double-precision float.
func (c *Cursor) F64() (float64, error) {
	v, err := c.U64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// Bytes reads and returns the next n bytes. The returned slice aliases the
// cursor's backing array; callers that need to retain it beyond the
// decoded class's lifetime must copy it.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Sub carves out a child cursor over the next n bytes and advances past
// them, so a malformed substructure can never read beyond its declared
// bound. Used for attribute bodies and Code blobs.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	b, err := c.Bytes(n)
	if err != nil {
		return nil, err
	}
	return &Cursor{data: b}, nil
}
