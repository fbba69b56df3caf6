// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// ExceptionTableEntry is one entry of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means "any" (used for finally blocks)
}

// CodeAttribute is the decoded body of a method's "Code" attribute: a
// max-stack, max-locals, a bytecode blob, an exception table, and
// nested attributes.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte // raw bytecode, retained for hashing/round-trip
	Instructions   []Instruction
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute // LineNumberTable, LocalVariableTable(Type), StackMapTable, ...
}

// LineNumberTable returns the decoded LineNumberTable attribute among
// Attributes, if present.
func (c *CodeAttribute) LineNumberTable() (LineNumberTableAttribute, bool) {
	for _, a := range c.Attributes {
		if v, ok := a.Body.(LineNumberTableAttribute); ok {
			return v, true
		}
	}
	return LineNumberTableAttribute{}, false
}

func parseCodeAttribute(cp *ConstantPool, c *Cursor) (*CodeAttribute, error) {
	maxStack, err := c.U16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := c.U16()
	if err != nil {
		return nil, err
	}
	codeLen, err := c.U32()
	if err != nil {
		return nil, err
	}
	code, err := c.Bytes(int(codeLen))
	if err != nil {
		return nil, err
	}

	excCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		e := &excTable[i]
		if e.StartPC, err = c.U16(); err != nil {
			return nil, err
		}
		if e.EndPC, err = c.U16(); err != nil {
			return nil, err
		}
		if e.HandlerPC, err = c.U16(); err != nil {
			return nil, err
		}
		if e.CatchType, err = c.U16(); err != nil {
			return nil, err
		}
	}

	attrs, err := parseAttributes(cp, c)
	if err != nil {
		return nil, err
	}

	instructions, err := decodeBytecode(code)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		Instructions:   instructions,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}
