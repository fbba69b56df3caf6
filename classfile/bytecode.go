// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Instruction is one decoded bytecode instruction: its bytecode offset,
// opcode, and whichever operand fields its shape populates. Only the
// fields relevant to Opcode are meaningful; the rest are zero.
type Instruction struct {
	Offset int
	Opcode Opcode
	Wide   bool // true if reached via a `wide` prefix

	IntImm       int32 // bipush/sipush immediate, iinc const
	VarIndex     int   // local variable index (iload, istore, iinc, ret, ...)
	CPIndex      int   // constant-pool index operand
	BranchTarget int   // absolute bytecode offset (if*, goto, jsr, goto_w, jsr_w)
	InvokeCount  int   // invokeinterface's count byte
	NewarrayType int   // newarray's atype byte
	Dimensions   int   // multianewarray's dimension count

	TableSwitch  *TableSwitchOperand
	LookupSwitch *LookupSwitchOperand
}

// TableSwitchOperand is the decoded body of a tableswitch instruction.
type TableSwitchOperand struct {
	Default int
	Low     int32
	High    int32
	Targets []int // absolute offsets, one per index in [Low, High]
}

// LookupSwitchOperand is the decoded body of a lookupswitch instruction.
type LookupSwitchOperand struct {
	Default int
	Pairs   []LookupPair
}

// LookupPair is one (match, target) entry of a lookupswitch.
type LookupPair struct {
	Match  int32
	Target int
}

// decodeBytecode walks a method's raw bytecode blob into a sequence of
// Instructions. Offset 0 is the first byte of code, which is also what
// tableswitch/lookupswitch padding is computed relative to.
//
// The decoder enforces two invariants: forward
// progress every iteration, and an iteration count bounded by
// len(code); either violation raises ErrMalformedCode.
func decodeBytecode(code []byte) ([]Instruction, error) {
	c := &Cursor{data: code}
	var out []Instruction

	maxIterations := len(code)
	for iterations := 0; c.Remaining() > 0; iterations++ {
		if iterations >= maxIterations {
			return nil, newDecodeErr(ErrMalformedCode, c.Tell())
		}
		before := c.Tell()
		ins, err := decodeOneInstruction(c)
		if err != nil {
			return nil, err
		}
		if c.Tell() <= before {
			return nil, newDecodeErr(ErrMalformedCode, before)
		}
		out = append(out, ins)
	}
	if c.Tell() != len(code) {
		return nil, newDecodeErr(ErrMalformedCode, c.Tell())
	}
	return out, nil
}

func decodeOneInstruction(c *Cursor) (Instruction, error) {
	offset := c.Tell()
	opByte, err := c.U8()
	if err != nil {
		return Instruction{}, err
	}
	op := Opcode(opByte)

	if op == 0xc4 { // wide
		return decodeWide(c, offset)
	}

	info, known := opcodeTable[op]
	if !known {
		return Instruction{}, newDecodeErr(ErrUnknownOpcode, offset)
	}

	ins := Instruction{Offset: offset, Opcode: op}
	switch info.shape {
	case shapeNone:
		// nothing to read

	case shapeI1:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		ins.IntImm = int32(int8(v))

	case shapeI2:
		v, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		ins.IntImm = int32(int16(v))

	case shapeLocalVar1:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		ins.VarIndex = int(v)

	case shapeCPIndex1:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		ins.CPIndex = int(v)

	case shapeCPIndex2:
		v, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		ins.CPIndex = int(v)

	case shapeBranch2:
		v, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		ins.BranchTarget = offset + int(int16(v))

	case shapeBranch4:
		v, err := c.U32()
		if err != nil {
			return Instruction{}, err
		}
		ins.BranchTarget = offset + int(int32(v))

	case shapeIinc:
		idx, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		cst, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		ins.VarIndex = int(idx)
		ins.IntImm = int32(int8(cst))

	case shapeInvokeInterface:
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		count, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		zero, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		if zero != 0 {
			return Instruction{}, newDecodeErr(ErrMalformedCode, offset)
		}
		ins.CPIndex = int(idx)
		ins.InvokeCount = int(count)

	case shapeInvokeDynamic:
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		z1, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		z2, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		if z1 != 0 || z2 != 0 {
			return Instruction{}, newDecodeErr(ErrMalformedCode, offset)
		}
		ins.CPIndex = int(idx)

	case shapeNewarray:
		v, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		ins.NewarrayType = int(v)

	case shapeMultianewarray:
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		dims, err := c.U8()
		if err != nil {
			return Instruction{}, err
		}
		ins.CPIndex = int(idx)
		ins.Dimensions = int(dims)

	case shapeTableSwitch:
		ts, err := decodeTableSwitch(c, offset)
		if err != nil {
			return Instruction{}, err
		}
		ins.TableSwitch = ts

	case shapeLookupSwitch:
		ls, err := decodeLookupSwitch(c, offset)
		if err != nil {
			return Instruction{}, err
		}
		ins.LookupSwitch = ls

	default:
		return Instruction{}, newDecodeErr(ErrUnknownOpcode, offset)
	}
	return ins, nil
}

// decodeWide handles the `wide` prefix: the next opcode's operands widen
// from 8 to 16 bits, and iinc widens both its index and its constant.
func decodeWide(c *Cursor, prefixOffset int) (Instruction, error) {
	modOpByte, err := c.U8()
	if err != nil {
		return Instruction{}, err
	}
	modOp := Opcode(modOpByte)
	ins := Instruction{Offset: prefixOffset, Opcode: modOp, Wide: true}

	switch modOp {
	case 0x84: // iinc
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		cst, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		ins.VarIndex = int(idx)
		ins.IntImm = int32(int16(cst))
		return ins, nil

	case 0x15, 0x16, 0x17, 0x18, 0x19, // iload/lload/fload/dload/aload
		0x36, 0x37, 0x38, 0x39, 0x3a, // istore/lstore/fstore/dstore/astore
		0xa9: // ret
		idx, err := c.U16()
		if err != nil {
			return Instruction{}, err
		}
		ins.VarIndex = int(idx)
		return ins, nil

	default:
		return Instruction{}, newDecodeErr(ErrUnknownOpcode, prefixOffset)
	}
}

// decodeTableSwitch reads a tableswitch body: 0-3 padding bytes to reach
// 4-byte alignment (relative to the method's bytecode origin, i.e. the
// start of the Code array), then default/low/high/jump-table.
func decodeTableSwitch(c *Cursor, opcodeOffset int) (*TableSwitchOperand, error) {
	if err := skipSwitchPadding(c, opcodeOffset); err != nil {
		return nil, err
	}
	def, err := c.I32()
	if err != nil {
		return nil, err
	}
	low, err := c.I32()
	if err != nil {
		return nil, err
	}
	high, err := c.I32()
	if err != nil {
		return nil, err
	}
	if high < low {
		return nil, newDecodeErr(ErrMalformedCode, opcodeOffset)
	}
	n := int(high-low) + 1
	targets := make([]int, n)
	for i := 0; i < n; i++ {
		off, err := c.I32()
		if err != nil {
			return nil, err
		}
		targets[i] = opcodeOffset + int(off)
	}
	return &TableSwitchOperand{
		Default: opcodeOffset + int(def),
		Low:     low,
		High:    high,
		Targets: targets,
	}, nil
}

// decodeLookupSwitch reads a lookupswitch body: padding, default, npairs,
// then npairs (match, offset) pairs.
func decodeLookupSwitch(c *Cursor, opcodeOffset int) (*LookupSwitchOperand, error) {
	if err := skipSwitchPadding(c, opcodeOffset); err != nil {
		return nil, err
	}
	def, err := c.I32()
	if err != nil {
		return nil, err
	}
	npairs, err := c.I32()
	if err != nil {
		return nil, err
	}
	if npairs < 0 {
		return nil, newDecodeErr(ErrMalformedCode, opcodeOffset)
	}
	pairs := make([]LookupPair, npairs)
	for i := range pairs {
		match, err := c.I32()
		if err != nil {
			return nil, err
		}
		off, err := c.I32()
		if err != nil {
			return nil, err
		}
		pairs[i] = LookupPair{Match: match, Target: opcodeOffset + int(off)}
	}
	return &LookupSwitchOperand{
		Default: opcodeOffset + int(def),
		Pairs:   pairs,
	}, nil
}

func skipSwitchPadding(c *Cursor, opcodeOffset int) error {
	// Padding brings the cursor to the next 4-byte boundary counted from
	// the opcode's own offset, i.e. to align (opcodeOffset+1)+pad.
	afterOpcode := opcodeOffset + 1
	pad := (4 - (afterOpcode % 4)) % 4
	return c.Skip(pad)
}
