// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Opcode is a single JVM bytecode instruction opcode (JVM §6.5).
type Opcode uint8

// operandShape classifies how an opcode's operand bytes must be read.
// Most opcodes have a fixed-width operand; tableswitch, lookupswitch and
// wide are irregular and are special-cased in the decoder.
type operandShape int

const (
	shapeNone operandShape = iota
	shapeI1                 // one signed byte (bipush)
	shapeI2                 // one signed 16-bit immediate, not a branch (sipush)
	shapeLocalVar1          // one local-variable index byte
	shapeCPIndex1           // one constant-pool index byte (ldc)
	shapeCPIndex2           // one constant-pool index, two bytes
	shapeBranch2            // one signed 16-bit branch offset
	shapeBranch4            // one signed 32-bit branch offset
	shapeIinc               // index byte + signed const byte (widened under `wide`)
	shapeInvokeInterface    // cp index (2) + count (1) + 0 (1)
	shapeInvokeDynamic      // cp index (2) + 0 (1) + 0 (1)
	shapeNewarray           // atype (1 byte)
	shapeMultianewarray     // cp index (2) + dimensions (1)
	shapeTableSwitch        // variable-length, 4-byte aligned
	shapeLookupSwitch       // variable-length, 4-byte aligned
	shapeWide               // prefix, variable depending on the following opcode
)

type opInfo struct {
	name  string
	shape operandShape
}

var opcodeTable = map[Opcode]opInfo{
	0x00: {"nop", shapeNone},
	0x01: {"aconst_null", shapeNone},
	0x02: {"iconst_m1", shapeNone},
	0x03: {"iconst_0", shapeNone},
	0x04: {"iconst_1", shapeNone},
	0x05: {"iconst_2", shapeNone},
	0x06: {"iconst_3", shapeNone},
	0x07: {"iconst_4", shapeNone},
	0x08: {"iconst_5", shapeNone},
	0x09: {"lconst_0", shapeNone},
	0x0a: {"lconst_1", shapeNone},
	0x0b: {"fconst_0", shapeNone},
	0x0c: {"fconst_1", shapeNone},
	0x0d: {"fconst_2", shapeNone},
	0x0e: {"dconst_0", shapeNone},
	0x0f: {"dconst_1", shapeNone},
	0x10: {"bipush", shapeI1},
	0x11: {"sipush", shapeI2},
	0x12: {"ldc", shapeCPIndex1},
	0x13: {"ldc_w", shapeCPIndex2},
	0x14: {"ldc2_w", shapeCPIndex2},
	0x15: {"iload", shapeLocalVar1},
	0x16: {"lload", shapeLocalVar1},
	0x17: {"fload", shapeLocalVar1},
	0x18: {"dload", shapeLocalVar1},
	0x19: {"aload", shapeLocalVar1},
	0x1a: {"iload_0", shapeNone},
	0x1b: {"iload_1", shapeNone},
	0x1c: {"iload_2", shapeNone},
	0x1d: {"iload_3", shapeNone},
	0x1e: {"lload_0", shapeNone},
	0x1f: {"lload_1", shapeNone},
	0x20: {"lload_2", shapeNone},
	0x21: {"lload_3", shapeNone},
	0x22: {"fload_0", shapeNone},
	0x23: {"fload_1", shapeNone},
	0x24: {"fload_2", shapeNone},
	0x25: {"fload_3", shapeNone},
	0x26: {"dload_0", shapeNone},
	0x27: {"dload_1", shapeNone},
	0x28: {"dload_2", shapeNone},
	0x29: {"dload_3", shapeNone},
	0x2a: {"aload_0", shapeNone},
	0x2b: {"aload_1", shapeNone},
	0x2c: {"aload_2", shapeNone},
	0x2d: {"aload_3", shapeNone},
	0x2e: {"iaload", shapeNone},
	0x2f: {"laload", shapeNone},
	0x30: {"faload", shapeNone},
	0x31: {"daload", shapeNone},
	0x32: {"aaload", shapeNone},
	0x33: {"baload", shapeNone},
	0x34: {"caload", shapeNone},
	0x35: {"saload", shapeNone},
	0x36: {"istore", shapeLocalVar1},
	0x37: {"lstore", shapeLocalVar1},
	0x38: {"fstore", shapeLocalVar1},
	0x39: {"dstore", shapeLocalVar1},
	0x3a: {"astore", shapeLocalVar1},
	0x3b: {"istore_0", shapeNone},
	0x3c: {"istore_1", shapeNone},
	0x3d: {"istore_2", shapeNone},
	0x3e: {"istore_3", shapeNone},
	0x3f: {"lstore_0", shapeNone},
	0x40: {"lstore_1", shapeNone},
	0x41: {"lstore_2", shapeNone},
	0x42: {"lstore_3", shapeNone},
	0x43: {"fstore_0", shapeNone},
	0x44: {"fstore_1", shapeNone},
	0x45: {"fstore_2", shapeNone},
	0x46: {"fstore_3", shapeNone},
	0x47: {"dstore_0", shapeNone},
	0x48: {"dstore_1", shapeNone},
	0x49: {"dstore_2", shapeNone},
	0x4a: {"dstore_3", shapeNone},
	0x4b: {"astore_0", shapeNone},
	0x4c: {"astore_1", shapeNone},
	0x4d: {"astore_2", shapeNone},
	0x4e: {"astore_3", shapeNone},
	0x4f: {"iastore", shapeNone},
	0x50: {"lastore", shapeNone},
	0x51: {"fastore", shapeNone},
	0x52: {"dastore", shapeNone},
	0x53: {"aastore", shapeNone},
	0x54: {"bastore", shapeNone},
	0x55: {"castore", shapeNone},
	0x56: {"sastore", shapeNone},
	0x57: {"pop", shapeNone},
	0x58: {"pop2", shapeNone},
	0x59: {"dup", shapeNone},
	0x5a: {"dup_x1", shapeNone},
	0x5b: {"dup_x2", shapeNone},
	0x5c: {"dup2", shapeNone},
	0x5d: {"dup2_x1", shapeNone},
	0x5e: {"dup2_x2", shapeNone},
	0x5f: {"swap", shapeNone},
	0x60: {"iadd", shapeNone},
	0x61: {"ladd", shapeNone},
	0x62: {"fadd", shapeNone},
	0x63: {"dadd", shapeNone},
	0x64: {"isub", shapeNone},
	0x65: {"lsub", shapeNone},
	0x66: {"fsub", shapeNone},
	0x67: {"dsub", shapeNone},
	0x68: {"imul", shapeNone},
	0x69: {"lmul", shapeNone},
	0x6a: {"fmul", shapeNone},
	0x6b: {"dmul", shapeNone},
	0x6c: {"idiv", shapeNone},
	0x6d: {"ldiv", shapeNone},
	0x6e: {"fdiv", shapeNone},
	0x6f: {"ddiv", shapeNone},
	0x70: {"irem", shapeNone},
	0x71: {"lrem", shapeNone},
	0x72: {"frem", shapeNone},
	0x73: {"drem", shapeNone},
	0x74: {"ineg", shapeNone},
	0x75: {"lneg", shapeNone},
	0x76: {"fneg", shapeNone},
	0x77: {"dneg", shapeNone},
	0x78: {"ishl", shapeNone},
	0x79: {"lshl", shapeNone},
	0x7a: {"ishr", shapeNone},
	0x7b: {"lshr", shapeNone},
	0x7c: {"iushr", shapeNone},
	0x7d: {"lushr", shapeNone},
	0x7e: {"iand", shapeNone},
	0x7f: {"land", shapeNone},
	0x80: {"ior", shapeNone},
	0x81: {"lor", shapeNone},
	0x82: {"ixor", shapeNone},
	0x83: {"lxor", shapeNone},
	0x84: {"iinc", shapeIinc},
	0x85: {"i2l", shapeNone},
	0x86: {"i2f", shapeNone},
	0x87: {"i2d", shapeNone},
	0x88: {"l2i", shapeNone},
	0x89: {"l2f", shapeNone},
	0x8a: {"l2d", shapeNone},
	0x8b: {"f2i", shapeNone},
	0x8c: {"f2l", shapeNone},
	0x8d: {"f2d", shapeNone},
	0x8e: {"d2i", shapeNone},
	0x8f: {"d2l", shapeNone},
	0x90: {"d2f", shapeNone},
	0x91: {"i2b", shapeNone},
	0x92: {"i2c", shapeNone},
	0x93: {"i2s", shapeNone},
	0x94: {"lcmp", shapeNone},
	0x95: {"fcmpl", shapeNone},
	0x96: {"fcmpg", shapeNone},
	0x97: {"dcmpl", shapeNone},
	0x98: {"dcmpg", shapeNone},
	0x99: {"ifeq", shapeBranch2},
	0x9a: {"ifne", shapeBranch2},
	0x9b: {"iflt", shapeBranch2},
	0x9c: {"ifge", shapeBranch2},
	0x9d: {"ifgt", shapeBranch2},
	0x9e: {"ifle", shapeBranch2},
	0x9f: {"if_icmpeq", shapeBranch2},
	0xa0: {"if_icmpne", shapeBranch2},
	0xa1: {"if_icmplt", shapeBranch2},
	0xa2: {"if_icmpge", shapeBranch2},
	0xa3: {"if_icmpgt", shapeBranch2},
	0xa4: {"if_icmple", shapeBranch2},
	0xa5: {"if_acmpeq", shapeBranch2},
	0xa6: {"if_acmpne", shapeBranch2},
	0xa7: {"goto", shapeBranch2},
	0xa8: {"jsr", shapeBranch2},
	0xa9: {"ret", shapeLocalVar1},
	0xaa: {"tableswitch", shapeTableSwitch},
	0xab: {"lookupswitch", shapeLookupSwitch},
	0xac: {"ireturn", shapeNone},
	0xad: {"lreturn", shapeNone},
	0xae: {"freturn", shapeNone},
	0xaf: {"dreturn", shapeNone},
	0xb0: {"areturn", shapeNone},
	0xb1: {"return", shapeNone},
	0xb2: {"getstatic", shapeCPIndex2},
	0xb3: {"putstatic", shapeCPIndex2},
	0xb4: {"getfield", shapeCPIndex2},
	0xb5: {"putfield", shapeCPIndex2},
	0xb6: {"invokevirtual", shapeCPIndex2},
	0xb7: {"invokespecial", shapeCPIndex2},
	0xb8: {"invokestatic", shapeCPIndex2},
	0xb9: {"invokeinterface", shapeInvokeInterface},
	0xba: {"invokedynamic", shapeInvokeDynamic},
	0xbb: {"new", shapeCPIndex2},
	0xbc: {"newarray", shapeNewarray},
	0xbd: {"anewarray", shapeCPIndex2},
	0xbe: {"arraylength", shapeNone},
	0xbf: {"athrow", shapeNone},
	0xc0: {"checkcast", shapeCPIndex2},
	0xc1: {"instanceof", shapeCPIndex2},
	0xc2: {"monitorenter", shapeNone},
	0xc3: {"monitorexit", shapeNone},
	0xc4: {"wide", shapeWide},
	0xc5: {"multianewarray", shapeMultianewarray},
	0xc6: {"ifnull", shapeBranch2},
	0xc7: {"ifnonnull", shapeBranch2},
	0xc8: {"goto_w", shapeBranch4},
	0xc9: {"jsr_w", shapeBranch4},
	0xca: {"breakpoint", shapeNone},
	0xfe: {"impdep1", shapeNone},
	0xff: {"impdep2", shapeNone},
}

// Name returns the mnemonic for op, or "" if op is not a recognized
// opcode.
func (op Opcode) Name() string {
	if info, ok := opcodeTable[op]; ok {
		return info.name
	}
	return ""
}
