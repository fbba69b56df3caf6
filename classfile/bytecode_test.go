// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

// TestTableSwitchPadding covers a tableswitch at
// bytecode offset 5, so 2 padding bytes are needed to reach offset 8.
func TestTableSwitchPadding(t *testing.T) {
	code := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, // 5 nops, offsets 0..4
		0xaa,       // tableswitch at offset 5
		0x00, 0x00, // 2 padding bytes -> offset 8
		0x00, 0x00, 0x00, 0x0a, // default = 10 (absolute offset 5+10=15)
		0x00, 0x00, 0x00, 0x00, // low = 0
		0x00, 0x00, 0x00, 0x01, // high = 1
		0x00, 0x00, 0x00, 0x14, // target[0] = 20 (absolute 25)
		0x00, 0x00, 0x00, 0x15, // target[1] = 21 (absolute 26)
	}

	instructions, err := decodeBytecode(code)
	if err != nil {
		t.Fatalf("decodeBytecode failed: %v", err)
	}

	var ts *Instruction
	for i := range instructions {
		if instructions[i].Opcode.Name() == "tableswitch" {
			ts = &instructions[i]
		}
	}
	if ts == nil {
		t.Fatal("no tableswitch instruction decoded")
	}
	if ts.Offset != 5 {
		t.Errorf("tableswitch offset = %d, want 5", ts.Offset)
	}
	sw := ts.TableSwitch
	if sw == nil {
		t.Fatal("TableSwitch operand not populated")
	}
	if sw.Default != 15 {
		t.Errorf("default target = %d, want 15", sw.Default)
	}
	if sw.Low != 0 || sw.High != 1 {
		t.Errorf("low/high = %d/%d, want 0/1", sw.Low, sw.High)
	}
	if len(sw.Targets) != 2 || sw.Targets[0] != 25 || sw.Targets[1] != 26 {
		t.Errorf("targets = %v, want [25 26]", sw.Targets)
	}
}

func TestWidePrefixWidensIinc(t *testing.T) {
	code := []byte{
		0xc4,       // wide
		0x84,       // iinc
		0x01, 0x00, // index = 256 (needs wide)
		0x00, 0x05, // const = 5
		0xb1, // return
	}
	instructions, err := decodeBytecode(code)
	if err != nil {
		t.Fatalf("decodeBytecode failed: %v", err)
	}
	if len(instructions) != 2 {
		t.Fatalf("len(instructions) = %d, want 2", len(instructions))
	}
	ins := instructions[0]
	if !ins.Wide {
		t.Error("expected Wide == true")
	}
	if ins.VarIndex != 256 {
		t.Errorf("VarIndex = %d, want 256", ins.VarIndex)
	}
	if ins.IntImm != 5 {
		t.Errorf("IntImm = %d, want 5", ins.IntImm)
	}
}

func TestUnknownOpcodeFails(t *testing.T) {
	// 0xcb is not assigned to any JVM instruction.
	code := []byte{0xcb}
	_, err := decodeBytecode(code)
	if err == nil {
		t.Fatal("expected an UnknownOpcode error")
	}
}

func TestInvokeDynamicOperand(t *testing.T) {
	code := []byte{0xba, 0x00, 0x01, 0x00, 0x00}
	instructions, err := decodeBytecode(code)
	if err != nil {
		t.Fatalf("decodeBytecode failed: %v", err)
	}
	if len(instructions) != 1 {
		t.Fatalf("len(instructions) = %d, want 1", len(instructions))
	}
	if instructions[0].CPIndex != 1 {
		t.Errorf("CPIndex = %d, want 1", instructions[0].CPIndex)
	}
}

func TestMalformedCodeNonZeroPaddingBytes(t *testing.T) {
	// invokedynamic with non-zero trailing bytes is malformed.
	code := []byte{0xba, 0x00, 0x01, 0x00, 0x01}
	_, err := decodeBytecode(code)
	if err == nil {
		t.Fatal("expected MalformedCode for non-zero invokedynamic padding")
	}
}
