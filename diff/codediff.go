// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import (
	"fmt"

	"github.com/javatools-go/javatools/classfile"
)

// diffCode compares two Code attributes by semantic equivalence: CP
// indices are resolved through their own pool before comparison, so
// permuting either side's constant pool never produces a difference.
func diffCode(methodKey string, left, right *classfile.CodeAttribute, leftCP, rightCP *classfile.ConstantPool) (*Delta, error) {
	id := methodKey + "#code"
	var children []*Delta

	n := len(left.Instructions)
	if len(right.Instructions) > n {
		n = len(right.Instructions)
	}
	for i := 0; i < n; i++ {
		if i >= len(left.Instructions) {
			children = append(children, addedNode("instruction", fmt.Sprintf("%s[%d]", id, i), "", right.Instructions[i].Opcode.Name()))
			continue
		}
		if i >= len(right.Instructions) {
			children = append(children, removedNode("instruction", fmt.Sprintf("%s[%d]", id, i), "", left.Instructions[i].Opcode.Name()))
			continue
		}
		lv, err := resolvedInstruction(left.Instructions[i], leftCP)
		if err != nil {
			return nil, err
		}
		rv, err := resolvedInstruction(right.Instructions[i], rightCP)
		if err != nil {
			return nil, err
		}
		change := Unchanged
		if !lv.equal(rv) {
			change = Modified
		}
		insID := fmt.Sprintf("%s[%d]", id, i)
		children = append(children, &Delta{
			Kind: "instruction", Change: change, ID: insID,
			Left: lv.String(), Right: rv.String(),
		})
	}

	lln, _ := left.LineNumberTable()
	rln, _ := right.LineNumberTable()
	children = append(children, leaf("line_numbers", id+"#lines", "line numbers", fmt.Sprintf("%+v", lln), fmt.Sprintf("%+v", rln), IgnoreLines))

	return node("code", id, "code", children), nil
}

// resolvedComparable is a display-and-equality-friendly view of one
// instruction: its opcode, its non-symbolic operands, and —
// when it carries a constant-pool index — the resolved symbol instead of
// the raw index.
type resolvedComparable struct {
	Opcode       classfile.Opcode
	IntImm       int32
	VarIndex     int
	BranchTarget int
	InvokeCount  int
	NewarrayType int
	Dimensions   int
	TableSwitch  *classfile.TableSwitchOperand
	LookupSwitch *classfile.LookupSwitchOperand
	Resolved     *classfile.ResolvedConstant
}

// equal compares two resolved instructions by value, dereferencing the
// pointer fields instead of comparing their addresses.
func (c resolvedComparable) equal(o resolvedComparable) bool {
	if c.Opcode != o.Opcode || c.IntImm != o.IntImm || c.VarIndex != o.VarIndex ||
		c.BranchTarget != o.BranchTarget || c.InvokeCount != o.InvokeCount ||
		c.NewarrayType != o.NewarrayType || c.Dimensions != o.Dimensions {
		return false
	}
	if (c.Resolved == nil) != (o.Resolved == nil) {
		return false
	}
	if c.Resolved != nil {
		// RefRawIndex is a raw pool index, so it is left out.
		l, r := *c.Resolved, *o.Resolved
		l.RefRawIndex, r.RefRawIndex = 0, 0
		if l != r {
			return false
		}
	}
	if (c.TableSwitch == nil) != (o.TableSwitch == nil) {
		return false
	}
	if c.TableSwitch != nil {
		if c.TableSwitch.Default != o.TableSwitch.Default || c.TableSwitch.Low != o.TableSwitch.Low || c.TableSwitch.High != o.TableSwitch.High {
			return false
		}
		if len(c.TableSwitch.Targets) != len(o.TableSwitch.Targets) {
			return false
		}
		for i := range c.TableSwitch.Targets {
			if c.TableSwitch.Targets[i] != o.TableSwitch.Targets[i] {
				return false
			}
		}
	}
	if (c.LookupSwitch == nil) != (o.LookupSwitch == nil) {
		return false
	}
	if c.LookupSwitch != nil {
		if c.LookupSwitch.Default != o.LookupSwitch.Default || len(c.LookupSwitch.Pairs) != len(o.LookupSwitch.Pairs) {
			return false
		}
		for i := range c.LookupSwitch.Pairs {
			if c.LookupSwitch.Pairs[i] != o.LookupSwitch.Pairs[i] {
				return false
			}
		}
	}
	return true
}

func (c resolvedComparable) String() string {
	if c.Resolved != nil {
		return fmt.Sprintf("%s %+v", c.Opcode.Name(), *c.Resolved)
	}
	return c.Opcode.Name()
}

func resolvedInstruction(ins classfile.Instruction, cp *classfile.ConstantPool) (resolvedComparable, error) {
	rc := resolvedComparable{
		Opcode:       ins.Opcode,
		IntImm:       ins.IntImm,
		VarIndex:     ins.VarIndex,
		BranchTarget: ins.BranchTarget,
		InvokeCount:  ins.InvokeCount,
		NewarrayType: ins.NewarrayType,
		Dimensions:   ins.Dimensions,
		TableSwitch:  ins.TableSwitch,
		LookupSwitch: ins.LookupSwitch,
	}
	if ins.CPIndex != 0 {
		r, err := cp.Resolve(ins.CPIndex)
		if err != nil {
			return resolvedComparable{}, err
		}
		rc.Resolved = &r
	}
	return rc, nil
}
