// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/javatools-go/javatools/classfile"
)

// cpBuilder assembles a constant pool byte stream incrementally, letting
// tests control entry order (so two otherwise-identical classes can be
// built with their pools in different orders to exercise pool
// invariance).
type cpBuilder struct {
	entries [][]byte
}

func newCPBuilder() *cpBuilder {
	return &cpBuilder{entries: [][]byte{nil}}
}

func (b *cpBuilder) utf8(s string) uint16 {
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(classfile.TagUtf8))
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
	b.entries = append(b.entries, buf.Bytes())
	return uint16(len(b.entries) - 1)
}

func (b *cpBuilder) class(name string) uint16 {
	ni := b.utf8(name)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(classfile.TagClass))
	binary.Write(buf, binary.BigEndian, ni)
	b.entries = append(b.entries, buf.Bytes())
	return uint16(len(b.entries) - 1)
}

func (b *cpBuilder) nameAndType(name, desc string) uint16 {
	ni := b.utf8(name)
	di := b.utf8(desc)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(classfile.TagNameAndType))
	binary.Write(buf, binary.BigEndian, ni)
	binary.Write(buf, binary.BigEndian, di)
	b.entries = append(b.entries, buf.Bytes())
	return uint16(len(b.entries) - 1)
}

func (b *cpBuilder) methodref(class, name, desc string) uint16 {
	ci := b.class(class)
	nti := b.nameAndType(name, desc)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(classfile.TagMethodref))
	binary.Write(buf, binary.BigEndian, ci)
	binary.Write(buf, binary.BigEndian, nti)
	b.entries = append(b.entries, buf.Bytes())
	return uint16(len(b.entries) - 1)
}

// fieldSpec and methodSpec describe one member to embed in a built class.
type fieldSpec struct {
	access uint16
	name   string
	desc   string
}

type methodSpec struct {
	access    uint16
	name      string
	desc      string
	codeFn    func(cp *cpBuilder) []byte // nil for no Code attribute (abstract/native)
	maxStack  uint16
	maxLocals uint16
}

// classSpec describes a minimal class to synthesize. Field and method
// order is preserved as given, letting a test reorder them without
// changing semantics, to prove comparator output is order-independent.
type classSpec struct {
	thisName  string
	superName string
	fields    []fieldSpec
	methods   []methodSpec
}

func buildClass(t *testing.T, spec classSpec) []byte {
	t.Helper()
	cp := newCPBuilder()
	thisIdx := cp.class(spec.thisName)
	superIdx := cp.class(spec.superName)
	codeNameIdx := cp.utf8("Code")

	type builtField struct {
		nameIdx, descIdx uint16
		access           uint16
	}
	var fields []builtField
	for _, f := range spec.fields {
		fields = append(fields, builtField{cp.utf8(f.name), cp.utf8(f.desc), f.access})
	}

	type builtMethod struct {
		nameIdx, descIdx uint16
		access           uint16
		code             []byte
		maxStack         uint16
		maxLocals        uint16
	}
	var methods []builtMethod
	for _, m := range spec.methods {
		nameIdx, descIdx := cp.utf8(m.name), cp.utf8(m.desc)
		var code []byte
		if m.codeFn != nil {
			code = m.codeFn(cp)
		}
		methods = append(methods, builtMethod{nameIdx, descIdx, m.access, code, m.maxStack, m.maxLocals})
	}

	out := &bytes.Buffer{}
	binary.Write(out, binary.BigEndian, uint32(classfile.Magic))
	binary.Write(out, binary.BigEndian, uint16(0))
	binary.Write(out, binary.BigEndian, uint16(52))

	binary.Write(out, binary.BigEndian, uint16(len(cp.entries)))
	for i := 1; i < len(cp.entries); i++ {
		out.Write(cp.entries[i])
	}

	binary.Write(out, binary.BigEndian, uint16(classfile.AccPublic|classfile.AccSuper))
	binary.Write(out, binary.BigEndian, thisIdx)
	binary.Write(out, binary.BigEndian, superIdx)
	binary.Write(out, binary.BigEndian, uint16(0)) // interfaces_count

	binary.Write(out, binary.BigEndian, uint16(len(fields)))
	for _, f := range fields {
		binary.Write(out, binary.BigEndian, f.access)
		binary.Write(out, binary.BigEndian, f.nameIdx)
		binary.Write(out, binary.BigEndian, f.descIdx)
		binary.Write(out, binary.BigEndian, uint16(0)) // attributes_count
	}

	binary.Write(out, binary.BigEndian, uint16(len(methods)))
	for _, m := range methods {
		binary.Write(out, binary.BigEndian, m.access)
		binary.Write(out, binary.BigEndian, m.nameIdx)
		binary.Write(out, binary.BigEndian, m.descIdx)
		if m.code == nil {
			binary.Write(out, binary.BigEndian, uint16(0)) // attributes_count
			continue
		}
		binary.Write(out, binary.BigEndian, uint16(1))
		codeBody := &bytes.Buffer{}
		binary.Write(codeBody, binary.BigEndian, m.maxStack)
		binary.Write(codeBody, binary.BigEndian, m.maxLocals)
		binary.Write(codeBody, binary.BigEndian, uint32(len(m.code)))
		codeBody.Write(m.code)
		binary.Write(codeBody, binary.BigEndian, uint16(0)) // exception_table_length
		binary.Write(codeBody, binary.BigEndian, uint16(0)) // attributes_count
		binary.Write(out, binary.BigEndian, codeNameIdx)
		binary.Write(out, binary.BigEndian, uint32(codeBody.Len()))
		out.Write(codeBody.Bytes())
	}

	binary.Write(out, binary.BigEndian, uint16(0)) // class attributes_count
	return out.Bytes()
}

// invokestaticCall returns bytecode calling class.name(desc) then
// returning void: invokestatic <methodref idx>, return.
func invokestaticCall(cp *cpBuilder, class, name, desc string) []byte {
	idx := cp.methodref(class, name, desc)
	var code bytes.Buffer
	code.WriteByte(0xb8) // invokestatic
	binary.Write(&code, binary.BigEndian, idx)
	code.WriteByte(0xb1) // return
	return code.Bytes()
}

func decode(t *testing.T, data []byte) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Decode(data, nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return cf
}
