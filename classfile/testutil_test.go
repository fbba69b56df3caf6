// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"encoding/binary"
)

// classBuilder synthesizes minimal, well-formed class-file byte streams
// for tests. No JDK is available in this environment to compile real
// fixtures, so tests build the exact bytes they need and assert on the
// decoded structure.
type classBuilder struct {
	minor, major uint16
	cpEntries    [][]byte // cp_info byte streams, index 1-based (0 is a placeholder)
	accessFlags  uint16
	thisIdx      uint16
	superIdx     uint16
	interfaces   []uint16
	fields       []byte
	methods      []byte
	attrs        []byte
	fieldCount   uint16
	methodCount  uint16
	attrCount    uint16
}

func newClassBuilder() *classBuilder {
	return &classBuilder{
		minor:     0,
		major:     52,
		cpEntries: [][]byte{nil}, // slot 0 placeholder
	}
}

func (b *classBuilder) addUTF8(s string) uint16 {
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(TagUtf8))
	raw := encodeModifiedUTF8(s)
	binary.Write(buf, binary.BigEndian, uint16(len(raw)))
	buf.Write(raw)
	b.cpEntries = append(b.cpEntries, buf.Bytes())
	return uint16(len(b.cpEntries) - 1)
}

func (b *classBuilder) addClass(name string) uint16 {
	nameIdx := b.addUTF8(name)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(TagClass))
	binary.Write(buf, binary.BigEndian, nameIdx)
	b.cpEntries = append(b.cpEntries, buf.Bytes())
	return uint16(len(b.cpEntries) - 1)
}

func (b *classBuilder) addNameAndType(name, desc string) uint16 {
	nameIdx := b.addUTF8(name)
	descIdx := b.addUTF8(desc)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(TagNameAndType))
	binary.Write(buf, binary.BigEndian, nameIdx)
	binary.Write(buf, binary.BigEndian, descIdx)
	b.cpEntries = append(b.cpEntries, buf.Bytes())
	return uint16(len(b.cpEntries) - 1)
}

func (b *classBuilder) addMethodref(class, name, desc string) uint16 {
	classIdx := b.addClass(class)
	natIdx := b.addNameAndType(name, desc)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(TagMethodref))
	binary.Write(buf, binary.BigEndian, classIdx)
	binary.Write(buf, binary.BigEndian, natIdx)
	b.cpEntries = append(b.cpEntries, buf.Bytes())
	return uint16(len(b.cpEntries) - 1)
}

func (b *classBuilder) addString(s string) uint16 {
	idx := b.addUTF8(s)
	buf := &bytes.Buffer{}
	buf.WriteByte(byte(TagString))
	binary.Write(buf, binary.BigEndian, idx)
	b.cpEntries = append(b.cpEntries, buf.Bytes())
	return uint16(len(b.cpEntries) - 1)
}

// attribute appends a raw attribute (name already interned) to dst.
func (b *classBuilder) attribute(dst *bytes.Buffer, nameIdx uint16, body []byte) {
	binary.Write(dst, binary.BigEndian, nameIdx)
	binary.Write(dst, binary.BigEndian, uint32(len(body)))
	dst.Write(body)
}

// codeAttributeBody builds a Code attribute body with no exception table
// and no nested attributes.
func codeAttributeBody(maxStack, maxLocals uint16, code []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, maxStack)
	binary.Write(buf, binary.BigEndian, maxLocals)
	binary.Write(buf, binary.BigEndian, uint32(len(code)))
	buf.Write(code)
	binary.Write(buf, binary.BigEndian, uint16(0)) // exception_table_length
	binary.Write(buf, binary.BigEndian, uint16(0)) // attributes_count
	return buf.Bytes()
}

// objectLikeClassBytes builds a class file for java/lang/Object itself:
// super_class is 0, since Object has no superclass.
func objectLikeClassBytes(b *classBuilder) []byte {
	thisIdx := b.addClass("java/lang/Object")

	out := &bytes.Buffer{}
	binary.Write(out, binary.BigEndian, uint32(Magic))
	binary.Write(out, binary.BigEndian, b.minor)
	binary.Write(out, binary.BigEndian, b.major)

	binary.Write(out, binary.BigEndian, uint16(len(b.cpEntries)))
	for i := 1; i < len(b.cpEntries); i++ {
		out.Write(b.cpEntries[i])
	}

	binary.Write(out, binary.BigEndian, uint16(AccPublic))
	binary.Write(out, binary.BigEndian, thisIdx)
	binary.Write(out, binary.BigEndian, uint16(0)) // super_class = 0
	binary.Write(out, binary.BigEndian, uint16(0)) // interfaces_count
	binary.Write(out, binary.BigEndian, uint16(0)) // fields_count
	binary.Write(out, binary.BigEndian, uint16(0)) // methods_count
	binary.Write(out, binary.BigEndian, uint16(0)) // attributes_count
	return out.Bytes()
}

// build assembles the full class file, wiring this_class to simple/Sample
// and super_class to java/lang/Object, and adding one method "m" "()V"
// whose Code is code.
func (b *classBuilder) build(code []byte) []byte {
	thisIdx := b.addClass("simple/Sample")
	superIdx := b.addClass("java/lang/Object")
	codeNameIdx := b.addUTF8("Code")
	methodNameIdx := b.addUTF8("m")
	methodDescIdx := b.addUTF8("()V")

	out := &bytes.Buffer{}
	binary.Write(out, binary.BigEndian, uint32(Magic))
	binary.Write(out, binary.BigEndian, b.minor)
	binary.Write(out, binary.BigEndian, b.major)

	binary.Write(out, binary.BigEndian, uint16(len(b.cpEntries))) // cp_count
	for i := 1; i < len(b.cpEntries); i++ {
		out.Write(b.cpEntries[i])
	}

	binary.Write(out, binary.BigEndian, uint16(AccPublic|AccSuper))
	binary.Write(out, binary.BigEndian, thisIdx)
	binary.Write(out, binary.BigEndian, superIdx)
	binary.Write(out, binary.BigEndian, uint16(0)) // interfaces_count

	binary.Write(out, binary.BigEndian, uint16(0)) // fields_count

	binary.Write(out, binary.BigEndian, uint16(1)) // methods_count
	binary.Write(out, binary.BigEndian, uint16(AccPublic))
	binary.Write(out, binary.BigEndian, methodNameIdx)
	binary.Write(out, binary.BigEndian, methodDescIdx)
	binary.Write(out, binary.BigEndian, uint16(1)) // method attributes_count
	b.attribute(out, codeNameIdx, codeAttributeBody(2, 1, code))

	binary.Write(out, binary.BigEndian, uint16(0)) // class attributes_count

	return out.Bytes()
}
