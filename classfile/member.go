// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Access flag bits shared across classes, fields, and methods (JVM §4.1,
// §4.5, §4.6 — the bit positions overlap by design, only the legal
// combinations differ per member kind).
const (
	AccPublic       uint16 = 0x0001
	AccPrivate      uint16 = 0x0002
	AccProtected    uint16 = 0x0004
	AccStatic       uint16 = 0x0008
	AccFinal        uint16 = 0x0010
	AccSuper        uint16 = 0x0020 // class: treat invokespecial per JLS; also ACC_SYNCHRONIZED on methods
	AccSynchronized uint16 = 0x0020
	AccVolatile     uint16 = 0x0040
	AccBridge       uint16 = 0x0040
	AccTransient    uint16 = 0x0080
	AccVarargs      uint16 = 0x0080
	AccNative       uint16 = 0x0100
	AccInterface    uint16 = 0x0200
	AccAbstract     uint16 = 0x0400
	AccStrict       uint16 = 0x0800
	AccSynthetic    uint16 = 0x1000
	AccAnnotation   uint16 = 0x2000
	AccEnum         uint16 = 0x4000
	AccModule       uint16 = 0x8000
)

// Field is a decoded field_info structure.
type Field struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// ConstantValue returns the field's ConstantValue attribute, if any.
func (f *Field) ConstantValue() (ConstantValueAttribute, bool) {
	for _, a := range f.Attributes {
		if v, ok := a.Body.(ConstantValueAttribute); ok {
			return v, true
		}
	}
	return ConstantValueAttribute{}, false
}

// Method is a decoded method_info structure.
type Method struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

// Code returns the method's Code attribute, if any (methods declared
// native or abstract have none).
func (m *Method) Code() (*CodeAttribute, bool) {
	for _, a := range m.Attributes {
		if v, ok := a.Body.(*CodeAttribute); ok {
			return v, true
		}
	}
	return nil, false
}

// Exceptions returns the method's declared checked-exception classes.
func (m *Method) Exceptions() (ExceptionsAttribute, bool) {
	for _, a := range m.Attributes {
		if v, ok := a.Body.(ExceptionsAttribute); ok {
			return v, true
		}
	}
	return ExceptionsAttribute{}, false
}

func parseFields(cp *ConstantPool, c *Cursor) ([]Field, error) {
	count, err := c.U16()
	if err != nil {
		return nil, err
	}
	fields := make([]Field, count)
	for i := range fields {
		access, err := c.U16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.U16()
		if err != nil {
			return nil, err
		}
		descIdx, err := c.U16()
		if err != nil {
			return nil, err
		}
		name, err := cp.AsUTF8(int(nameIdx))
		if err != nil {
			return nil, err
		}
		desc, err := cp.AsUTF8(int(descIdx))
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributes(cp, c)
		if err != nil {
			return nil, err
		}
		fields[i] = Field{AccessFlags: access, Name: name, Descriptor: desc, Attributes: attrs}
	}
	return fields, nil
}

func parseMethods(cp *ConstantPool, c *Cursor) ([]Method, error) {
	count, err := c.U16()
	if err != nil {
		return nil, err
	}
	methods := make([]Method, count)
	for i := range methods {
		access, err := c.U16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := c.U16()
		if err != nil {
			return nil, err
		}
		descIdx, err := c.U16()
		if err != nil {
			return nil, err
		}
		name, err := cp.AsUTF8(int(nameIdx))
		if err != nil {
			return nil, err
		}
		desc, err := cp.AsUTF8(int(descIdx))
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributes(cp, c)
		if err != nil {
			return nil, err
		}
		methods[i] = Method{AccessFlags: access, Name: name, Descriptor: desc, Attributes: attrs}
	}
	return methods, nil
}
