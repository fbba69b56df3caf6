// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package classfile is a bit-exact decoder for the JVM class-file format:
// the constant pool, header, members, attributes, and bytecode, plus the
// cross-referencing needed to resolve symbolic constant-pool entries.
//
// It never executes or verifies bytecode (no symbolic execution, no
// verifier) and never recompiles or transforms a class file; it only
// decodes one into an immutable, in-memory tree.
package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/javatools-go/javatools/internal/xlog"
)

// Magic is the fixed class-file magic number (JVM §4.1).
const Magic = 0xCAFEBABE

// MaxKnownMajorVersion is the newest major version this decoder was
// written against (Java 24 == 68). Newer majors parse identically —
// nothing about the header format depends on the version — but are
// recorded as a Warning rather than rejected, since the header format
// itself never changes between versions.
const MaxKnownMajorVersion = 68

// Options configures a decode. The zero value is a strict, silently
// logging decode.
type Options struct {
	// Logger receives Warnf/Errorf calls for recoverable anomalies. Nil
	// means the silent default.
	Logger xlog.Logger
}

// ClassFile is one fully-decoded, immutable class file. No
// mutation is exposed after Decode returns.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16

	ConstantPool *ConstantPool

	AccessFlags uint16

	ThisClass  string
	SuperClass string // "" for java/lang/Object

	Interfaces []string

	Fields  []Field
	Methods []Method

	Attributes []Attribute

	// Warnings collects every recoverable anomaly found during decode:
	// attribute length mismatches, and an unsupported (too new) major
	// version. Decode never fails because of these.
	Warnings []Warning
}

// SourceFile returns the class's declared source file name, if present.
func (cf *ClassFile) SourceFile() (string, bool) {
	for _, a := range cf.Attributes {
		if v, ok := a.Body.(SourceFileAttribute); ok {
			name, err := cf.ConstantPool.AsUTF8(int(v.SourceFileIndex))
			if err == nil {
				return name, true
			}
		}
	}
	return "", false
}

// Signature returns the class's generic Signature attribute value, if any.
func (cf *ClassFile) Signature() (string, bool) {
	for _, a := range cf.Attributes {
		if v, ok := a.Body.(SignatureAttribute); ok {
			sig, err := cf.ConstantPool.AsUTF8(int(v.SignatureIndex))
			if err == nil {
				return sig, true
			}
		}
	}
	return "", false
}

// InnerClasses returns the class's InnerClasses attribute, if present.
func (cf *ClassFile) InnerClasses() (InnerClassesAttribute, bool) {
	for _, a := range cf.Attributes {
		if v, ok := a.Body.(InnerClassesAttribute); ok {
			return v, true
		}
	}
	return InnerClassesAttribute{}, false
}

// LoadFile memory-maps path and decodes it as a class file. The mapping
// is released once decode completes; ClassFile retains no reference to
// it (names and byte blobs it needs are copied or interned during
// decode), so a decoded class always outlives its source bytes.
func LoadFile(path string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer data.Unmap()

	return Decode(data, opts)
}

// Decode parses a complete class file from an in-memory byte slice.
func Decode(data []byte, opts *Options) (*ClassFile, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := xlog.NewHelper(opts.Logger)

	c := NewCursor(data)

	magic, err := c.U32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, newDecodeErr(ErrBadMagic, 0)
	}

	minor, err := c.U16()
	if err != nil {
		return nil, err
	}
	major, err := c.U16()
	if err != nil {
		return nil, err
	}

	cf := &ClassFile{MinorVersion: minor, MajorVersion: major}

	if major > MaxKnownMajorVersion {
		w := Warning{Message: "unsupported major version, parsing leniently", Offset: 6}
		cf.Warnings = append(cf.Warnings, w)
		log.Warnf("%s", w)
	}

	cpCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	cp, err := parseConstantPool(c, int(cpCount))
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp

	accessFlags, err := c.U16()
	if err != nil {
		return nil, err
	}
	cf.AccessFlags = accessFlags

	thisIdx, err := c.U16()
	if err != nil {
		return nil, err
	}
	thisName, err := cp.AsClassName(int(thisIdx))
	if err != nil {
		return nil, err
	}
	cf.ThisClass = thisName

	superIdx, err := c.U16()
	if err != nil {
		return nil, err
	}
	if superIdx != 0 {
		superName, err := cp.AsClassName(int(superIdx))
		if err != nil {
			return nil, err
		}
		cf.SuperClass = superName
	}

	ifaceCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	cf.Interfaces = make([]string, ifaceCount)
	for i := range cf.Interfaces {
		idx, err := c.U16()
		if err != nil {
			return nil, err
		}
		name, err := cp.AsClassName(int(idx))
		if err != nil {
			return nil, err
		}
		cf.Interfaces[i] = name
	}

	fields, err := parseFields(cp, c)
	if err != nil {
		return nil, err
	}
	cf.Fields = fields

	methods, err := parseMethods(cp, c)
	if err != nil {
		return nil, err
	}
	cf.Methods = methods

	attrs, err := parseAttributes(cp, c)
	if err != nil {
		return nil, err
	}
	cf.Attributes = attrs

	collectMismatchWarnings(cf, log)

	return cf, nil
}

func collectMismatchWarnings(cf *ClassFile, log *xlog.Helper) {
	note := func(name string) {
		w := Warning{Message: "attribute length mismatch in " + name, Offset: -1}
		cf.Warnings = append(cf.Warnings, w)
		log.Warnf("%s", w)
	}
	for _, a := range cf.Attributes {
		if a.LengthMismatch {
			note(a.Name)
		}
	}
	for _, f := range cf.Fields {
		for _, a := range f.Attributes {
			if a.LengthMismatch {
				note(f.Name + "." + a.Name)
			}
		}
	}
	for _, m := range cf.Methods {
		for _, a := range m.Attributes {
			if a.LengthMismatch {
				note(m.Name + m.Descriptor + "." + a.Name)
			}
			if code, ok := a.Body.(*CodeAttribute); ok {
				for _, ca := range code.Attributes {
					if ca.LengthMismatch {
						note(m.Name + m.Descriptor + ".Code." + ca.Name)
					}
				}
			}
		}
	}
}
