// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "fmt"

// Tag identifies the variant of a constant pool entry, per JVM §4.4.
type Tag uint8

const (
	TagUtf8               Tag = 1
	TagInteger             Tag = 3
	TagFloat               Tag = 4
	TagLong                Tag = 5
	TagDouble              Tag = 6
	TagClass               Tag = 7
	TagString              Tag = 8
	TagFieldref            Tag = 9
	TagMethodref           Tag = 10
	TagInterfaceMethodref  Tag = 11
	TagNameAndType         Tag = 12
	TagMethodHandle        Tag = 15
	TagMethodType          Tag = 16
	TagDynamic             Tag = 17
	TagInvokeDynamic       Tag = 18
	TagModule              Tag = 19
	TagPackage             Tag = 20
)

func (t Tag) String() string {
	switch t {
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagDynamic:
		return "Dynamic"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	case TagModule:
		return "Module"
	case TagPackage:
		return "Package"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Entry is one constant pool slot. Only the fields relevant to its Tag are
// populated; the rest are zero. Indices (NameIndex, ClassIndex, ...) refer
// to other entries in the same pool, 1-based.
type Entry struct {
	Tag Tag

	// TagUtf8
	UTF8 string

	// TagInteger / TagFloat
	Int32Val int32
	Float32Val float32

	// TagLong / TagDouble (occupy this slot and the next, which is unusable)
	Int64Val  int64
	Float64Val float64

	// TagClass / TagString / TagMethodType / TagModule / TagPackage
	NameIndex uint16

	// TagFieldref / TagMethodref / TagInterfaceMethodref
	ClassIndex       uint16
	NameAndTypeIndex uint16

	// TagNameAndType
	DescriptorIndex uint16

	// TagMethodHandle
	RefKind  uint8
	RefIndex uint16

	// TagDynamic / TagInvokeDynamic
	BootstrapMethodAttrIndex uint16
	// NameAndTypeIndex reused for Dynamic/InvokeDynamic
}

// ConstantPool is the class file's ordered, 1-indexed table of literals and
// symbolic references. Index 0 and the slot following a Long/Double entry
// are reserved and unusable, per JVM §4.4.
type ConstantPool struct {
	entries []Entry // entries[0] is always the unusable placeholder
}

// Count returns cp_count, i.e. len(entries) including the unusable slot 0.
func (cp *ConstantPool) Count() int { return len(cp.entries) }

func (cp *ConstantPool) inRange(i int) bool {
	return i >= 1 && i < len(cp.entries)
}

// Get returns the raw entry at index i.
func (cp *ConstantPool) Get(i int) (Entry, error) {
	if !cp.inRange(i) {
		return Entry{}, newCPErr(ErrBadConstantRef, 0, i)
	}
	e := cp.entries[i]
	if e.Tag == 0 {
		// the unusable slot after a Long/Double
		return Entry{}, newCPErr(ErrBadConstantRef, 0, i)
	}
	return e, nil
}

func (cp *ConstantPool) expectTag(i int, want Tag) (Entry, error) {
	e, err := cp.Get(i)
	if err != nil {
		return Entry{}, err
	}
	if e.Tag != want {
		return Entry{}, newCPErr(ErrWrongTag, 0, i)
	}
	return e, nil
}

// AsUTF8 returns the string of a TagUtf8 entry.
func (cp *ConstantPool) AsUTF8(i int) (string, error) {
	e, err := cp.expectTag(i, TagUtf8)
	if err != nil {
		return "", err
	}
	return e.UTF8, nil
}

// AsClassName resolves a TagClass entry to its Utf8 name.
func (cp *ConstantPool) AsClassName(i int) (string, error) {
	e, err := cp.expectTag(i, TagClass)
	if err != nil {
		return "", err
	}
	return cp.AsUTF8(int(e.NameIndex))
}

// AsNameAndType resolves a TagNameAndType entry to its (name, descriptor).
func (cp *ConstantPool) AsNameAndType(i int) (name, descriptor string, err error) {
	e, err := cp.expectTag(i, TagNameAndType)
	if err != nil {
		return "", "", err
	}
	name, err = cp.AsUTF8(int(e.NameIndex))
	if err != nil {
		return "", "", err
	}
	descriptor, err = cp.AsUTF8(int(e.DescriptorIndex))
	if err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// AsFieldrefTriple resolves a TagFieldref entry to (owner class, name,
// descriptor).
func (cp *ConstantPool) AsFieldrefTriple(i int) (owner, name, descriptor string, err error) {
	return cp.asRefTriple(i, TagFieldref)
}

// AsMethodrefTriple resolves a TagMethodref entry to (owner class, name,
// descriptor).
func (cp *ConstantPool) AsMethodrefTriple(i int) (owner, name, descriptor string, err error) {
	return cp.asRefTriple(i, TagMethodref)
}

// AsInterfaceMethodrefTriple resolves a TagInterfaceMethodref entry to
// (owner class, name, descriptor).
func (cp *ConstantPool) AsInterfaceMethodrefTriple(i int) (owner, name, descriptor string, err error) {
	return cp.asRefTriple(i, TagInterfaceMethodref)
}

func (cp *ConstantPool) asRefTriple(i int, want Tag) (owner, name, descriptor string, err error) {
	e, err := cp.expectTag(i, want)
	if err != nil {
		return "", "", "", err
	}
	owner, err = cp.AsClassName(int(e.ClassIndex))
	if err != nil {
		return "", "", "", err
	}
	name, descriptor, err = cp.AsNameAndType(int(e.NameAndTypeIndex))
	if err != nil {
		return "", "", "", err
	}
	return owner, name, descriptor, nil
}

// DerefName follows a single symbolic hop to a Utf8 string: a Class,
// String, Module, Package or MethodType entry resolves through its
// NameIndex; anything else that isn't directly a Utf8 entry fails with
// WrongTag.
func (cp *ConstantPool) DerefName(i int) (string, error) {
	e, err := cp.Get(i)
	if err != nil {
		return "", err
	}
	switch e.Tag {
	case TagUtf8:
		return e.UTF8, nil
	case TagClass, TagString, TagModule, TagPackage, TagMethodType:
		return cp.AsUTF8(int(e.NameIndex))
	default:
		return "", newCPErr(ErrWrongTag, 0, i)
	}
}

// SymbolKind distinguishes the shapes a Symbolic resolution can take.
type SymbolKind int

const (
	SymClass SymbolKind = iota
	SymFieldref
	SymMethodref
	SymInterfaceMethodref
	SymString
	SymNameAndType
	SymInteger
	SymFloat
	SymLong
	SymDouble
	SymMethodHandle
	SymMethodType
	SymDynamic
	SymInvokeDynamic
	SymModule
	SymPackage
)

// Resolve fully resolves entry i to a ResolvedConstant: every CP index
// within it has already been followed to a literal or name string. This
// is what the code comparator diffs instead of raw indices, so permuting
// the constant pool never changes a ResolvedConstant value, and it is
// what the dependency extractor consumes. CP indices are followed until
// only literal values and name strings remain; a MethodHandle also keeps
// its raw reference index in RefRawIndex, which is not symbolic.
func (cp *ConstantPool) Resolve(i int) (ResolvedConstant, error) {
	e, err := cp.Get(i)
	if err != nil {
		return ResolvedConstant{}, err
	}
	switch e.Tag {
	case TagClass:
		name, err := cp.AsUTF8(int(e.NameIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymClass, ClassName: name}, nil
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		owner, name, desc, err := cp.asRefTriple(i, e.Tag)
		if err != nil {
			return ResolvedConstant{}, err
		}
		kind := SymFieldref
		if e.Tag == TagMethodref {
			kind = SymMethodref
		} else if e.Tag == TagInterfaceMethodref {
			kind = SymInterfaceMethodref
		}
		return ResolvedConstant{Kind: kind, ClassName: owner, Name: name, Descriptor: desc}, nil
	case TagString:
		s, err := cp.AsUTF8(int(e.NameIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymString, StringVal: s}, nil
	case TagNameAndType:
		name, desc, err := cp.AsNameAndType(i)
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymNameAndType, Name: name, Descriptor: desc}, nil
	case TagInteger:
		return ResolvedConstant{Kind: SymInteger, IntVal: int64(e.Int32Val)}, nil
	case TagFloat:
		return ResolvedConstant{Kind: SymFloat, FloatVal: float64(e.Float32Val)}, nil
	case TagLong:
		return ResolvedConstant{Kind: SymLong, IntVal: e.Int64Val}, nil
	case TagDouble:
		return ResolvedConstant{Kind: SymDouble, FloatVal: e.Float64Val}, nil
	case TagMethodType:
		desc, err := cp.AsUTF8(int(e.NameIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymMethodType, Descriptor: desc}, nil
	case TagMethodHandle:
		ref, err := cp.Get(int(e.RefIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		owner, name, desc, err := cp.asRefTriple(int(e.RefIndex), ref.Tag)
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymMethodHandle, RefKind: e.RefKind, ClassName: owner,
			Name: name, Descriptor: desc, RefRawIndex: int(e.RefIndex)}, nil
	case TagDynamic, TagInvokeDynamic:
		name, desc, err := cp.AsNameAndType(int(e.NameAndTypeIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		kind := SymDynamic
		if e.Tag == TagInvokeDynamic {
			kind = SymInvokeDynamic
		}
		return ResolvedConstant{Kind: kind, Name: name, Descriptor: desc,
			BootstrapIndex: int(e.BootstrapMethodAttrIndex)}, nil
	case TagModule:
		name, err := cp.AsUTF8(int(e.NameIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymModule, Name: name}, nil
	case TagPackage:
		name, err := cp.AsUTF8(int(e.NameIndex))
		if err != nil {
			return ResolvedConstant{}, err
		}
		return ResolvedConstant{Kind: SymPackage, Name: name}, nil
	default:
		return ResolvedConstant{}, newCPErr(ErrWrongTag, 0, i)
	}
}

// ResolvedConstant is the pointer-free, symbol-only view of a constant
// pool entry produced by Resolve. Two ResolvedConstant values that are
// equal by == once RefRawIndex (a raw index, not symbolic) is set aside
// denote the same symbol regardless of CP layout.
type ResolvedConstant struct {
	Kind           SymbolKind
	ClassName      string
	Name           string
	Descriptor     string
	StringVal      string
	IntVal         int64
	FloatVal       float64
	RefKind        uint8
	RefRawIndex    int
	BootstrapIndex int
}

// parseConstantPool decodes the constant pool starting right after
// cp_count, per JVM §4.4. count is cp_count (one more than the number of
// usable entries); slot 0 is never populated.
func parseConstantPool(c *Cursor, count int) (*ConstantPool, error) {
	if count < 1 {
		return nil, newDecodeErr(ErrTruncated, c.Tell())
	}
	cp := &ConstantPool{entries: make([]Entry, count)}

	for i := 1; i < count; i++ {
		startOff := c.Tell()
		tagByte, err := c.U8()
		if err != nil {
			return nil, err
		}
		tag := Tag(tagByte)
		entry, wide, err := decodeCPEntry(c, tag, startOff)
		if err != nil {
			return nil, err
		}
		cp.entries[i] = entry
		if wide {
			// Long/Double occupy this slot and the next, which is
			// reserved and unusable.
			i++
			if i < count {
				cp.entries[i] = Entry{Tag: 0}
			}
		}
	}

	if err := cp.validate(); err != nil {
		return nil, err
	}
	return cp, nil
}

func decodeCPEntry(c *Cursor, tag Tag, offset int) (Entry, bool, error) {
	switch tag {
	case TagUtf8:
		n, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		raw, err := c.Bytes(int(n))
		if err != nil {
			return Entry{}, false, err
		}
		s, err := decodeModifiedUTF8(raw)
		if err != nil {
			return Entry{}, false, newDecodeErr(ErrBadUTF8, offset)
		}
		return Entry{Tag: tag, UTF8: s}, false, nil

	case TagInteger:
		v, err := c.I32()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, Int32Val: v}, false, nil

	case TagFloat:
		v, err := c.F32()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, Float32Val: v}, false, nil

	case TagLong:
		v, err := c.I64()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, Int64Val: v}, true, nil

	case TagDouble:
		v, err := c.F64()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, Float64Val: v}, true, nil

	case TagClass, TagString, TagMethodType, TagModule, TagPackage:
		idx, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, NameIndex: idx}, false, nil

	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		ci, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		nt, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, ClassIndex: ci, NameAndTypeIndex: nt}, false, nil

	case TagNameAndType:
		ni, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		di, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, NameIndex: ni, DescriptorIndex: di}, false, nil

	case TagMethodHandle:
		rk, err := c.U8()
		if err != nil {
			return Entry{}, false, err
		}
		ri, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, RefKind: rk, RefIndex: ri}, false, nil

	case TagDynamic, TagInvokeDynamic:
		bsm, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		nt, err := c.U16()
		if err != nil {
			return Entry{}, false, err
		}
		return Entry{Tag: tag, BootstrapMethodAttrIndex: bsm, NameAndTypeIndex: nt}, false, nil

	default:
		return Entry{}, false, newDecodeErr(ErrBadConstantRef, offset)
	}
}

// validate performs the post-decode pass: every index stored in an entry
// must refer to an in-range entry of the tag the JVM spec mandates for
// that reference.
func (cp *ConstantPool) validate() error {
	for i := 1; i < len(cp.entries); i++ {
		e := cp.entries[i]
		switch e.Tag {
		case 0, TagUtf8, TagInteger, TagFloat, TagLong, TagDouble:
			continue
		case TagClass, TagString, TagMethodType, TagModule, TagPackage:
			if !cp.hasTag(int(e.NameIndex), TagUtf8) {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
		case TagFieldref, TagMethodref, TagInterfaceMethodref:
			if !cp.hasTag(int(e.ClassIndex), TagClass) {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
			if !cp.hasTag(int(e.NameAndTypeIndex), TagNameAndType) {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
		case TagNameAndType:
			if !cp.hasTag(int(e.NameIndex), TagUtf8) || !cp.hasTag(int(e.DescriptorIndex), TagUtf8) {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
		case TagMethodHandle:
			if e.RefKind < 1 || e.RefKind > 9 {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
			if !cp.inRange(int(e.RefIndex)) {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
		case TagDynamic, TagInvokeDynamic:
			if !cp.hasTag(int(e.NameAndTypeIndex), TagNameAndType) {
				return newCPErr(ErrBadConstantRef, 0, i)
			}
			// BootstrapMethodAttrIndex is not checked here (the CP
			// alone doesn't know how many bootstrap methods exist), and
			// no later decode step checks it against the
			// BootstrapMethods attribute either.
		default:
			return newCPErr(ErrBadConstantRef, 0, i)
		}
	}
	return nil
}

func (cp *ConstantPool) hasTag(i int, t Tag) bool {
	if !cp.inRange(i) {
		return false
	}
	return cp.entries[i].Tag == t
}
