// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Attribute is one class/field/method/Code-level attribute. Body holds a
// typed struct for every attribute name the registry recognizes; for an
// unrecognized name, Body is an OpaqueAttribute holding the verbatim
// payload, so the attribute round-trips without loss.
type Attribute struct {
	Name   string
	Body   interface{}
	Raw    []byte // always the verbatim payload, even for known attributes
	// LengthMismatch records a recoverable AttributeLengthMismatch: the
	// typed decoder consumed fewer bytes than the declared
	// attribute_length. The decoder still seeks past the declared length
	// and continues. A typed decoder that needs more bytes than declared
	// is not recorded here; it fails the decode with ErrTruncated.
	LengthMismatch bool
}

// ConstantValueAttribute ("ConstantValue").
type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

// ExceptionsAttribute ("Exceptions"): checked exception classes a method
// declares via `throws`.
type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

// InnerClass is one entry of an InnerClasses attribute.
type InnerClass struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16 // 0 if not a member
	InnerNameIndex        uint16 // 0 if anonymous
	InnerClassAccessFlags uint16
}

// InnerClassesAttribute ("InnerClasses").
type InnerClassesAttribute struct {
	Classes []InnerClass
}

// EnclosingMethodAttribute ("EnclosingMethod").
type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16 // 0 if not enclosed by a method/constructor
}

// SyntheticAttribute ("Synthetic") is a zero-length marker.
type SyntheticAttribute struct{}

// DeprecatedAttribute ("Deprecated") is a zero-length marker.
type DeprecatedAttribute struct{}

// SignatureAttribute ("Signature"): the generic signature string.
type SignatureAttribute struct {
	SignatureIndex uint16
}

// SourceFileAttribute ("SourceFile").
type SourceFileAttribute struct {
	SourceFileIndex uint16
}

// LineNumberEntry maps a bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTableAttribute ("LineNumberTable").
type LineNumberTableAttribute struct {
	Entries []LineNumberEntry
}

// LocalVariableEntry is one scope entry of a LocalVariableTable.
type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

// LocalVariableTableAttribute ("LocalVariableTable").
type LocalVariableTableAttribute struct {
	Entries []LocalVariableEntry
}

// LocalVariableTypeEntry is one scope entry of a LocalVariableTypeTable
// (generic signature instead of descriptor).
type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

// LocalVariableTypeTableAttribute ("LocalVariableTypeTable").
type LocalVariableTypeTableAttribute struct {
	Entries []LocalVariableTypeEntry
}

// ElementValue is one annotation element value, recursively structured
// per JVM §4.7.16.1. Only the field matching Tag is meaningful.
type ElementValue struct {
	Tag byte // B C D F I J S Z s e c @ [

	ConstValueIndex   uint16 // primitive / String constants
	EnumTypeNameIndex uint16 // 'e'
	EnumConstNameIndex uint16
	ClassInfoIndex    uint16        // 'c'
	Annotation        *Annotation   // '@'
	ArrayValues       []ElementValue // '['
}

// ElementValuePair is one (name, value) pair inside an Annotation.
type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// Annotation is a single runtime-(in)visible annotation, shared by the
// class/field/method annotation attributes, by AnnotationDefault, and by
// the array/annotation cases of ElementValue.
type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

// AnnotationsAttribute covers both RuntimeVisibleAnnotations and
// RuntimeInvisibleAnnotations; which one it is is carried by Attribute.Name.
type AnnotationsAttribute struct {
	Annotations []Annotation
}

// ParameterAnnotationsAttribute covers both
// RuntimeVisibleParameterAnnotations and RuntimeInvisibleParameterAnnotations.
type ParameterAnnotationsAttribute struct {
	Parameters [][]Annotation
}

// AnnotationDefaultAttribute ("AnnotationDefault").
type AnnotationDefaultAttribute struct {
	Value ElementValue
}

// BootstrapMethod is one entry of a BootstrapMethods attribute.
type BootstrapMethod struct {
	MethodRefIndex uint16
	Arguments      []uint16
}

// BootstrapMethodsAttribute ("BootstrapMethods"): the table invokedynamic
// and dynamic constants index into via their bootstrap_method_attr_index.
type BootstrapMethodsAttribute struct {
	Methods []BootstrapMethod
}

// StackMapTableAttribute ("StackMapTable") is retained opaque: verifying
// stack-map frames is out of this library's scope (no symbolic
// execution, no verifier), only round-tripping the bytes matters.
type StackMapTableAttribute struct {
	Raw []byte
}

// MethodParameter is one entry of a MethodParameters attribute.
type MethodParameter struct {
	NameIndex   uint16 // 0 if unnamed
	AccessFlags uint16
}

// MethodParametersAttribute ("MethodParameters").
type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

// NestHostAttribute ("NestHost").
type NestHostAttribute struct {
	HostClassIndex uint16
}

// NestMembersAttribute ("NestMembers").
type NestMembersAttribute struct {
	Classes []uint16
}

// OpaqueAttribute is the fallback body for any attribute name the
// registry does not recognize: preserved byte-for-byte so the attribute
// round-trips without loss.
type OpaqueAttribute struct {
	Raw []byte
}

// parseAttributes reads an attributes_count followed by that many
// attribute entries, dispatching each by name through the registry.
func parseAttributes(cp *ConstantPool, c *Cursor) ([]Attribute, error) {
	count, err := c.U16()
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, count)
	for i := 0; i < int(count); i++ {
		a, err := parseAttribute(cp, c)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// parseAttribute reads one name_index/attribute_length/info triple and
// dispatches on the name. The attribute's declared length is the sole
// authority on how many bytes to consume from the outer cursor. A typed
// decoder that leaves bytes unconsumed is recoverable: the mismatch is
// recorded on the node and the outer cursor still advances by exactly
// the declared length. A typed decoder that runs past the declared
// length fails with ErrTruncated and the whole decode fails.
func parseAttribute(cp *ConstantPool, c *Cursor) (Attribute, error) {
	nameIdx, err := c.U16()
	if err != nil {
		return Attribute{}, err
	}
	name, err := cp.AsUTF8(int(nameIdx))
	if err != nil {
		return Attribute{}, err
	}
	length, err := c.U32()
	if err != nil {
		return Attribute{}, err
	}
	body, err := c.Sub(int(length))
	if err != nil {
		return Attribute{}, err
	}
	// Copy the payload so neither Raw nor anything decoded from it
	// aliases the input, which LoadFile unmaps once decode returns.
	raw, _ := body.Bytes(body.Len())
	raw = append([]byte(nil), raw...)
	body = NewCursor(raw)

	attr := Attribute{Name: name, Raw: raw}

	decoded, mismatch, err := decodeAttributeBody(cp, name, body)
	if err != nil {
		return Attribute{}, err
	}
	attr.Body = decoded
	attr.LengthMismatch = mismatch
	return attr, nil
}

func decodeAttributeBody(cp *ConstantPool, name string, body *Cursor) (interface{}, bool, error) {
	switch name {
	case "Code":
		v, err := parseCodeAttribute(cp, body)
		return v, body.Remaining() != 0, err
	case "ConstantValue":
		idx, err := body.U16()
		return ConstantValueAttribute{ConstantValueIndex: idx}, body.Remaining() != 0, err
	case "Exceptions":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		table := make([]uint16, n)
		for i := range table {
			table[i], err = body.U16()
			if err != nil {
				return nil, false, err
			}
		}
		return ExceptionsAttribute{ExceptionIndexTable: table}, body.Remaining() != 0, nil
	case "InnerClasses":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		classes := make([]InnerClass, n)
		for i := range classes {
			ic := InnerClass{}
			if ic.InnerClassInfoIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if ic.OuterClassInfoIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if ic.InnerNameIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if ic.InnerClassAccessFlags, err = body.U16(); err != nil {
				return nil, false, err
			}
			classes[i] = ic
		}
		return InnerClassesAttribute{Classes: classes}, body.Remaining() != 0, nil
	case "EnclosingMethod":
		ci, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		mi, err := body.U16()
		return EnclosingMethodAttribute{ClassIndex: ci, MethodIndex: mi}, body.Remaining() != 0, err
	case "Synthetic":
		return SyntheticAttribute{}, body.Remaining() != 0, nil
	case "Signature":
		idx, err := body.U16()
		return SignatureAttribute{SignatureIndex: idx}, body.Remaining() != 0, err
	case "SourceFile":
		idx, err := body.U16()
		return SourceFileAttribute{SourceFileIndex: idx}, body.Remaining() != 0, err
	case "Deprecated":
		return DeprecatedAttribute{}, body.Remaining() != 0, nil
	case "LineNumberTable":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		entries := make([]LineNumberEntry, n)
		for i := range entries {
			if entries[i].StartPC, err = body.U16(); err != nil {
				return nil, false, err
			}
			if entries[i].LineNumber, err = body.U16(); err != nil {
				return nil, false, err
			}
		}
		return LineNumberTableAttribute{Entries: entries}, body.Remaining() != 0, nil
	case "LocalVariableTable":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		entries := make([]LocalVariableEntry, n)
		for i := range entries {
			e := &entries[i]
			if e.StartPC, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.Length, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.NameIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.DescriptorIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.Index, err = body.U16(); err != nil {
				return nil, false, err
			}
		}
		return LocalVariableTableAttribute{Entries: entries}, body.Remaining() != 0, nil
	case "LocalVariableTypeTable":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		entries := make([]LocalVariableTypeEntry, n)
		for i := range entries {
			e := &entries[i]
			if e.StartPC, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.Length, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.NameIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.SignatureIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if e.Index, err = body.U16(); err != nil {
				return nil, false, err
			}
		}
		return LocalVariableTypeTableAttribute{Entries: entries}, body.Remaining() != 0, nil
	case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
		anns, err := parseAnnotationList(body)
		return AnnotationsAttribute{Annotations: anns}, body.Remaining() != 0, err
	case "RuntimeVisibleParameterAnnotations", "RuntimeInvisibleParameterAnnotations":
		numParams, err := body.U8()
		if err != nil {
			return nil, false, err
		}
		params := make([][]Annotation, numParams)
		for i := range params {
			params[i], err = parseAnnotationList(body)
			if err != nil {
				return nil, false, err
			}
		}
		return ParameterAnnotationsAttribute{Parameters: params}, body.Remaining() != 0, nil
	case "AnnotationDefault":
		v, err := parseElementValue(body)
		return AnnotationDefaultAttribute{Value: v}, body.Remaining() != 0, err
	case "BootstrapMethods":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		methods := make([]BootstrapMethod, n)
		for i := range methods {
			ref, err := body.U16()
			if err != nil {
				return nil, false, err
			}
			argc, err := body.U16()
			if err != nil {
				return nil, false, err
			}
			args := make([]uint16, argc)
			for j := range args {
				if args[j], err = body.U16(); err != nil {
					return nil, false, err
				}
			}
			methods[i] = BootstrapMethod{MethodRefIndex: ref, Arguments: args}
		}
		return BootstrapMethodsAttribute{Methods: methods}, body.Remaining() != 0, nil
	case "StackMapTable":
		raw, err := body.Bytes(body.Remaining())
		return StackMapTableAttribute{Raw: raw}, false, err
	case "MethodParameters":
		n, err := body.U8()
		if err != nil {
			return nil, false, err
		}
		params := make([]MethodParameter, n)
		for i := range params {
			if params[i].NameIndex, err = body.U16(); err != nil {
				return nil, false, err
			}
			if params[i].AccessFlags, err = body.U16(); err != nil {
				return nil, false, err
			}
		}
		return MethodParametersAttribute{Parameters: params}, body.Remaining() != 0, nil
	case "NestHost":
		idx, err := body.U16()
		return NestHostAttribute{HostClassIndex: idx}, body.Remaining() != 0, err
	case "NestMembers":
		n, err := body.U16()
		if err != nil {
			return nil, false, err
		}
		classes := make([]uint16, n)
		for i := range classes {
			if classes[i], err = body.U16(); err != nil {
				return nil, false, err
			}
		}
		return NestMembersAttribute{Classes: classes}, body.Remaining() != 0, nil
	default:
		raw, err := body.Bytes(body.Remaining())
		return OpaqueAttribute{Raw: raw}, false, err
	}
}

func parseAnnotationList(c *Cursor) ([]Annotation, error) {
	n, err := c.U16()
	if err != nil {
		return nil, err
	}
	anns := make([]Annotation, n)
	for i := range anns {
		anns[i], err = parseAnnotation(c)
		if err != nil {
			return nil, err
		}
	}
	return anns, nil
}

func parseAnnotation(c *Cursor) (Annotation, error) {
	typeIdx, err := c.U16()
	if err != nil {
		return Annotation{}, err
	}
	n, err := c.U16()
	if err != nil {
		return Annotation{}, err
	}
	pairs := make([]ElementValuePair, n)
	for i := range pairs {
		nameIdx, err := c.U16()
		if err != nil {
			return Annotation{}, err
		}
		val, err := parseElementValue(c)
		if err != nil {
			return Annotation{}, err
		}
		pairs[i] = ElementValuePair{ElementNameIndex: nameIdx, Value: val}
	}
	return Annotation{TypeIndex: typeIdx, ElementValuePairs: pairs}, nil
}

func parseElementValue(c *Cursor) (ElementValue, error) {
	tag, err := c.U8()
	if err != nil {
		return ElementValue{}, err
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx, err := c.U16()
		return ElementValue{Tag: tag, ConstValueIndex: idx}, err
	case 'e':
		typeNameIdx, err := c.U16()
		if err != nil {
			return ElementValue{}, err
		}
		constNameIdx, err := c.U16()
		return ElementValue{Tag: tag, EnumTypeNameIndex: typeNameIdx, EnumConstNameIndex: constNameIdx}, err
	case 'c':
		idx, err := c.U16()
		return ElementValue{Tag: tag, ClassInfoIndex: idx}, err
	case '@':
		ann, err := parseAnnotation(c)
		return ElementValue{Tag: tag, Annotation: &ann}, err
	case '[':
		n, err := c.U16()
		if err != nil {
			return ElementValue{}, err
		}
		vals := make([]ElementValue, n)
		for i := range vals {
			vals[i], err = parseElementValue(c)
			if err != nil {
				return ElementValue{}, err
			}
		}
		return ElementValue{Tag: tag, ArrayValues: vals}, nil
	default:
		return ElementValue{}, newDecodeErr(ErrBadConstantRef, c.Tell())
	}
}
