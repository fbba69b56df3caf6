// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strings"

// FieldType describes a single JVM type as it appears in a field
// descriptor or as one parameter of a method descriptor.
type FieldType struct {
	// Base is one of the primitive letters (B C D F I J S Z), 'L' for a
	// class/interface type, or '[' for an array.
	Base byte
	// ClassName is set when Base == 'L': the internal name, no "L"/";".
	ClassName string
	// Dims is the array nesting depth (0 for non-arrays).
	Dims int
}

// ParseFieldDescriptor parses a single field descriptor, e.g.
// "[[Ljava/lang/String;" or "I".
func ParseFieldDescriptor(desc string) (FieldType, error) {
	ft, rest, err := parseFieldType(desc)
	if err != nil {
		return FieldType{}, err
	}
	if rest != "" {
		return FieldType{}, ErrBadConstantRef
	}
	return ft, nil
}

func parseFieldType(s string) (FieldType, string, error) {
	dims := 0
	for len(s) > 0 && s[0] == '[' {
		dims++
		s = s[1:]
	}
	if len(s) == 0 {
		return FieldType{}, "", ErrBadConstantRef
	}
	switch s[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 'V':
		return FieldType{Base: s[0], Dims: dims}, s[1:], nil
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return FieldType{}, "", ErrBadConstantRef
		}
		return FieldType{Base: 'L', ClassName: s[1:end], Dims: dims}, s[end+1:], nil
	default:
		return FieldType{}, "", ErrBadConstantRef
	}
}

// MethodDescriptor is a parsed "(params)return" method descriptor.
type MethodDescriptor struct {
	Params []FieldType
	Return FieldType
}

// ParseMethodDescriptor parses a full method descriptor such as
// "(Ljava/lang/String;I)V".
func ParseMethodDescriptor(desc string) (MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return MethodDescriptor{}, ErrBadConstantRef
	}
	s := desc[1:]
	var params []FieldType
	for len(s) > 0 && s[0] != ')' {
		ft, rest, err := parseFieldType(s)
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, ft)
		s = rest
	}
	if len(s) == 0 {
		return MethodDescriptor{}, ErrBadConstantRef
	}
	s = s[1:] // skip ')'
	ret, rest, err := parseFieldType(s)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if rest != "" {
		return MethodDescriptor{}, ErrBadConstantRef
	}
	return MethodDescriptor{Params: params, Return: ret}, nil
}

// ClassNamesIn returns every internal class name mentioned by a field
// type (itself, or its element type if an array), used by the dependency
// extractor to derive "requires" from descriptors.
func (ft FieldType) ClassNamesIn() []string {
	if ft.Base == 'L' {
		return []string{ft.ClassName}
	}
	return nil
}

// ClassNamesIn returns every internal class name mentioned anywhere in a
// method descriptor: each parameter and the return type.
func (md MethodDescriptor) ClassNamesIn() []string {
	var out []string
	for _, p := range md.Params {
		out = append(out, p.ClassNamesIn()...)
	}
	out = append(out, md.Return.ClassNamesIn()...)
	return out
}
