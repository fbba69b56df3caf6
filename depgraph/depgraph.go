// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package depgraph extracts the provides/requires class-name sets from a
// decoded class file, and aggregates them union-wise across a JAR or a
// whole distribution.
package depgraph

import (
	"sort"
	"strings"

	"github.com/javatools-go/javatools/classfile"
)

// Deps is one class's dependency footprint: what it provides (itself,
// plus the signature of every declared non-private member) and what it
// requires (every external class name its constant pool, descriptors,
// annotations, and bytecode mention; generic Signature attributes are not
// parsed, so class names that appear only there are not included).
type Deps struct {
	Provides map[string]bool
	Requires map[string]bool
}

func newDeps() *Deps {
	return &Deps{Provides: map[string]bool{}, Requires: map[string]bool{}}
}

func (d *Deps) provide(s string) {
	if s != "" {
		d.Provides[s] = true
	}
}

func (d *Deps) require(s string) {
	if s != "" {
		d.Requires[s] = true
	}
}

// Sorted returns ss's elements in lexicographic order, the deterministic
// ordering every aggregated set is reported in.
func Sorted(ss map[string]bool) []string {
	out := make([]string, 0, len(ss))
	for s := range ss {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Extract computes cf's provides/requires sets.
func Extract(cf *classfile.ClassFile) *Deps {
	d := newDeps()
	d.provide(cf.ThisClass)

	for _, m := range cf.Fields {
		if m.AccessFlags&classfile.AccPrivate == 0 {
			d.provide(fieldSignature(cf.ThisClass, m.Name, m.Descriptor))
		}
		requireFromDescriptor(d, m.Descriptor)
		requireFromAttributes(d, cf.ConstantPool, m.Attributes)
	}

	for _, m := range cf.Methods {
		if m.AccessFlags&classfile.AccPrivate == 0 {
			d.provide(methodSignature(cf.ThisClass, m.Name, m.Descriptor))
		}
		requireFromDescriptor(d, m.Descriptor)
		requireFromAttributes(d, cf.ConstantPool, m.Attributes)
		if code, ok := m.Code(); ok {
			requireFromCode(d, cf.ConstantPool, code)
		}
	}

	if cf.SuperClass != "" {
		d.require(cf.SuperClass)
	}
	for _, iface := range cf.Interfaces {
		d.require(iface)
	}
	requireFromAttributes(d, cf.ConstantPool, cf.Attributes)
	requireFromConstantPool(d, cf.ConstantPool)

	// A class never "requires" itself or a member it declares.
	delete(d.Requires, cf.ThisClass)

	return d
}

func fieldSignature(owner, name, desc string) string {
	return owner + "#" + name + " " + desc
}

func methodSignature(owner, name, desc string) string {
	return owner + "#" + name + desc
}

func requireFromDescriptor(d *Deps, desc string) {
	if strings.HasPrefix(desc, "(") {
		md, err := classfile.ParseMethodDescriptor(desc)
		if err != nil {
			return
		}
		for _, cn := range md.ClassNamesIn() {
			d.require(cn)
		}
		return
	}
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil {
		return
	}
	for _, cn := range ft.ClassNamesIn() {
		d.require(cn)
	}
}

// requireFromConstantPool walks every Class, Fieldref, Methodref, and
// InterfaceMethodref entry in cp, requiring each owner class name. This
// is the primary source: bytecode operands, descriptors outside member
// signatures, and anything else that resolves through the pool all
// eventually bottom out in one of these four tag kinds.
func requireFromConstantPool(d *Deps, cp *classfile.ConstantPool) {
	for i := 1; i < cp.Count(); i++ {
		e, err := cp.Get(i)
		if err != nil {
			continue
		}
		switch e.Tag {
		case classfile.TagClass:
			if name, err := cp.AsClassName(i); err == nil {
				d.require(name)
			}
		case classfile.TagFieldref:
			if owner, _, _, err := cp.AsFieldrefTriple(i); err == nil {
				d.require(owner)
			}
		case classfile.TagMethodref:
			if owner, _, _, err := cp.AsMethodrefTriple(i); err == nil {
				d.require(owner)
			}
		case classfile.TagInterfaceMethodref:
			if owner, _, _, err := cp.AsInterfaceMethodrefTriple(i); err == nil {
				d.require(owner)
			}
		}
	}
}

func requireFromAttributes(d *Deps, cp *classfile.ConstantPool, attrs []classfile.Attribute) {
	for _, a := range attrs {
		switch v := a.Body.(type) {
		case classfile.SignatureAttribute:
			// The signature string is not parsed; a class name that
			// appears only in it (such as a type argument) is not added
			// to Requires.
		case classfile.AnnotationsAttribute:
			for _, ann := range v.Annotations {
				requireFromAnnotation(d, cp, ann)
			}
		case classfile.ParameterAnnotationsAttribute:
			for _, group := range v.Parameters {
				for _, ann := range group {
					requireFromAnnotation(d, cp, ann)
				}
			}
		case classfile.AnnotationDefaultAttribute:
			requireFromElementValue(d, cp, v.Value)
		}
	}
}

func requireFromAnnotation(d *Deps, cp *classfile.ConstantPool, ann classfile.Annotation) {
	if name, err := cp.DerefName(int(ann.TypeIndex)); err == nil {
		d.require(fieldDescriptorClassName(name))
	}
	for _, p := range ann.ElementValuePairs {
		requireFromElementValue(d, cp, p.Value)
	}
}

func requireFromElementValue(d *Deps, cp *classfile.ConstantPool, ev classfile.ElementValue) {
	switch ev.Tag {
	case 'c':
		if desc, err := cp.AsUTF8(int(ev.ClassInfoIndex)); err == nil {
			ft, err := classfile.ParseFieldDescriptor(desc)
			if err == nil {
				for _, cn := range ft.ClassNamesIn() {
					d.require(cn)
				}
			}
		}
	case 'e':
		if desc, err := cp.AsUTF8(int(ev.EnumTypeNameIndex)); err == nil {
			ft, err := classfile.ParseFieldDescriptor(desc)
			if err == nil {
				for _, cn := range ft.ClassNamesIn() {
					d.require(cn)
				}
			}
		}
	case '@':
		if ev.Annotation != nil {
			requireFromAnnotation(d, cp, *ev.Annotation)
		}
	case '[':
		for _, v := range ev.ArrayValues {
			requireFromElementValue(d, cp, v)
		}
	}
}

// fieldDescriptorClassName turns a field-descriptor string (as carried by
// an annotation's type_index, like "Lcom/example/Foo;") into the plain
// internal class name the rest of this package deals in, or "" when the
// descriptor is not an object type.
func fieldDescriptorClassName(desc string) string {
	ft, err := classfile.ParseFieldDescriptor(desc)
	if err != nil || ft.Base != 'L' {
		return ""
	}
	return ft.ClassName
}

// requireFromCode requires the owner class of every CP-index operand a
// bytecode instruction carries: Class/Fieldref/Methodref/
// InterfaceMethodref/MethodHandle/MethodType/Dynamic/InvokeDynamic all
// resolve through the pool to a symbolic reference whose owner (if any)
// is an external dependency.
func requireFromCode(d *Deps, cp *classfile.ConstantPool, code *classfile.CodeAttribute) {
	for _, ins := range code.Instructions {
		if ins.CPIndex == 0 {
			continue
		}
		r, err := cp.Resolve(ins.CPIndex)
		if err != nil {
			continue
		}
		switch r.Kind {
		case classfile.SymClass:
			d.require(r.ClassName)
		case classfile.SymFieldref, classfile.SymMethodref, classfile.SymInterfaceMethodref,
			classfile.SymMethodHandle:
			d.require(r.ClassName)
		}
	}
}
