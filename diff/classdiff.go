// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import (
	"context"
	"fmt"
	"strings"

	"github.com/javatools-go/javatools/classfile"
)

// DiffClass compares two decoded classes and returns their Delta tree,
// with policy's ignore tokens already applied.
func DiffClass(ctx context.Context, left, right *classfile.ClassFile, policy *IgnorePolicy) (*Delta, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	d, err := diffClass(ctx, left, right)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = DefaultIgnorePolicy()
	}
	applyIgnorePolicy(d, policy)
	return d, nil
}

func diffClass(ctx context.Context, left, right *classfile.ClassFile) (*Delta, error) {
	var children []*Delta

	version := leaf("version", "version", "class file version",
		fmt.Sprintf("%d.%d", left.MajorVersion, left.MinorVersion),
		fmt.Sprintf("%d.%d", right.MajorVersion, right.MinorVersion),
		IgnoreVersion)
	children = append(children, version)

	children = append(children, leaf("access_flags", "access_flags", "access flags", left.AccessFlags, right.AccessFlags, ""))
	children = append(children, leaf("this_class", "this_class", "class name", left.ThisClass, right.ThisClass, ""))
	children = append(children, leaf("super_class", "super_class", "superclass", left.SuperClass, right.SuperClass, ""))
	children = append(children, diffStringSet("interfaces", "interfaces", left.Interfaces, right.Interfaces))

	lsf, lok := left.SourceFile()
	rsf, rok := right.SourceFile()
	children = append(children, leaf("source_file", "source_file", "source file", sourceFileValue(lsf, lok), sourceFileValue(rsf, rok), ""))

	lic, _ := left.InnerClasses()
	ric, _ := right.InnerClasses()
	children = append(children, leaf("inner_classes", "inner_classes", "inner classes", fmt.Sprintf("%+v", lic), fmt.Sprintf("%+v", ric), ""))

	children = append(children, diffAnnotations("class_annotations", "class_annotations", left.Attributes, right.Attributes))
	children = append(children, diffConstantPool(left.ConstantPool, right.ConstantPool))

	fieldsDelta, err := diffFields(left.Fields, right.Fields)
	if err != nil {
		return nil, err
	}
	children = append(children, fieldsDelta)

	methodsDelta, err := diffMethods(ctx, left.Methods, right.Methods, left.ConstantPool, right.ConstantPool)
	if err != nil {
		return nil, err
	}
	children = append(children, methodsDelta)

	return node("class", "class:"+left.ThisClass, left.ThisClass, children), nil
}

func sourceFileValue(name string, ok bool) string {
	if !ok {
		return ""
	}
	return name
}

func diffStringSet(kind, id string, left, right []string) *Delta {
	leftSet := map[string]bool{}
	for _, s := range left {
		leftSet[s] = true
	}
	rightSet := map[string]bool{}
	for _, s := range right {
		rightSet[s] = true
	}
	paired, added, removed := pairKeys(leftSet, rightSet)

	var children []*Delta
	for _, k := range paired {
		children = append(children, &Delta{Kind: "entry", Change: Unchanged, ID: k, Label: k, Left: k, Right: k})
	}
	for _, k := range added {
		children = append(children, addedNode("entry", k, k, k))
	}
	for _, k := range removed {
		children = append(children, removedNode("entry", k, k, k))
	}
	return node(kind, id, kind, children)
}

func diffAnnotations(kind, id string, left, right []classfile.Attribute) *Delta {
	extract := func(attrs []classfile.Attribute) map[string]bool {
		out := map[string]bool{}
		for _, a := range attrs {
			if v, ok := a.Body.(classfile.AnnotationsAttribute); ok {
				for _, ann := range v.Annotations {
					out[fmt.Sprintf("%d:%+v", ann.TypeIndex, ann.ElementValuePairs)] = true
				}
			}
		}
		return out
	}
	paired, added, removed := pairKeys(extract(left), extract(right))
	var children []*Delta
	for _, k := range paired {
		children = append(children, &Delta{Kind: "annotation", Change: Unchanged, ID: k, Left: k, Right: k})
	}
	for _, k := range added {
		children = append(children, addedNode("annotation", k, k, k))
	}
	for _, k := range removed {
		children = append(children, removedNode("annotation", k, k, k))
	}
	return node(kind, id, "annotations", children)
}

// diffConstantPool compares the raw, ordered sequence of constant-pool
// entries (each resolved to its symbolic form, but kept at its original
// slot position) between two classes. Reordering the pool changes which
// symbol sits at a given position, so two classes that differ only by a
// constant-pool permutation still surface a modified constant_pool node
// here, tagged with the pool ignore token so the default ignore set
// collapses it but a caller can still ask to see it.
func diffConstantPool(left, right *classfile.ConstantPool) *Delta {
	return leaf("constant_pool", "constant_pool", "constant pool order",
		strings.Join(cpSequence(left), "\n"), strings.Join(cpSequence(right), "\n"), IgnorePool)
}

// cpSequence renders each slot of cp from index 1 on, in index order, to
// its resolved symbolic form; the unusable slot after a Long/Double entry,
// and any entry that fails to resolve, renders as the placeholder "-".
func cpSequence(cp *classfile.ConstantPool) []string {
	out := make([]string, 0, cp.Count()-1)
	for i := 1; i < cp.Count(); i++ {
		r, err := cp.Resolve(i)
		if err != nil {
			out = append(out, "-")
			continue
		}
		out = append(out, fmt.Sprintf("%+v", r))
	}
	return out
}

func memberKey(name, descriptor string) string { return name + " " + descriptor }

func diffFields(left, right []classfile.Field) (*Delta, error) {
	leftByKey := map[string]*classfile.Field{}
	leftSet := map[string]bool{}
	for i := range left {
		k := memberKey(left[i].Name, left[i].Descriptor)
		leftByKey[k] = &left[i]
		leftSet[k] = true
	}
	rightByKey := map[string]*classfile.Field{}
	rightSet := map[string]bool{}
	for i := range right {
		k := memberKey(right[i].Name, right[i].Descriptor)
		rightByKey[k] = &right[i]
		rightSet[k] = true
	}

	paired, added, removed := pairKeys(leftSet, rightSet)
	var children []*Delta
	for _, k := range paired {
		lf, rf := leftByKey[k], rightByKey[k]
		var fchildren []*Delta
		fchildren = append(fchildren, leaf("access_flags", k+"#access_flags", "access flags", lf.AccessFlags, rf.AccessFlags, ""))
		fchildren = append(fchildren, leaf("constant_value", k+"#constant_value", "constant value", constantValueOf(lf), constantValueOf(rf), ""))
		children = append(children, node("field", k, k, fchildren))
	}
	for _, k := range added {
		children = append(children, addedNode("field", k, k, rightByKey[k].Descriptor))
	}
	for _, k := range removed {
		children = append(children, removedNode("field", k, k, leftByKey[k].Descriptor))
	}
	return node("fields", "fields", "fields", children), nil
}

func constantValueOf(f *classfile.Field) any {
	cv, ok := f.ConstantValue()
	if !ok {
		return nil
	}
	return cv.ConstantValueIndex
}

func diffMethods(ctx context.Context, left, right []classfile.Method, leftCP, rightCP *classfile.ConstantPool) (*Delta, error) {
	leftByKey := map[string]*classfile.Method{}
	leftSet := map[string]bool{}
	for i := range left {
		k := memberKey(left[i].Name, left[i].Descriptor)
		leftByKey[k] = &left[i]
		leftSet[k] = true
	}
	rightByKey := map[string]*classfile.Method{}
	rightSet := map[string]bool{}
	for i := range right {
		k := memberKey(right[i].Name, right[i].Descriptor)
		rightByKey[k] = &right[i]
		rightSet[k] = true
	}

	paired, added, removed := pairKeys(leftSet, rightSet)
	var children []*Delta
	for _, k := range paired {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		lm, rm := leftByKey[k], rightByKey[k]
		var mchildren []*Delta
		mchildren = append(mchildren, leaf("access_flags", k+"#access_flags", "access flags", lm.AccessFlags, rm.AccessFlags, ""))

		lcode, lok := lm.Code()
		rcode, rok := rm.Code()
		if lok && rok {
			cd, err := diffCode(k, lcode, rcode, leftCP, rightCP)
			if err != nil {
				return nil, err
			}
			mchildren = append(mchildren, cd)
		} else if lok != rok {
			mchildren = append(mchildren, leaf("code", k+"#code", "code presence", lok, rok, ""))
		}
		children = append(children, node("method", k, k, mchildren))
	}
	for _, k := range added {
		children = append(children, addedNode("method", k, k, rightByKey[k].Descriptor))
	}
	for _, k := range removed {
		children = append(children, removedNode("method", k, k, leftByKey[k].Descriptor))
	}
	return node("methods", "methods", "methods", children), nil
}
