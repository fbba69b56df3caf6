// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import "github.com/javatools-go/javatools/manifest"

// diffManifest compares two manifests section by section. Every attribute
// leaf and every added or removed section carries the
// manifest_subsections ignore token; the section and manifest nodes carry
// none and collapse once all their children are unchanged.
func diffManifest(left, right *manifest.Manifest) *Delta {
	children := []*Delta{diffSection("main", "", &left.Main, &right.Main)}

	leftByName := map[string]*manifest.Section{}
	leftSet := map[string]bool{}
	for i := range left.Entries {
		leftByName[left.Entries[i].EntryName] = &left.Entries[i]
		leftSet[left.Entries[i].EntryName] = true
	}
	rightByName := map[string]*manifest.Section{}
	rightSet := map[string]bool{}
	for i := range right.Entries {
		rightByName[right.Entries[i].EntryName] = &right.Entries[i]
		rightSet[right.Entries[i].EntryName] = true
	}

	paired, added, removed := pairKeys(leftSet, rightSet)
	for _, k := range paired {
		children = append(children, diffSection("manifest_entry", k, leftByName[k], rightByName[k]))
	}
	for _, k := range added {
		d := addedNode("manifest_entry", k, k, rightByName[k])
		d.Ignored = IgnoreManifestSubsections
		children = append(children, d)
	}
	for _, k := range removed {
		d := removedNode("manifest_entry", k, k, leftByName[k])
		d.Ignored = IgnoreManifestSubsections
		children = append(children, d)
	}

	return node("manifest", "manifest", "manifest", children)
}

func diffSection(kind, id string, left, right *manifest.Section) *Delta {
	leftSet := map[string]bool{}
	leftVals := map[string]string{}
	for _, a := range left.Attributes {
		leftSet[a.Name] = true
		leftVals[a.Name] = a.Value
	}
	rightSet := map[string]bool{}
	rightVals := map[string]string{}
	for _, a := range right.Attributes {
		rightSet[a.Name] = true
		rightVals[a.Name] = a.Value
	}

	paired, added, removed := pairKeys(leftSet, rightSet)
	var children []*Delta
	for _, name := range paired {
		children = append(children, leaf("attribute", id+"#"+name, name, leftVals[name], rightVals[name], IgnoreManifestSubsections))
	}
	for _, name := range added {
		d := addedNode("attribute", id+"#"+name, name, rightVals[name])
		d.Ignored = IgnoreManifestSubsections
		children = append(children, d)
	}
	for _, name := range removed {
		d := removedNode("attribute", id+"#"+name, name, leftVals[name])
		d.Ignored = IgnoreManifestSubsections
		children = append(children, d)
	}
	return node(kind, id, id, children)
}
