// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"path"
	"strings"

	"github.com/javatools-go/javatools/archive"
	"github.com/javatools-go/javatools/classfile"
	"github.com/javatools-go/javatools/manifest"
)

// DiffJAR compares two JARs entry by entry and returns their Delta tree,
// with policy's ignore tokens already applied.
func DiffJAR(ctx context.Context, left, right *archive.Archive, opts *classfile.Options, policy *IgnorePolicy) (*Delta, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	d, err := diffJAR(ctx, left, right, opts)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		policy = DefaultIgnorePolicy()
	}
	applyIgnorePolicy(d, policy)
	return d, nil
}

func diffJAR(ctx context.Context, left, right *archive.Archive, opts *classfile.Options) (*Delta, error) {
	leftSet := map[string]bool{}
	// The manifest is compared by diffJARManifests, not as an entry.
	for _, e := range left.Entries() {
		if !e.IsDirectory && e.Name != archive.ManifestPath {
			leftSet[e.Name] = true
		}
	}
	rightSet := map[string]bool{}
	for _, e := range right.Entries() {
		if !e.IsDirectory && e.Name != archive.ManifestPath {
			rightSet[e.Name] = true
		}
	}

	paired, added, removed := pairKeys(leftSet, rightSet)
	var children []*Delta
	for _, name := range paired {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		d, err := diffJAREntry(name, left, right, opts)
		if err != nil {
			return nil, err
		}
		children = append(children, d)
	}
	for _, name := range added {
		children = append(children, addedNode("jar_entry", name, name, name))
	}
	for _, name := range removed {
		children = append(children, removedNode("jar_entry", name, name, name))
	}

	if manifestDelta, err := diffJARManifests(left, right); err != nil {
		return nil, err
	} else if manifestDelta != nil {
		children = append(children, manifestDelta)
	}

	return node("jar", "jar", "jar", children), nil
}

func diffJAREntry(name string, left, right *archive.Archive, opts *classfile.Options) (*Delta, error) {
	switch {
	case strings.HasSuffix(name, ".class"):
		lc, err := left.DecodeClass(name, opts)
		if err != nil {
			return leaf("jar_entry", name, name, "undecodable", "undecodable", ""), nil
		}
		rc, err := right.DecodeClass(name, opts)
		if err != nil {
			return leaf("jar_entry", name, name, "undecodable", "undecodable", ""), nil
		}
		ctx := context.Background()
		d, err := diffClass(ctx, lc, rc)
		if err != nil {
			return nil, err
		}
		d.ID = name
		d.Kind = "jar_entry_class"
		return d, nil

	case isSignatureFile(name):
		return diffBinaryEntry(name, left, right, IgnoreJARSignature)

	case isTextResource(name):
		return diffTextEntry(name, left, right)

	default:
		return diffBinaryEntry(name, left, right, "")
	}
}

func isSignatureFile(name string) bool {
	if !strings.HasPrefix(name, "META-INF/") {
		return false
	}
	ext := strings.ToUpper(path.Ext(name))
	switch ext {
	case ".SF", ".RSA", ".DSA", ".EC":
		return true
	default:
		return false
	}
}

func isTextResource(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".txt", ".properties", ".xml", ".mf", ".sf", ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func diffBinaryEntry(name string, left, right *archive.Archive, ignoreToken string) (*Delta, error) {
	le, err := left.Entry(name)
	if err != nil {
		return nil, err
	}
	re, err := right.Entry(name)
	if err != nil {
		return nil, err
	}
	lb, err := le.Bytes()
	if err != nil {
		return nil, err
	}
	rb, err := re.Bytes()
	if err != nil {
		return nil, err
	}
	return leaf("jar_entry", name, name, hashHex(lb), hashHex(rb), ignoreToken), nil
}

func diffTextEntry(name string, left, right *archive.Archive) (*Delta, error) {
	le, err := left.Entry(name)
	if err != nil {
		return nil, err
	}
	re, err := right.Entry(name)
	if err != nil {
		return nil, err
	}
	lb, err := le.Bytes()
	if err != nil {
		return nil, err
	}
	rb, err := re.Bytes()
	if err != nil {
		return nil, err
	}
	return diffLines(name, string(lb), string(rb)), nil
}

func diffLines(id, left, right string) *Delta {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")

	n := len(leftLines)
	if len(rightLines) > n {
		n = len(rightLines)
	}
	var children []*Delta
	for i := 0; i < n; i++ {
		lineID := fmt.Sprintf("%s:%d", id, i+1)
		switch {
		case i >= len(leftLines):
			children = append(children, addedNode("line", lineID, "", rightLines[i]))
		case i >= len(rightLines):
			children = append(children, removedNode("line", lineID, "", leftLines[i]))
		case leftLines[i] == rightLines[i]:
			children = append(children, &Delta{Kind: "line", Change: Unchanged, ID: lineID, Left: leftLines[i], Right: rightLines[i]})
		case strings.TrimRight(leftLines[i], " \t\r") == strings.TrimRight(rightLines[i], " \t\r"):
			children = append(children, leaf("line", lineID, "", leftLines[i], rightLines[i], IgnoreTrailingWhitespace))
		default:
			children = append(children, leaf("line", lineID, "", leftLines[i], rightLines[i], ""))
		}
	}
	return node("text_resource", id, id, children)
}

func diffJARManifests(left, right *archive.Archive) (*Delta, error) {
	if !left.HasManifest() && !right.HasManifest() {
		return nil, nil
	}
	var lm, rm *manifest.Manifest
	if left.HasManifest() {
		raw, err := left.Manifest()
		if err != nil {
			return nil, err
		}
		lm, err = manifest.Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
	} else {
		lm = &manifest.Manifest{}
	}
	if right.HasManifest() {
		raw, err := right.Manifest()
		if err != nil {
			return nil, err
		}
		rm, err = manifest.Parse(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
	} else {
		rm = &manifest.Manifest{}
	}
	return diffManifest(lm, rm), nil
}

func hashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum)
}
