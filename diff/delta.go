// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package diff is a tree of comparators over decoded classes, JARs, and
// whole distributions: each comparator pairs up a left and right artifact
// of the same shape and emits a Delta tree, the sole output of a diff.
// Renderers (HTML, text, JSON) consume the tree without callbacks.
package diff

import "context"

// ChangeKind classifies how a Delta node's left and right sides relate.
type ChangeKind string

const (
	Unchanged ChangeKind = "unchanged"
	Modified  ChangeKind = "modified"
	Added     ChangeKind = "added"
	Removed   ChangeKind = "removed"
)

// Delta is one node of a diff tree: a kind tag (what shape of thing this
// is — "class", "field", "method", "code", "jar_entry", ...), a
// change-kind, a stable identifier (paired-lexicographic ordering and
// "is this the same logical entity across two trees" both key off this),
// an optional human label, optional left/right values for leaf
// comparisons, children for structural nodes, and an ignore-token when
// this node's kind of difference belongs to the ignore vocabulary.
type Delta struct {
	Kind     string     `json:"kind"`
	Change   ChangeKind `json:"change"`
	ID       string     `json:"id"`
	Label    string     `json:"label,omitempty"`
	Left     any        `json:"left,omitempty"`
	Right    any        `json:"right,omitempty"`
	Children []*Delta   `json:"children,omitempty"`
	Ignored  string     `json:"ignored,omitempty"`
}

// leaf builds a value-comparison node: Modified if left != right, else
// Unchanged. ignoreToken, if non-empty, is recorded regardless of the
// outcome so a "show ignored" view can still see what would have
// differed.
func leaf(kind, id, label string, left, right any, ignoreToken string) *Delta {
	change := Unchanged
	if left != right {
		change = Modified
	}
	return &Delta{Kind: kind, Change: change, ID: id, Label: label, Left: left, Right: right, Ignored: ignoreToken}
}

// node builds a structural node whose Change is derived from its
// children: Modified if any child is not Unchanged, Unchanged otherwise.
func node(kind, id, label string, children []*Delta) *Delta {
	change := Unchanged
	for _, c := range children {
		if c.Change != Unchanged {
			change = Modified
			break
		}
	}
	return &Delta{Kind: kind, Change: change, ID: id, Label: label, Children: children}
}

// addedNode / removedNode represent an entry present on only one side.
func addedNode(kind, id, label string, value any) *Delta {
	return &Delta{Kind: kind, Change: Added, ID: id, Label: label, Right: value}
}

func removedNode(kind, id, label string, value any) *Delta {
	return &Delta{Kind: kind, Change: Removed, ID: id, Label: label, Left: value}
}

// checkCancel is the cancellation check that every Diff* entry point
// runs before doing any work, and that the method, JAR-entry and
// distribution-artifact loops run once per paired item.
func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
