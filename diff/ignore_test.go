// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import "testing"

func TestIgnorePolicyNilIsPermissive(t *testing.T) {
	var p *IgnorePolicy
	if p.Ignores(IgnoreVersion) {
		t.Error("a nil policy must never claim to ignore anything")
	}
}

func TestIgnorePolicyUnknownTokenNeverMatches(t *testing.T) {
	p := NewIgnorePolicy(IgnoreVersion)
	if p.Ignores("some_future_token") {
		t.Error("an unrecognized token must not match")
	}
}

func TestApplyIgnorePolicyRetainsIgnoredTokenAfterCollapse(t *testing.T) {
	d := leaf("attribute", "x", "x", "a", "b", IgnoreVersion)
	applyIgnorePolicy(d, NewIgnorePolicy(IgnoreVersion))
	if d.Change != Unchanged {
		t.Fatalf("expected collapse to Unchanged, got %s", d.Change)
	}
	if d.Ignored != IgnoreVersion {
		t.Errorf("expected Ignored token to survive the collapse so a show-ignored view can still see it, got %q", d.Ignored)
	}
}

func TestApplyIgnorePolicyDoesNotCollapseUnrelatedSiblings(t *testing.T) {
	ignored := leaf("attribute", "x", "x", "a", "b", IgnoreVersion)
	real := leaf("attribute", "y", "y", "a", "b", "")
	root := node("pair", "root", "root", []*Delta{ignored, real})

	applyIgnorePolicy(root, NewIgnorePolicy(IgnoreVersion))

	if ignored.Change != Unchanged {
		t.Errorf("expected ignored leaf to collapse, got %s", ignored.Change)
	}
	if real.Change != Modified {
		t.Errorf("expected unrelated leaf to remain changed, got %s", real.Change)
	}
	if root.Change != Modified {
		t.Errorf("expected root to stay changed because a real difference remains, got %s", root.Change)
	}
}

func TestApplyIgnorePolicyCollapsesNestedStructuralNodes(t *testing.T) {
	leafA := leaf("attribute", "a", "a", "1", "2", IgnoreVersion)
	leafB := leaf("attribute", "b", "b", "1", "2", IgnoreVersion)
	inner := node("group", "inner", "inner", []*Delta{leafA, leafB})
	outer := node("group", "outer", "outer", []*Delta{inner})

	applyIgnorePolicy(outer, NewIgnorePolicy(IgnoreVersion))

	if outer.Change != Unchanged {
		t.Errorf("expected deeply nested ignored diffs to collapse all the way to the root, got %s", outer.Change)
	}
}
