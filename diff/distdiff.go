// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import (
	"context"

	"github.com/javatools-go/javatools/distfs"
)

// DiffDistribution compares two walked distributions by logical path,
// delegating to the JAR or class comparator where the artifact kind
// matches on both sides and falling back to content-hash equality
// otherwise.
func DiffDistribution(ctx context.Context, left, right map[string]distfs.Artifact, policy *IgnorePolicy) (*Delta, error) {
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	leftSet := map[string]bool{}
	for p := range left {
		leftSet[p] = true
	}
	rightSet := map[string]bool{}
	for p := range right {
		rightSet[p] = true
	}
	paired, added, removed := pairKeys(leftSet, rightSet)

	var children []*Delta
	for _, p := range paired {
		if err := checkCancel(ctx); err != nil {
			return nil, err
		}
		d, err := diffArtifact(ctx, p, left[p], right[p])
		if err != nil {
			return nil, err
		}
		children = append(children, d)
	}
	for _, p := range added {
		children = append(children, addedNode("artifact", p, p, right[p].Kind.String()))
	}
	for _, p := range removed {
		children = append(children, removedNode("artifact", p, p, left[p].Kind.String()))
	}

	d := node("distribution", "distribution", "distribution", children)
	if policy == nil {
		policy = DefaultIgnorePolicy()
	}
	applyIgnorePolicy(d, policy)
	return d, nil
}

func diffArtifact(ctx context.Context, path string, left, right distfs.Artifact) (*Delta, error) {
	if left.Kind == distfs.KindClass && right.Kind == distfs.KindClass && left.Class != nil && right.Class != nil {
		d, err := diffClass(ctx, left.Class, right.Class)
		if err != nil {
			return nil, err
		}
		d.ID = path
		d.Kind = "artifact_class"
		return d, nil
	}
	if left.Kind == distfs.KindJAR && right.Kind == distfs.KindJAR && left.Archive != nil && right.Archive != nil {
		d, err := diffJAR(ctx, left.Archive, right.Archive, nil)
		if err != nil {
			return nil, err
		}
		d.ID = path
		d.Kind = "artifact_jar"
		return d, nil
	}
	return leaf("artifact", path, path, hashHex(left.Raw), hashHex(right.Raw), ""), nil
}
