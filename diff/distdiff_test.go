// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import (
	"context"
	"testing"

	"github.com/javatools-go/javatools/distfs"
)

func TestDiffDistributionPairsAddedAndRemovedPaths(t *testing.T) {
	cf := decode(t, buildClass(t, widgetSpec()))
	left := map[string]distfs.Artifact{
		"com/acme/Widget.class": {Path: "com/acme/Widget.class", Kind: distfs.KindClass, Class: cf},
		"old.txt":               {Path: "old.txt", Kind: distfs.KindResource, Raw: []byte("gone")},
	}
	right := map[string]distfs.Artifact{
		"com/acme/Widget.class": {Path: "com/acme/Widget.class", Kind: distfs.KindClass, Class: cf},
		"new.txt":               {Path: "new.txt", Kind: distfs.KindResource, Raw: []byte("fresh")},
	}

	d, err := DiffDistribution(context.Background(), left, right, nil)
	if err != nil {
		t.Fatalf("DiffDistribution failed: %v", err)
	}
	if a := findChild(d, "new.txt"); a == nil || a.Change != Added {
		t.Errorf("expected new.txt reported as added, got %+v", a)
	}
	if r := findChild(d, "old.txt"); r == nil || r.Change != Removed {
		t.Errorf("expected old.txt reported as removed, got %+v", r)
	}
	if w := findChild(d, "com/acme/Widget.class"); w == nil || w.Change != Unchanged {
		t.Errorf("expected identical class artifact to be unchanged, got %+v", w)
	}
}

func TestDiffDistributionDelegatesToClassComparator(t *testing.T) {
	left := decode(t, buildClass(t, widgetSpec()))
	spec := widgetSpec()
	spec.fields = append(spec.fields, fieldSpec{access: 0x0001, name: "extra", desc: "I"})
	right := decode(t, buildClass(t, spec))

	leftArtifacts := map[string]distfs.Artifact{
		"com/acme/Widget.class": {Path: "com/acme/Widget.class", Kind: distfs.KindClass, Class: left},
	}
	rightArtifacts := map[string]distfs.Artifact{
		"com/acme/Widget.class": {Path: "com/acme/Widget.class", Kind: distfs.KindClass, Class: right},
	}

	d, err := DiffDistribution(context.Background(), leftArtifacts, rightArtifacts, nil)
	if err != nil {
		t.Fatalf("DiffDistribution failed: %v", err)
	}
	w := findChild(d, "com/acme/Widget.class")
	if w == nil || w.Change != Modified {
		t.Fatalf("expected delegated class diff to surface the added field, got %+v", w)
	}
	if w.Kind != "artifact_class" {
		t.Errorf("expected relabeled artifact_class kind, got %q", w.Kind)
	}
}

func TestDiffDistributionFallsBackToHashForResources(t *testing.T) {
	left := map[string]distfs.Artifact{
		"weird": {Path: "weird", Kind: distfs.KindResource, Raw: []byte("one")},
	}
	right := map[string]distfs.Artifact{
		"weird": {Path: "weird", Kind: distfs.KindResource, Raw: []byte("two")},
	}
	d, err := DiffDistribution(context.Background(), left, right, nil)
	if err != nil {
		t.Fatalf("DiffDistribution failed: %v", err)
	}
	w := findChild(d, "weird")
	if w == nil || w.Change != Modified {
		t.Fatalf("expected hash-fallback comparison to detect the content change, got %+v", w)
	}
}
