// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package distfs

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
	"testing/fstest"
)

func buildJARBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%s): %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Write(%s): %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestWalkClassifiesLooseFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md":    &fstest.MapFile{Data: []byte("hello")},
		"lib/app.jar":  &fstest.MapFile{Data: buildJARBytes(t, map[string]string{"x.txt": "x"})},
		"bad/Foo.class": &fstest.MapFile{Data: []byte("not a real class file")},
	}

	artifacts, err := Walk(context.Background(), fsys, ".", nil)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	readme, ok := artifacts["README.md"]
	if !ok || readme.Kind != KindResource {
		t.Errorf("README.md artifact = %+v", readme)
	}
	jarArt, ok := artifacts["lib/app.jar"]
	if !ok || jarArt.Kind != KindJAR {
		t.Errorf("lib/app.jar artifact = %+v", jarArt)
	}
	nested, ok := artifacts["lib/app.jar!/x.txt"]
	if !ok || nested.Kind != KindResource {
		t.Errorf("nested entry missing or wrong kind: %+v", nested)
	}
	bad, ok := artifacts["bad/Foo.class"]
	if !ok || bad.Kind != KindResource {
		t.Errorf("malformed class should fall back to resource: %+v", bad)
	}
}

func TestWalkNestedJARIsOpaqueUnlessRecursionRequested(t *testing.T) {
	innerJAR := buildJARBytes(t, map[string]string{"Q.txt": "q"})
	outerJAR := buildJARBytes(t, map[string]string{"inner.jar": string(innerJAR)})

	fsys := fstest.MapFS{
		"outer.jar": &fstest.MapFile{Data: outerJAR},
	}

	withoutRecursion, err := Walk(context.Background(), fsys, ".", &Options{RecurseJARs: false})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	inner, ok := withoutRecursion["outer.jar!/inner.jar"]
	if !ok || inner.Kind != KindResource {
		t.Errorf("nested jar without recursion should be an opaque resource: %+v", inner)
	}
	if _, ok := withoutRecursion["outer.jar!/inner.jar!/Q.txt"]; ok {
		t.Error("should not have recursed into the nested jar")
	}

	withRecursion, err := Walk(context.Background(), fsys, ".", &Options{RecurseJARs: true})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if _, ok := withRecursion["outer.jar!/inner.jar!/Q.txt"]; !ok {
		t.Error("expected recursion to surface the doubly-nested entry")
	}
}

func TestWalkRespectsCancellation(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt": &fstest.MapFile{Data: []byte("a")},
		"b.txt": &fstest.MapFile{Data: []byte("b")},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Walk(ctx, fsys, ".", nil)
	if err == nil {
		t.Fatal("expected an error from a pre-cancelled context")
	}
}

func TestSortedPathsIsDeterministic(t *testing.T) {
	m := map[string]Artifact{
		"b.txt": {Path: "b.txt"},
		"a.txt": {Path: "a.txt"},
		"c.txt": {Path: "c.txt"},
	}
	got := SortedPaths(m)
	want := []string{"a.txt", "b.txt", "c.txt"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
