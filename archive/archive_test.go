// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package archive

import (
	"archive/zip"
	"bytes"
	"testing"
)

func buildTestJar(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Write(%s) failed: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close failed: %v", err)
	}
	return buf.Bytes()
}

func TestOpenAndListEntries(t *testing.T) {
	data := buildTestJar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\r\n",
		"a/B.class":            "not really a class file",
		"README.txt":           "hello",
	})
	a, err := Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(a.Entries()) != 3 {
		t.Fatalf("len(Entries()) = %d, want 3", len(a.Entries()))
	}
	if !a.HasManifest() {
		t.Error("HasManifest() = false, want true")
	}
}

func TestEntryBytes(t *testing.T) {
	data := buildTestJar(t, map[string]string{"a.txt": "hello world"})
	a, err := Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	e, err := a.Entry("a.txt")
	if err != nil {
		t.Fatalf("Entry failed: %v", err)
	}
	got, err := e.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(got) != "hello world" {
		t.Errorf("Bytes() = %q", got)
	}
}

func TestEntryNotFound(t *testing.T) {
	data := buildTestJar(t, map[string]string{"a.txt": "x"})
	a, err := Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := a.Entry("missing.txt"); err == nil {
		t.Fatal("expected ErrEntryNotFound")
	}
}

func TestClassesListsOnlyDotClassEntries(t *testing.T) {
	data := buildTestJar(t, map[string]string{
		"a/B.class":  "x",
		"a/C.class":  "x",
		"a/D.txt":    "x",
		"META-INF/":  "",
	})
	a, err := Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	classes := a.Classes()
	if len(classes) != 2 {
		t.Fatalf("Classes() = %v, want 2 entries", classes)
	}
}
