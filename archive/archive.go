// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package archive walks JAR files (and the war/ear archives that share
// their zip-plus-manifest shape): an iterator over entries, random access
// by name for the manifest engine, and on-demand class-file decoding.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/javatools-go/javatools/classfile"
)

// ErrEntryNotFound is returned by Entry (and so by Manifest and
// DecodeClass) for a name with no matching zip entry.
var ErrEntryNotFound = errors.New("archive: entry not found")

// ManifestPath is the well-known location of a JAR's manifest.
const ManifestPath = "META-INF/MANIFEST.MF"

// Entry is one item in a JAR, as exposed by the walker: a name, whether
// it denotes a directory, its uncompressed size, and a reader factory for
// its raw bytes.
type Entry struct {
	Name        string
	IsDirectory bool
	Size        int64

	zf *zip.File
}

// Open returns a fresh reader over this entry's raw, decompressed bytes.
// Each call returns an independent reader.
func (e *Entry) Open() (io.ReadCloser, error) {
	return e.zf.Open()
}

// Bytes reads this entry's full decompressed content.
func (e *Entry) Bytes() ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// IsClass reports whether this entry's name has the ".class" suffix.
func (e *Entry) IsClass() bool {
	return !e.IsDirectory && strings.HasSuffix(e.Name, ".class")
}

// Archive is an opened JAR (or war/ear): a random-access view over its
// zip entries plus on-demand class-file decoding.
type Archive struct {
	reader  *zip.Reader
	byName  map[string]*zip.File
	entries []Entry
}

// Open opens a JAR from an io.ReaderAt of the given size (as returned by
// os.Open on a *os.File, or bytes.NewReader over an in-memory archive).
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	a := &Archive{reader: zr, byName: make(map[string]*zip.File, len(zr.File))}
	a.entries = make([]Entry, len(zr.File))
	for i, zf := range zr.File {
		a.byName[zf.Name] = zf
		a.entries[i] = Entry{
			Name:        zf.Name,
			IsDirectory: zf.FileInfo().IsDir(),
			Size:        int64(zf.UncompressedSize64),
			zf:          zf,
		}
	}
	return a, nil
}

// Entries returns every entry, in the zip's central-directory order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Entry returns the named entry, or ErrEntryNotFound.
func (a *Archive) Entry(name string) (*Entry, error) {
	zf, ok := a.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	for i := range a.entries {
		if a.entries[i].Name == name {
			return &a.entries[i], nil
		}
	}
	// Unreachable: byName and entries are built from the same zf.File
	// slice, so a byName hit always has a matching entries element.
	return &Entry{Name: zf.Name, zf: zf}, nil
}

// HasManifest reports whether this archive carries META-INF/MANIFEST.MF.
func (a *Archive) HasManifest() bool {
	_, ok := a.byName[ManifestPath]
	return ok
}

// Manifest reads and returns the archive's raw manifest bytes.
func (a *Archive) Manifest() ([]byte, error) {
	e, err := a.Entry(ManifestPath)
	if err != nil {
		return nil, err
	}
	return e.Bytes()
}

// DecodeClass reads and decodes the named ".class" entry.
func (a *Archive) DecodeClass(name string, opts *classfile.Options) (*classfile.ClassFile, error) {
	e, err := a.Entry(name)
	if err != nil {
		return nil, err
	}
	data, err := e.Bytes()
	if err != nil {
		return nil, err
	}
	return classfile.Decode(data, opts)
}

// Classes returns the names of every ".class" entry in declaration order.
func (a *Archive) Classes() []string {
	var out []string
	for _, e := range a.entries {
		if e.IsClass() {
			out = append(out, e.Name)
		}
	}
	return out
}
