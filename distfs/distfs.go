// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package distfs walks a distribution (an exploded directory tree, a
// container image layer, anything shaped like one) into a flat
// logical-path -> artifact view, classifying each file as a loose class,
// a JAR archive, or an opaque resource.
package distfs

import (
	"bytes"
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/javatools-go/javatools/archive"
	"github.com/javatools-go/javatools/classfile"
)

// FS is the virtual directory interface the walker consumes: any
// caller-supplied filesystem — a real directory via os.DirFS, an
// in-memory map via fstest.MapFS, a remote mount — can be walked without
// this package depending on os.
type FS = fs.FS

// Kind classifies one artifact found while walking a distribution.
type Kind int

const (
	KindClass Kind = iota
	KindJAR
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindJAR:
		return "jar"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Artifact is one entry of a walked distribution.
type Artifact struct {
	Path string
	Kind Kind
	Size int64

	// Class is populated for KindClass entries.
	Class *classfile.ClassFile
	// Archive is populated for every KindJAR entry. A top-level JAR is
	// always KindJAR; a JAR nested inside another is KindJAR only when
	// RecurseJARs is set, and is otherwise a KindResource.
	Archive *archive.Archive
	// Raw is the verbatim bytes for resources and for JARs; it is left
	// nil for KindClass entries.
	Raw []byte
}

// Options configures a walk.
type Options struct {
	// RecurseJARs, when true, decodes nested JARs (JARs found inside a
	// JAR, or inside another JAR nested arbitrarily deep) instead of
	// treating them as opaque resources. JARs directly within the
	// distribution's own filesystem tree are always walked transitively
	// regardless of this flag.
	RecurseJARs bool

	// ClassDecodeOptions is passed through to classfile.Decode for every
	// loose or archived ".class" file.
	ClassDecodeOptions *classfile.Options
}

// Walk enumerates every file under root in fsys, classifying each as a
// loose class, JAR, or resource, honoring ctx for cancellation (checked
// once per file).
func Walk(ctx context.Context, fsys FS, root string, opts *Options) (map[string]Artifact, error) {
	if opts == nil {
		opts = &Options{}
	}
	out := make(map[string]Artifact)
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, rerr := fs.ReadFile(fsys, p)
		if rerr != nil {
			return rerr
		}

		switch {
		case strings.HasSuffix(p, ".class"):
			cf, derr := classfile.Decode(data, opts.ClassDecodeOptions)
			if derr != nil {
				// A malformed loose class file is recorded as a resource
				// rather than aborting the whole walk; callers that care
				// about the decode error can re-decode it directly.
				out[p] = Artifact{Path: p, Kind: KindResource, Size: int64(len(data)), Raw: data}
				return nil
			}
			out[p] = Artifact{Path: p, Kind: KindClass, Size: int64(len(data)), Class: cf}

		case isJARName(p):
			a, aerr := archive.Open(bytes.NewReader(data), int64(len(data)))
			if aerr != nil {
				out[p] = Artifact{Path: p, Kind: KindResource, Size: int64(len(data)), Raw: data}
				return nil
			}
			out[p] = Artifact{Path: p, Kind: KindJAR, Size: int64(len(data)), Archive: a, Raw: data}
			if err := walkJAREntries(ctx, p, a, opts, out); err != nil {
				return err
			}

		default:
			// Resources keep their bytes for hash-equality comparison.
			out[p] = Artifact{Path: p, Kind: KindResource, Size: int64(len(data)), Raw: data}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isJARName(p string) bool {
	ext := path.Ext(p)
	switch strings.ToLower(ext) {
	case ".jar", ".war", ".ear":
		return true
	default:
		return false
	}
}

// walkJAREntries flattens a.Entries() under logicalPrefix into out,
// decoding class entries and recursing into nested JARs when
// opts.RecurseJARs is set; otherwise nested JARs are kept as opaque
// resources (their raw bytes, diffed bytewise by the JAR comparator).
func walkJAREntries(ctx context.Context, logicalPrefix string, a *archive.Archive, opts *Options, out map[string]Artifact) error {
	for _, e := range a.Entries() {
		if e.IsDirectory {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logical := logicalPrefix + "!/" + e.Name
		data, err := e.Bytes()
		if err != nil {
			return err
		}

		switch {
		case e.IsClass():
			cf, derr := classfile.Decode(data, opts.ClassDecodeOptions)
			if derr != nil {
				out[logical] = Artifact{Path: logical, Kind: KindResource, Size: e.Size, Raw: data}
				continue
			}
			out[logical] = Artifact{Path: logical, Kind: KindClass, Size: e.Size, Class: cf}

		case isJARName(e.Name) && opts.RecurseJARs:
			nested, aerr := archive.Open(bytes.NewReader(data), int64(len(data)))
			if aerr != nil {
				out[logical] = Artifact{Path: logical, Kind: KindResource, Size: e.Size, Raw: data}
				continue
			}
			out[logical] = Artifact{Path: logical, Kind: KindJAR, Size: e.Size, Archive: nested, Raw: data}
			if err := walkJAREntries(ctx, logical, nested, opts, out); err != nil {
				return err
			}

		default:
			out[logical] = Artifact{Path: logical, Kind: KindResource, Size: e.Size, Raw: data}
		}
	}
	return nil
}

// SortedPaths returns every logical path in m in lexicographic order, the
// deterministic child order the differ requires.
func SortedPaths(m map[string]Artifact) []string {
	out := make([]string, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

