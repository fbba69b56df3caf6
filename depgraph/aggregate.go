// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package depgraph

import (
	"github.com/javatools-go/javatools/archive"
	"github.com/javatools-go/javatools/classfile"
	"github.com/javatools-go/javatools/distfs"
)

// merge unions src into dst.
func merge(dst, src *Deps) {
	for k := range src.Provides {
		dst.Provides[k] = true
	}
	for k := range src.Requires {
		dst.Requires[k] = true
	}
}

// Unresolved returns every class d.Requires that nothing in d.Provides
// declares: the set external to whatever was aggregated into d.
func (d *Deps) Unresolved() map[string]bool {
	out := make(map[string]bool)
	for r := range d.Requires {
		if !d.providesClass(r) {
			out[r] = true
		}
	}
	return out
}

// providesClass reports whether a class name r is provided, either as the
// class itself or as the owner of a provided member signature.
func (d *Deps) providesClass(r string) bool {
	if d.Provides[r] {
		return true
	}
	prefix := r + "#"
	for p := range d.Provides {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// ExtractJAR computes the union of every class entry's Deps in a, i.e. a
// JAR's aggregate provides/requires footprint.
func ExtractJAR(a *archive.Archive, opts *classfile.Options) (*Deps, []error) {
	agg := newDeps()
	var errs []error
	for _, name := range a.Classes() {
		cf, err := a.DecodeClass(name, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		merge(agg, Extract(cf))
	}
	return agg, errs
}

// ExtractDistribution computes the union of every KindClass artifact's
// Deps across a walked distribution. distfs.Walk already flattens classes
// nested inside JARs into their own KindClass artifacts (logical paths
// like "lib/app.jar!/a/B.class"), so a single pass over KindClass entries
// covers loose classes and archived ones alike.
func ExtractDistribution(artifacts map[string]distfs.Artifact) *Deps {
	agg := newDeps()
	for _, p := range distfs.SortedPaths(artifacts) {
		art := artifacts[p]
		if art.Kind == distfs.KindClass && art.Class != nil {
			merge(agg, Extract(art.Class))
		}
	}
	return agg
}
