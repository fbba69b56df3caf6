// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

import "sort"

// pairKeys splits the union of leftKeys and rightKeys into three
// lexicographically sorted groups: keys present on both sides ("paired"),
// keys present only on the right ("added"), and keys present only on the
// left ("removed"). Emitting children in paired, then added, then removed
// order is the deterministic tie-break the tree-building comparators use.
func pairKeys(left, right map[string]bool) (paired, added, removed []string) {
	for k := range left {
		if right[k] {
			paired = append(paired, k)
		} else {
			removed = append(removed, k)
		}
	}
	for k := range right {
		if !left[k] {
			added = append(added, k)
		}
	}
	sort.Strings(paired)
	sort.Strings(added)
	sort.Strings(removed)
	return paired, added, removed
}
