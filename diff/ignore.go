// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package diff

// Well-known ignore tokens. The vocabulary is open: NewIgnorePolicy
// accepts any token string, silently accepting ones it doesn't
// recognize so callers stay forward-compatible with future tokens.
const (
	IgnoreVersion             = "version"
	IgnorePlatform            = "platform"
	IgnoreLines               = "lines"
	IgnorePool                = "pool"
	IgnoreManifestSubsections = "manifest_subsections"
	IgnoreJARSignature        = "jar_signature"
	IgnoreTrailingWhitespace  = "trailing_whitespace"
)

// IgnorePolicy is the set of ignore tokens a diff run was asked to
// suppress.
type IgnorePolicy struct {
	tokens map[string]bool
}

// NewIgnorePolicy builds a policy from a list of tokens. Unknown tokens
// are accepted without error; they simply never match any node's
// ignore-token.
func NewIgnorePolicy(tokens ...string) *IgnorePolicy {
	p := &IgnorePolicy{tokens: make(map[string]bool, len(tokens))}
	for _, t := range tokens {
		p.tokens[t] = true
	}
	return p
}

// DefaultIgnorePolicy is the policy every Diff* entry point falls back to
// when the caller passes a nil policy: pool is ignored by default, since
// constant-pool reordering alone is never meant to read as a difference
// unless a caller explicitly asks to see it (by passing a policy of its
// own that omits pool, even an empty one).
func DefaultIgnorePolicy() *IgnorePolicy {
	return NewIgnorePolicy(IgnorePool)
}

// Ignores reports whether token is in the policy.
func (p *IgnorePolicy) Ignores(token string) bool {
	if p == nil {
		return false
	}
	return p.tokens[token]
}

// applyIgnorePolicy runs the post-order ignore pass over root: any node whose
// Ignored token is in the policy is marked Unchanged (its Ignored token
// and original left/right values are retained so a "show ignored" view
// can still inspect what was suppressed). A structural node whose
// children are all Unchanged (whether genuinely equal or ignored into
// unchanged) itself collapses to Unchanged.
func applyIgnorePolicy(d *Delta, policy *IgnorePolicy) {
	for _, c := range d.Children {
		applyIgnorePolicy(c, policy)
	}
	if d.Change != Unchanged && d.Ignored != "" && policy.Ignores(d.Ignored) {
		d.Change = Unchanged
	}
	if len(d.Children) > 0 {
		allUnchanged := true
		for _, c := range d.Children {
			if c.Change != Unchanged {
				allUnchanged = false
				break
			}
		}
		if allUnchanged {
			d.Change = Unchanged
		}
	}
}
