// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package manifest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
)

// Algorithm identifies a manifest digest algorithm by its header-name
// prefix, e.g. "SHA-256" in "SHA-256-Digest".
type Algorithm string

const (
	MD5    Algorithm = "MD5"
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA-256"
	SHA512 Algorithm = "SHA-512"
)

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
	}
}

// headerName is the manifest header this algorithm's digest is recorded
// under, e.g. "SHA-256-Digest".
func (a Algorithm) headerName() string {
	return string(a) + "-Digest"
}

// DigestEntry computes alg's digest of data and returns it base64-encoded,
// the form manifest digest headers use.
func DigestEntry(alg Algorithm, data []byte) (string, error) {
	h, err := alg.newHash()
	if err != nil {
		return "", err
	}
	h.Write(data)
	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// VerifyEntryDigests checks every "<Algorithm>-Digest" header present in
// the named entry's section against rawBytes, recomputed with the same
// algorithm. It returns the set of algorithms checked, or ErrDigestMismatch
// naming the first one that disagreed. An entry section with no digest
// headers is trivially verified (checked is empty, err is nil) since the
// manifest engine does not mandate every listed entry carry a digest.
func (m *Manifest) VerifyEntryDigests(entryName string, rawBytes []byte) (checked []Algorithm, err error) {
	sec, ok := m.Entry(entryName)
	if !ok {
		return nil, fmt.Errorf("manifest: no section for entry %q", entryName)
	}
	for _, alg := range []Algorithm{MD5, SHA1, SHA256, SHA512} {
		want, ok := sec.Get(alg.headerName())
		if !ok {
			continue
		}
		got, err := DigestEntry(alg, rawBytes)
		if err != nil {
			return checked, err
		}
		if got != want {
			return checked, fmt.Errorf("%w: entry %q algorithm %s", ErrDigestMismatch, entryName, alg)
		}
		checked = append(checked, alg)
	}
	return checked, nil
}

// SetEntryDigest computes alg's digest of rawBytes and records it on the
// named entry's section, creating the section if it does not yet exist.
func (m *Manifest) SetEntryDigest(entryName string, alg Algorithm, rawBytes []byte) error {
	digest, err := DigestEntry(alg, rawBytes)
	if err != nil {
		return err
	}
	sec, ok := m.Entry(entryName)
	if !ok {
		m.Entries = append(m.Entries, Section{EntryName: entryName})
		sec = &m.Entries[len(m.Entries)-1]
		sec.Set("Name", entryName)
	}
	sec.Set(alg.headerName(), digest)
	return nil
}
