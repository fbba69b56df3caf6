// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package manifest parses, emits, digests, and (with a crypto backend)
// signs and verifies JAR manifests: META-INF/MANIFEST.MF and its signed-
// JAR companions (a .SF signature file and a PKCS#7 detached signature).
package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Errors a manifest operation can report.
var (
	ErrMalformedHeader         = errors.New("manifest: line is neither a header nor a continuation")
	ErrContinuationBeforeHeader = errors.New("manifest: continuation line with no preceding header")
	ErrCryptoDisabled          = errors.New("manifest: no crypto backend configured")
	ErrDigestMismatch          = errors.New("manifest: entry digest does not match recorded value")
	ErrSignatureMismatch       = errors.New("manifest: signature does not verify")
	ErrUnknownAlgorithm        = errors.New("manifest: unrecognized digest algorithm")
)

// Attribute is one Name: value header, order-preserved within its Section.
type Attribute struct {
	Name  string
	Value string
}

// Section is one manifest section: the main section (EntryName == "") or
// a per-entry section keyed by its "Name" attribute.
type Section struct {
	EntryName  string
	Attributes []Attribute
}

// Get returns the first value of the named header in this section.
func (s *Section) Get(name string) (string, bool) {
	for _, a := range s.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set appends or replaces the named header's value, preserving its
// original position on replace and insertion order on append.
func (s *Section) Set(name, value string) {
	for i := range s.Attributes {
		if s.Attributes[i].Name == name {
			s.Attributes[i].Value = value
			return
		}
	}
	s.Attributes = append(s.Attributes, Attribute{Name: name, Value: value})
}

// Manifest is a fully-parsed manifest: a main section and zero or more
// per-entry sections, in declaration order.
type Manifest struct {
	Main    Section
	Entries []Section
}

// Entry returns the per-entry section named name, if present.
func (m *Manifest) Entry(name string) (*Section, bool) {
	for i := range m.Entries {
		if m.Entries[i].EntryName == name {
			return &m.Entries[i], true
		}
	}
	return nil, false
}

// ClassPath returns the main section's Class-Path header, split on
// whitespace, or nil if absent.
func (m *Manifest) ClassPath() []string {
	v, ok := m.Main.Get("Class-Path")
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Fields(v)
}

// MultiRelease reports whether the main section's Multi-Release header is
// present and set to "true" (case-sensitive, per the JAR spec).
func (m *Manifest) MultiRelease() bool {
	v, _ := m.Main.Get("Multi-Release")
	return v == "true"
}

// Parse decodes a manifest from its on-disk line-oriented form: a header
// line matches "Name: value"; a line beginning with exactly one leading
// space continues the previous header's value; a blank line terminates
// the current section. The first section is the main section; every
// subsequent section is keyed by its own "Name:" header.
func Parse(r io.Reader) (*Manifest, error) {
	lines, err := splitManifestLines(r)
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	sections := []*Section{&m.Main}
	cur := sections[0]

	var pending *Attribute
	commit := func() {
		if pending != nil {
			cur.Attributes = append(cur.Attributes, *pending)
			pending = nil
		}
	}

	startNewSection := func() {
		commit()
		m.Entries = append(m.Entries, Section{})
		cur = &m.Entries[len(m.Entries)-1]
	}

	sawAnyHeaderSinceBoundary := false
	for idx, line := range lines {
		if line == "" {
			// A blank line in final position is the file's trailing
			// terminator (every section, including the last, ends with
			// one), not a boundary introducing a further, empty section.
			if sawAnyHeaderSinceBoundary && idx != len(lines)-1 {
				startNewSection()
				sawAnyHeaderSinceBoundary = false
			}
			continue
		}
		if strings.HasPrefix(line, " ") {
			if pending == nil {
				return nil, ErrContinuationBeforeHeader
			}
			pending.Value += line[1:]
			continue
		}

		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return nil, ErrMalformedHeader
		}
		name := line[:colon]
		var value string
		switch {
		case colon+1 == len(line):
			value = ""
		case line[colon+1] == ' ':
			value = line[colon+2:]
		default:
			return nil, ErrMalformedHeader
		}
		commit()
		pending = &Attribute{Name: name, Value: value}
		sawAnyHeaderSinceBoundary = true
	}
	commit()

	for i := range m.Entries {
		if name, ok := m.Entries[i].Get("Name"); ok {
			m.Entries[i].EntryName = name
		}
	}
	return m, nil
}

// splitManifestLines splits on both CRLF and bare LF, per real-world JAR
// manifests (the manifest format mandates CRLF but jar tools in the wild
// emit LF).
func splitManifestLines(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Write emits the manifest in its on-disk form: the main section first,
// then each entry section, each header wrapped at 72 bytes total per
// physical line with a one-space continuation prefix. Every section,
// including the last, is terminated by a blank line, matching real
// jar-tool output and making Write(Parse(data)) byte-exact for a
// manifest whose on-disk form already ends that way.
func (m *Manifest) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeSection(bw, &m.Main); err != nil {
		return err
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	for i := range m.Entries {
		if err := writeSection(bw, &m.Entries[i]); err != nil {
			return err
		}
		if _, err := bw.WriteString("\r\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeSection(w *bufio.Writer, s *Section) error {
	for _, a := range s.Attributes {
		if err := writeWrappedHeader(w, a.Name, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeWrappedHeader emits "name: value" wrapped at 72 bytes per physical
// line (counting the leading space on continuations), per the Jar
// specification's manifest wrap rule.
func writeWrappedHeader(w *bufio.Writer, name, value string) error {
	const wrapWidth = 72
	line := name + ": " + value
	for {
		n := wrapWidth
		if n > len(line) {
			n = len(line)
		}
		chunk := line[:n]
		rest := line[n:]
		if _, err := w.WriteString(chunk); err != nil {
			return err
		}
		if _, err := w.WriteString("\r\n"); err != nil {
			return err
		}
		if len(rest) == 0 {
			return nil
		}
		line = " " + rest
	}
}

// Bytes renders the manifest to its canonical on-disk byte form.
func (m *Manifest) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String is a debugging aid; use Bytes/Write for the canonical form.
func (a Attribute) String() string {
	return fmt.Sprintf("%s: %s", a.Name, a.Value)
}
