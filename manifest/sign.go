// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package manifest

import (
	"bufio"
	"bytes"
	"crypto"
	"crypto/x509"
	"fmt"

	"go.mozilla.org/pkcs7"
)

// SignatureFile is the decoded form of a signed JAR's .SF file: the same
// header/section grammar as MANIFEST.MF, but its main section digests the
// whole manifest's main attributes and each entry section digests the
// corresponding manifest entry section's bytes, per the signed-JAR
// pattern.
type SignatureFile = Manifest

// ParseSignatureFile decodes a .SF file; it shares MANIFEST.MF's grammar.
func ParseSignatureFile(data []byte) (*SignatureFile, error) {
	return Parse(bytes.NewReader(data))
}

// CryptoBackend produces and verifies PKCS#7 detached signatures over a
// .SF file's bytes. Implementations wrap a private key plus certificate
// chain (for Sign) and a pool of trusted roots (for Verify); NoCrypto supplies
// neither and every operation reports ErrCryptoDisabled, matching the
// "optional backend" requirement: every non-crypto manifest operation
// keeps working when no backend is configured.
type CryptoBackend interface {
	// Sign produces a detached PKCS#7 signature over sfBytes.
	Sign(sfBytes []byte) ([]byte, error)
	// Verify checks a detached PKCS#7 signature (as produced by Sign, or
	// by any compliant jarsigner) over sfBytes.
	Verify(sfBytes, signature []byte) error
}

// NoCrypto is the absent-backend CryptoBackend: both operations fail with
// ErrCryptoDisabled.
type NoCrypto struct{}

func (NoCrypto) Sign([]byte) ([]byte, error) { return nil, ErrCryptoDisabled }
func (NoCrypto) Verify([]byte, []byte) error { return ErrCryptoDisabled }

// PKCS7Backend signs with a private key and certificate chain, and
// verifies against a pool of trusted root certificates.
type PKCS7Backend struct {
	// SignerCert and SignerKey are used by Sign. Both may be nil if this
	// backend is only used for Verify.
	SignerCert *x509.Certificate
	SignerKey  crypto.PrivateKey

	// Intermediates are included in the signed message alongside
	// SignerCert, for chain-building on the verifying side.
	Intermediates []*x509.Certificate

	// Roots is the trust anchor pool used by Verify. A nil pool falls
	// back to pkcs7's own default verification path (the signer's
	// embedded certificate, unchecked against any external trust root).
	Roots *x509.CertPool
}

// Sign produces a detached PKCS#7 signature over sfBytes.
func (b *PKCS7Backend) Sign(sfBytes []byte) ([]byte, error) {
	if b.SignerCert == nil || b.SignerKey == nil {
		return nil, fmt.Errorf("manifest: PKCS7Backend has no signer configured")
	}
	sd, err := pkcs7.NewSignedData(sfBytes)
	if err != nil {
		return nil, err
	}
	if err := sd.AddSigner(b.SignerCert, b.SignerKey, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, err
	}
	for _, c := range b.Intermediates {
		sd.AddCertificate(c)
	}
	sd.Detach()
	return sd.Finish()
}

// Verify checks a detached PKCS#7 signature over sfBytes.
func (b *PKCS7Backend) Verify(sfBytes, signature []byte) error {
	p7, err := pkcs7.Parse(signature)
	if err != nil {
		return fmt.Errorf("manifest: %w: %v", ErrSignatureMismatch, err)
	}
	p7.Content = sfBytes

	if b.Roots != nil {
		if err := p7.VerifyWithChain(b.Roots); err != nil {
			return fmt.Errorf("manifest: %w: %v", ErrSignatureMismatch, err)
		}
		return nil
	}
	if err := p7.Verify(); err != nil {
		return fmt.Errorf("manifest: %w: %v", ErrSignatureMismatch, err)
	}
	return nil
}

// Sign builds this manifest's corresponding .SF file (main-attributes
// digest plus one per-entry digest, using alg) and signs it with backend,
// returning the .SF bytes and the detached PKCS#7 signature bytes.
func (m *Manifest) Sign(backend CryptoBackend, alg Algorithm) (sfBytes, signature []byte, err error) {
	sf, err := m.BuildSignatureFile(alg)
	if err != nil {
		return nil, nil, err
	}
	sfBytes, err = sf.Bytes()
	if err != nil {
		return nil, nil, err
	}
	signature, err = backend.Sign(sfBytes)
	if err != nil {
		return nil, nil, err
	}
	return sfBytes, signature, nil
}

// Verify checks a detached PKCS#7 signature over sfBytes with backend,
// then checks that sfBytes' recorded digests match this manifest (the
// two-step signed-JAR verification: signature integrity, then content
// integrity against what was actually signed).
func (m *Manifest) Verify(backend CryptoBackend, sfBytes, signature []byte) error {
	if err := backend.Verify(sfBytes, signature); err != nil {
		return err
	}
	sf, err := ParseSignatureFile(sfBytes)
	if err != nil {
		return err
	}
	mainBytes, err := m.Main.canonicalBytes()
	if err != nil {
		return err
	}
	for _, alg := range []Algorithm{MD5, SHA1, SHA256, SHA512} {
		want, ok := sf.Main.Get(alg.headerName() + "-Manifest-Main-Attributes")
		if !ok {
			continue
		}
		got, err := DigestEntry(alg, mainBytes)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("%w: manifest main attributes", ErrDigestMismatch)
		}
	}
	for _, entry := range sf.Entries {
		msec, ok := m.Entry(entry.EntryName)
		if !ok {
			return fmt.Errorf("manifest: signature file names entry %q not present in manifest", entry.EntryName)
		}
		secBytes, err := msec.canonicalBytes()
		if err != nil {
			return err
		}
		for _, alg := range []Algorithm{MD5, SHA1, SHA256, SHA512} {
			want, ok := entry.Get(alg.headerName())
			if !ok {
				continue
			}
			got, err := DigestEntry(alg, secBytes)
			if err != nil {
				return err
			}
			if got != want {
				return fmt.Errorf("%w: manifest entry %q", ErrDigestMismatch, entry.EntryName)
			}
		}
	}
	return nil
}

// BuildSignatureFile constructs the .SF companion to this manifest: a
// main section digesting m's main-attribute bytes under
// "<Algorithm>-Digest-Manifest-Main-Attributes", plus one entry section
// per manifest entry digesting that entry section's own bytes.
func (m *Manifest) BuildSignatureFile(alg Algorithm) (*SignatureFile, error) {
	sf := &SignatureFile{}
	sf.Main.Set("Signature-Version", "1.0")

	mainBytes, err := m.Main.canonicalBytes()
	if err != nil {
		return nil, err
	}
	mainDigest, err := DigestEntry(alg, mainBytes)
	if err != nil {
		return nil, err
	}
	sf.Main.Set(alg.headerName()+"-Manifest-Main-Attributes", mainDigest)

	for _, entry := range m.Entries {
		secBytes, err := entry.canonicalBytes()
		if err != nil {
			return nil, err
		}
		digest, err := DigestEntry(alg, secBytes)
		if err != nil {
			return nil, err
		}
		sfEntry := Section{EntryName: entry.EntryName}
		sfEntry.Set("Name", entry.EntryName)
		sfEntry.Set(alg.headerName(), digest)
		sf.Entries = append(sf.Entries, sfEntry)
	}
	return sf, nil
}

// canonicalBytes renders just this section's headers, wrapped exactly as
// Manifest.Write would, for use as the input to a digest.
func (s *Section) canonicalBytes() ([]byte, error) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := writeSection(bw, s); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
