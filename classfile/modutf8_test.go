// Copyright 2026 The javatools-go Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestModUTF8RoundTripASCII(t *testing.T) {
	s := "hello/World;"
	enc := encodeModifiedUTF8(s)
	dec, err := decodeModifiedUTF8(enc)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dec != s {
		t.Errorf("round trip = %q, want %q", dec, s)
	}
}

func TestModUTF8NulEncodedAsTwoBytes(t *testing.T) {
	enc := encodeModifiedUTF8("a\x00b")
	want := []byte{'a', 0xC0, 0x80, 'b'}
	if string(enc) != string(want) {
		t.Errorf("encode(NUL) = % x, want % x", enc, want)
	}
	dec, err := decodeModifiedUTF8(enc)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dec != "a\x00b" {
		t.Errorf("decode = %q, want a<NUL>b", dec)
	}
}

func TestModUTF8LiteralZeroByteIsRejected(t *testing.T) {
	_, err := decodeModifiedUTF8([]byte{'a', 0x00, 'b'})
	if err == nil {
		t.Fatal("expected ErrBadUTF8 for a literal 0x00 byte")
	}
}

func TestModUTF8SupplementaryCodePointSurrogatePair(t *testing.T) {
	s := "x\U0001F600y" // outside the BMP
	enc := encodeModifiedUTF8(s)

	// Expect 6 bytes for the surrogate pair plus 1 byte each for x/y.
	if len(enc) != 1+6+1 {
		t.Fatalf("encoded length = %d, want 8", len(enc))
	}
	dec, err := decodeModifiedUTF8(enc)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dec != s {
		t.Errorf("round trip = %q, want %q", dec, s)
	}
}

func TestModUTF8TruncatedTwoByteSequence(t *testing.T) {
	_, err := decodeModifiedUTF8([]byte{0xC2})
	if err == nil {
		t.Fatal("expected ErrBadUTF8 for a truncated 2-byte sequence")
	}
}

func TestModUTF8TruncatedThreeByteSequence(t *testing.T) {
	_, err := decodeModifiedUTF8([]byte{0xE0, 0x80})
	if err == nil {
		t.Fatal("expected ErrBadUTF8 for a truncated 3-byte sequence")
	}
}

func TestModUTF8InvalidLeadByte(t *testing.T) {
	_, err := decodeModifiedUTF8([]byte{0xF8, 0x80, 0x80, 0x80})
	if err == nil {
		t.Fatal("expected ErrBadUTF8 for a lead byte outside 1/2/3-byte forms")
	}
}
