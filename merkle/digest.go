// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/cashlink/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// ErrNotDigest - text or bytes of the wrong size for a digest
var ErrNotDigest = fault.InvalidError("not a digest")

// Digest - SHA3-256 of a packed record
//
// used as transaction id and as the identity of a chain head
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// IsZero - true for the unset digest
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// String - hex for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - tagged hex for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(DigestLength))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return ErrNotDigest
	}
	var buffer Digest
	if _, err := hex.Decode(buffer[:], s); nil != err {
		return err
	}
	*digest = buffer
	return nil
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return ErrNotDigest
	}
	copy(digest[:], buffer)
	return nil
}
