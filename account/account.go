// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/util"
)

// miscellaneous constants
const (
	AddressLength  = 20
	checksumLength = 4

	// bits in the version byte starting from LSB
	addressCode = 0x01
	testCode    = 0x02
)

// Address - identity of an account on the ledger
//
// the first AddressLength bytes of SHA3-256 of the public key
type Address [AddressLength]byte

// AddressFromPublicKey - derive the ledger address of a public key
func AddressFromPublicKey(publicKey []byte) Address {
	digest := sha3.Sum256(publicKey)
	var a Address
	copy(a[:], digest[:AddressLength])
	return a
}

// IsZero - true for the unset address
func (a Address) IsZero() bool {
	return a == Address{}
}

// Bytes - raw bytes of the address
func (a Address) Bytes() []byte {
	return a[:]
}

// Encode - Base58 text form with network flag and checksum
func (a Address) Encode(test bool) string {
	version := byte(addressCode)
	if test {
		version |= testCode
	}
	buffer := make([]byte, 0, 1+AddressLength+checksumLength)
	buffer = append(buffer, version)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}

// String - hex form for logging; use Encode for user facing text
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// GoString - for %#v
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// AddressFromBase58 - decode the text form produced by Encode
//
// also returns the network flag that was encoded
func AddressFromBase58(s string) (Address, bool, error) {
	var a Address

	buffer := util.FromBase58(s)
	if 1+AddressLength+checksumLength != len(buffer) {
		return a, false, fault.ErrCannotDecodeAddress
	}

	version := buffer[0]
	if addressCode != version&addressCode || 0 != version&^(addressCode|testCode) {
		return a, false, fault.ErrCannotDecodeAddress
	}

	checksumStart := len(buffer) - checksumLength
	checksum := sha3.Sum256(buffer[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], buffer[checksumStart:]) {
		return a, false, fault.ErrChecksumMismatch
	}

	copy(a[:], buffer[1:checksumStart])
	return a, 0 != version&testCode, nil
}

// MarshalText - convert to hex text for JSON
func (a Address) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(AddressLength))
	hex.Encode(buffer, a[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to an address
func (a *Address) UnmarshalText(s []byte) error {
	if AddressLength != hex.DecodedLen(len(s)) {
		return fault.ErrCannotDecodeAddress
	}
	var buffer Address
	if _, err := hex.Decode(buffer[:], s); nil != err {
		return fault.ErrCannotDecodeAddress
	}
	*a = buffer
	return nil
}
