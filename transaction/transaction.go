// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/merkle"
)

// record tag, first byte of the packed form
const transferTag = 0x01

// length of the packed unsigned record
const packedLength = 1 + 2*account.AddressLength + 8 + 8 + 4

// Transaction - a value transfer between two accounts
type Transaction struct {
	Sender    account.Address `json:"sender"`
	Recipient account.Address `json:"recipient"`
	Value     uint64          `json:"value"`
	Fee       uint64          `json:"fee"`
	Nonce     uint32          `json:"nonce"`
	PublicKey []byte          `json:"publicKey"`
	Signature []byte          `json:"signature"`
}

// New - create an unsigned transfer
//
// the sender pays value + fee and the recipient is credited value
func New(sender account.Address, recipient account.Address, value uint64, fee uint64, nonce uint32) (*Transaction, error) {
	if 0 == value {
		return nil, fault.ErrMalformedValue
	}
	if _, carry := bits.Add64(value, fee, 0); 0 != carry {
		return nil, fault.ErrValueOverflow
	}
	return &Transaction{
		Sender:    sender,
		Recipient: recipient,
		Value:     value,
		Fee:       fee,
		Nonce:     nonce,
	}, nil
}

// Pack - canonical byte form of the unsigned fields
//
// this is what gets signed
func (tx *Transaction) Pack() []byte {
	buffer := make([]byte, 0, packedLength)
	buffer = append(buffer, transferTag)
	buffer = append(buffer, tx.Sender[:]...)
	buffer = append(buffer, tx.Recipient[:]...)
	buffer = binary.BigEndian.AppendUint64(buffer, tx.Value)
	buffer = binary.BigEndian.AppendUint64(buffer, tx.Fee)
	buffer = binary.BigEndian.AppendUint32(buffer, tx.Nonce)
	return buffer
}

// Id - transaction id, digest of the packed record
func (tx *Transaction) Id() merkle.Digest {
	return merkle.NewDigest(tx.Pack())
}

// Total - amount debited from the sender
func (tx *Transaction) Total() uint64 {
	return tx.Value + tx.Fee
}

// IsSigned - true once a signature has been attached
func (tx *Transaction) IsSigned() bool {
	return 0 != len(tx.Signature)
}

// Verify - check the signature and that the key belongs to the sender
func (tx *Transaction) Verify() error {
	if ed25519.PublicKeySize != len(tx.PublicKey) {
		return fault.ErrInvalidKeyLength
	}
	if account.AddressFromPublicKey(tx.PublicKey) != tx.Sender {
		return fault.ErrInvalidSignature
	}
	if ed25519.SignatureSize != len(tx.Signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(tx.PublicKey, tx.Pack(), tx.Signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}
