// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/transaction"
)

// SeedLength - bytes in a serialised private key
const SeedLength = ed25519.SeedSize

// KeyPair - an ed25519 key pair and the ledger address it controls
type KeyPair struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
	address    account.Address
}

// New - create a key pair from secure random data
func New() (*KeyPair, error) {
	return NewFromReader(rand.Reader)
}

// NewFromReader - create a key pair with an explicit entropy source
func NewFromReader(r io.Reader) (*KeyPair, error) {
	seed := make([]byte, SeedLength)
	if _, err := io.ReadFull(r, seed); nil != err {
		return nil, err
	}
	return FromSeed(seed)
}

// FromSeed - regenerate the key pair from its serialised private key
func FromSeed(seed []byte) (*KeyPair, error) {
	if SeedLength != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)
	return &KeyPair{
		privateKey: privateKey,
		publicKey:  publicKey,
		address:    account.AddressFromPublicKey(publicKey),
	}, nil
}

// FromHex - regenerate from a hex encoded seed
func FromHex(s string) (*KeyPair, error) {
	seed, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrInvalidKeyLength
	}
	return FromSeed(seed)
}

// Seed - the serialised private key
func (kp *KeyPair) Seed() []byte {
	return kp.privateKey.Seed()
}

// PublicKey - copy of the public key bytes
func (kp *KeyPair) PublicKey() []byte {
	return append([]byte{}, kp.publicKey...)
}

// Address - the ledger address of this key pair
func (kp *KeyPair) Address() account.Address {
	return kp.address
}

// Equal - true if both hold the same private key
func (kp *KeyPair) Equal(other *KeyPair) bool {
	if nil == other {
		return false
	}
	return kp.privateKey.Equal(other.privateKey)
}

// Sign - attach public key and signature to a transaction sent from
// this key pair's address
func (kp *KeyPair) Sign(tx *transaction.Transaction) error {
	if tx.Sender != kp.address {
		return fault.ErrInvalidSignature
	}
	tx.PublicKey = kp.PublicKey()
	tx.Signature = ed25519.Sign(kp.privateKey, tx.Pack())
	return nil
}
