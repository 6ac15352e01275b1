// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/keypair"
	"github.com/bitmark-inc/cashlink/transaction"
)

func TestSeedRoundTrip(t *testing.T) {
	kp, err := keypair.New()
	require.Nil(t, err, "new")

	recovered, err := keypair.FromSeed(kp.Seed())
	require.Nil(t, err, "from seed")
	assert.True(t, kp.Equal(recovered), "keys differ")
	assert.Equal(t, kp.Address(), recovered.Address(), "address differs")

	fromHex, err := keypair.FromHex(hex.EncodeToString(kp.Seed()))
	require.Nil(t, err, "from hex")
	assert.True(t, kp.Equal(fromHex), "hex keys differ")
}

func TestDeterministicReader(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, keypair.SeedLength)

	a, err := keypair.NewFromReader(bytes.NewReader(seed))
	require.Nil(t, err)
	b, err := keypair.FromSeed(seed)
	require.Nil(t, err)
	assert.True(t, a.Equal(b), "reader and seed differ")

	_, err = keypair.NewFromReader(bytes.NewReader(seed[:10]))
	assert.NotNil(t, err, "short entropy accepted")
}

func TestBadSeed(t *testing.T) {
	_, err := keypair.FromSeed([]byte{1, 2, 3})
	assert.Equal(t, fault.ErrInvalidKeyLength, err)

	_, err = keypair.FromHex("not hex")
	assert.Equal(t, fault.ErrInvalidKeyLength, err)
}

func TestSignAndVerify(t *testing.T) {
	sender, err := keypair.New()
	require.Nil(t, err)
	recipient, err := keypair.New()
	require.Nil(t, err)

	tx, err := transaction.New(sender.Address(), recipient.Address(), 95, 5, 0)
	require.Nil(t, err)
	assert.False(t, tx.IsSigned(), "signed too early")

	require.Nil(t, sender.Sign(tx), "sign")
	assert.True(t, tx.IsSigned(), "not signed")
	assert.Nil(t, tx.Verify(), "verify")

	// tamper with value
	tx.Value = 96
	assert.Equal(t, fault.ErrInvalidSignature, tx.Verify(), "tampered transaction verified")

	// wrong signer
	other, err := transaction.New(sender.Address(), recipient.Address(), 1, 0, 0)
	require.Nil(t, err)
	assert.Equal(t, fault.ErrInvalidSignature, recipient.Sign(other), "foreign key signed")
}
