// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir_test

import (
	"context"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/keypair"
	"github.com/bitmark-inc/cashlink/reservoir"
	"github.com/bitmark-inc/cashlink/storage"
	"github.com/bitmark-inc/cashlink/transaction"
)

var startTime = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	ledger *storage.Ledger
	pool   *reservoir.Reservoir
	alice  *keypair.KeyPair
	bob    *keypair.KeyPair
}

func setup(t *testing.T, clk clock.Clock) *fixture {
	ledger, err := storage.Open("")
	require.Nil(t, err, "open")

	alice, _ := keypair.New()
	bob, _ := keypair.New()
	_, err = ledger.Credit(alice.Address(), 200)
	require.Nil(t, err, "credit")

	return &fixture{
		ledger: ledger,
		pool:   reservoir.New(ledger, 4*time.Hour, clk),
		alice:  alice,
		bob:    bob,
	}
}

func (f *fixture) close() {
	f.pool.Close()
	_ = f.ledger.Close()
}

func (f *fixture) transfer(t *testing.T, value uint64, fee uint64, nonce uint32) *transaction.Transaction {
	tx, err := transaction.New(f.alice.Address(), f.bob.Address(), value, fee, nonce)
	require.Nil(t, err, "transaction")
	require.Nil(t, f.alice.Sign(tx), "sign")
	return tx
}

func TestPush(t *testing.T) {
	f := setup(t, nil)
	defer f.close()

	events, cancel := f.pool.Subscribe()
	defer cancel()

	ctx := context.Background()

	tx1 := f.transfer(t, 95, 5, 0)
	ok, err := f.pool.Push(ctx, tx1)
	assert.Nil(t, err, "push")
	assert.True(t, ok, "accepted")

	select {
	case e := <-events:
		assert.Equal(t, core.TransactionAdded, e.Kind, "kind")
		assert.Equal(t, tx1, e.Transaction, "transaction")
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	// same again is accepted without a second entry
	ok, err = f.pool.Push(ctx, tx1)
	assert.Nil(t, err, "duplicate")
	assert.True(t, ok, "duplicate accepted")
	assert.Equal(t, 1, f.pool.Size(), "size")

	// nonce must follow the pending one
	ok, err = f.pool.Push(ctx, f.transfer(t, 1, 0, 0))
	assert.Nil(t, err, "reused nonce")
	assert.False(t, ok, "reused nonce accepted")

	// pending debits count against the balance
	ok, err = f.pool.Push(ctx, f.transfer(t, 100, 1, 1))
	assert.Nil(t, err, "overspend")
	assert.False(t, ok, "overspend accepted")

	tx2 := f.transfer(t, 100, 0, 1)
	ok, err = f.pool.Push(ctx, tx2)
	assert.Nil(t, err, "exact spend")
	assert.True(t, ok, "exact spend accepted")

	assert.Equal(t, []*transaction.Transaction{tx1, tx2}, f.pool.Transactions(), "arrival order")
}

func TestPushInvalidSignature(t *testing.T) {
	f := setup(t, nil)
	defer f.close()

	tx := f.transfer(t, 10, 0, 0)
	tx.Value = 11
	ok, err := f.pool.Push(context.Background(), tx)
	assert.Equal(t, fault.ErrInvalidSignature, err, "error")
	assert.False(t, ok, "accepted")
}

func TestPushConfirmed(t *testing.T) {
	f := setup(t, nil)
	defer f.close()

	tx := f.transfer(t, 10, 0, 0)
	applied, _, err := f.ledger.Apply([]*transaction.Transaction{tx})
	require.Nil(t, err, "apply")
	require.Equal(t, 1, len(applied), "applied")

	ok, err := f.pool.Push(context.Background(), tx)
	assert.Equal(t, fault.ErrTransactionAlreadyExists, err, "error")
	assert.True(t, fault.IsErrExists(err), "class")
	assert.False(t, ok, "accepted")
}

func TestRemove(t *testing.T) {
	f := setup(t, nil)
	defer f.close()

	tx1 := f.transfer(t, 10, 0, 0)
	tx2 := f.transfer(t, 10, 0, 1)
	_, _ = f.pool.Push(context.Background(), tx1)
	_, _ = f.pool.Push(context.Background(), tx2)

	f.pool.Remove([]*transaction.Transaction{tx1})
	assert.Equal(t, []*transaction.Transaction{tx2}, f.pool.Transactions(), "remaining")
}

func TestExpiry(t *testing.T) {
	ticks := make(chan time.Duration, 10)
	clk := clock.NewTestClockWithTickSignal(startTime, ticks)

	f := setup(t, clk)
	defer f.close()

	// expiry loop is waiting
	assert.Equal(t, time.Hour, <-ticks, "interval")

	events, cancel := f.pool.Subscribe()
	defer cancel()

	tx := f.transfer(t, 10, 0, 0)
	ok, _ := f.pool.Push(context.Background(), tx)
	require.True(t, ok, "push")
	assert.Equal(t, core.TransactionAdded, (<-events).Kind, "added")

	clk.SetTime(startTime.Add(5 * time.Hour))

	select {
	case e := <-events:
		assert.Equal(t, core.TransactionExpired, e.Kind, "kind")
		assert.Equal(t, tx.Id(), e.Transaction.Id(), "transaction")
	case <-time.After(time.Second):
		t.Fatal("not expired")
	}
	assert.Equal(t, 0, f.pool.Size(), "size after expiry")

	// next wait has been scheduled
	<-ticks
}
