// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/background"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/merkle"
	"github.com/bitmark-inc/cashlink/messagebus"
	"github.com/bitmark-inc/cashlink/transaction"
)

// DefaultLifetime - how long an unconfirmed transaction is kept
const DefaultLifetime = 72 * time.Hour

// Ledger - confirmed state the reservoir validates against
type Ledger interface {
	core.AccountSource
	HasTransaction(id merkle.Digest) (bool, error)
}

type item struct {
	tx      *transaction.Transaction
	expires time.Time
}

// Reservoir - the mempool
type Reservoir struct {
	sync.RWMutex
	log    *logger.L
	ledger Ledger
	clock  clock.Clock

	lifetime time.Duration
	entries  map[merkle.Digest]*item
	order    []merkle.Digest

	events     messagebus.Feed[core.MempoolEvent]
	background *background.T
}

// New - create a reservoir and start its expiry process
func New(ledger Ledger, lifetime time.Duration, clk clock.Clock) *Reservoir {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	if nil == clk {
		clk = clock.NewDefaultClock()
	}

	r := &Reservoir{
		log:      logger.New("reservoir"),
		ledger:   ledger,
		clock:    clk,
		lifetime: lifetime,
		entries:  make(map[merkle.Digest]*item),
	}

	r.log.Info("starting…")
	r.background = background.Start(background.Processes{
		&expiry{log: logger.New("expiry"), interval: lifetime / 4},
	}, r)
	return r
}

// Close - stop the expiry process and drop subscribers
func (r *Reservoir) Close() {
	r.log.Info("shutting down…")
	r.background.Stop()
	r.events.Close()
}

// Push - add a transaction
//
// an identical transaction already pooled counts as accepted, one
// already confirmed gives fault.ErrTransactionAlreadyExists; a valid
// transaction that cannot be paid for or has the wrong nonce is not
// accepted
func (r *Reservoir) Push(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	if err := tx.Verify(); nil != err {
		return false, err
	}

	id := tx.Id()

	confirmed, err := r.ledger.HasTransaction(id)
	if nil != err {
		return false, err
	}
	if confirmed {
		return false, fault.ErrTransactionAlreadyExists
	}

	sender, _, err := r.ledger.Account(ctx, tx.Sender)
	if nil != err {
		return false, err
	}

	r.Lock()

	if _, ok := r.entries[id]; ok {
		r.Unlock()
		r.log.Debugf("push: tx: %s  duplicate", id)
		return true, nil
	}

	nonce, debits := r.pendingFrom(tx.Sender)
	expectedNonce := sender.Nonce + nonce
	if tx.Nonce != expectedNonce {
		r.Unlock()
		r.log.Warnf("push: tx: %s  nonce: %d  expected: %d", id, tx.Nonce, expectedNonce)
		return false, nil
	}
	if debits > sender.Balance || tx.Total() > sender.Balance-debits {
		r.Unlock()
		r.log.Warnf("push: tx: %s  total: %d  available: %d", id, tx.Total(), sender.Balance-min(debits, sender.Balance))
		return false, nil
	}

	r.entries[id] = &item{
		tx:      tx,
		expires: r.clock.Now().Add(r.lifetime),
	}
	r.order = append(r.order, id)
	r.Unlock()

	r.log.Infof("push: tx: %s  value: %d  fee: %d", id, tx.Value, tx.Fee)
	r.events.Send(core.MempoolEvent{Kind: core.TransactionAdded, Transaction: tx})
	return true, nil
}

// Transactions - pooled transactions in arrival order
func (r *Reservoir) Transactions() []*transaction.Transaction {
	r.RLock()
	defer r.RUnlock()

	txs := make([]*transaction.Transaction, 0, len(r.order))
	for _, id := range r.order {
		txs = append(txs, r.entries[id].tx)
	}
	return txs
}

// Size - number of pooled transactions
func (r *Reservoir) Size() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.order)
}

// Subscribe - mempool events
func (r *Reservoir) Subscribe() (<-chan core.MempoolEvent, func()) {
	return r.events.Subscribe()
}

// Remove - drop transactions that were confirmed or rejected by the
// ledger, no event is sent
func (r *Reservoir) Remove(txs []*transaction.Transaction) {
	r.Lock()
	defer r.Unlock()

	for _, tx := range txs {
		delete(r.entries, tx.Id())
	}
	r.compact()
}

// drop expired entries and notify
func (r *Reservoir) expire() {
	now := r.clock.Now()

	r.Lock()
	expired := []*transaction.Transaction{}
	for id, item := range r.entries {
		if now.After(item.expires) {
			r.log.Infof("expired: tx: %s", id)
			expired = append(expired, item.tx)
			delete(r.entries, id)
		}
	}
	r.compact()
	r.Unlock()

	for _, tx := range expired {
		r.events.Send(core.MempoolEvent{Kind: core.TransactionExpired, Transaction: tx})
	}
}

// must hold lock
func (r *Reservoir) compact() {
	order := make([]merkle.Digest, 0, len(r.entries))
	for _, id := range r.order {
		if _, ok := r.entries[id]; ok {
			order = append(order, id)
		}
	}
	r.order = order
}

// must hold lock
func (r *Reservoir) pendingFrom(sender account.Address) (uint32, uint64) {
	count := uint32(0)
	debits := uint64(0)
	for _, item := range r.entries {
		if item.tx.Sender == sender {
			count += 1
			debits += item.tx.Total()
		}
	}
	return count, debits
}
