// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package devnet - a single process stand-in for the network
//
// it keeps a ledger in leveldb, a mempool and a consensus mode, and
// exposes them through the core interfaces; blocks are reduced to a
// head digest that moves whenever the ledger changes
package devnet

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/clock"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/chain"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/messagebus"
	"github.com/bitmark-inc/cashlink/mode"
	"github.com/bitmark-inc/cashlink/reservoir"
	"github.com/bitmark-inc/cashlink/storage"
	"github.com/bitmark-inc/cashlink/transaction"
)

// defaults
const (
	DefaultRelayRate  = 10
	DefaultRelayBurst = 5
)

// Config - node settings
type Config struct {
	Database    string        // empty for an in-memory ledger
	Chain       string        // chain.Local if empty
	Lifetime    time.Duration // mempool lifetime
	RelayRate   rate.Limit    // relays per second
	RelayBurst  int
	Established bool // start in consensus
	Clock       clock.Clock
}

// Node - the in-process network
type Node struct {
	log     *logger.L
	ledger  *storage.Ledger
	pool    *reservoir.Reservoir
	mode    *mode.Tracker
	limiter *rate.Limiter
	heads   messagebus.Feed[core.Head]
}

// compile time checks
var (
	_ core.Consensus  = (*Node)(nil)
	_ core.Mempool    = (*Node)(nil)
	_ core.Blockchain = (*Node)(nil)
)

// New - open the ledger and start the node
func New(cfg Config) (*Node, error) {
	chainName := cfg.Chain
	if "" == chainName {
		chainName = chain.Local
	}
	tracker, err := mode.New(chainName)
	if nil != err {
		return nil, err
	}

	ledger, err := storage.Open(cfg.Database)
	if nil != err {
		tracker.Close()
		return nil, err
	}

	relayRate := cfg.RelayRate
	if 0 == relayRate {
		relayRate = DefaultRelayRate
	}
	burst := cfg.RelayBurst
	if 0 == burst {
		burst = DefaultRelayBurst
	}

	n := &Node{
		log:     logger.New("devnet"),
		ledger:  ledger,
		pool:    reservoir.New(ledger, cfg.Lifetime, cfg.Clock),
		mode:    tracker,
		limiter: rate.NewLimiter(relayRate, burst),
	}
	n.log.Infof("starting… chain: %s  database: %q", chainName, cfg.Database)

	if cfg.Established {
		tracker.Set(mode.Normal)
	}
	return n, nil
}

// Close - stop everything and close the ledger
func (n *Node) Close() error {
	n.log.Info("shutting down…")
	n.heads.Close()
	n.pool.Close()
	n.mode.Close()
	return n.ledger.Close()
}

// IsTesting - true if addresses carry the test flag
func (n *Node) IsTesting() bool {
	return n.mode.IsTesting()
}

// Account - confirmed state from the ledger
func (n *Node) Account(ctx context.Context, address account.Address) (core.Snapshot, bool, error) {
	return n.ledger.Account(ctx, address)
}

// Established - consensus state
func (n *Node) Established() bool {
	return n.mode.Established()
}

// SubscribeEstablished - notified on each entry to consensus
func (n *Node) SubscribeEstablished() (<-chan struct{}, func()) {
	return n.mode.SubscribeEstablished()
}

// SetEstablished - move in or out of consensus
func (n *Node) SetEstablished(established bool) {
	if established {
		n.mode.Set(mode.Normal)
	} else {
		n.mode.Set(mode.Resynchronise)
	}
}

// Relay - submit a transaction on behalf of a light client
//
// relays are rate limited and refused while out of consensus
func (n *Node) Relay(ctx context.Context, tx *transaction.Transaction) error {
	if err := n.limiter.Wait(ctx); nil != err {
		return err
	}
	if !n.Established() {
		return fault.ErrNotEstablished
	}
	accepted, err := n.pool.Push(ctx, tx)
	if nil != err {
		return err
	}
	if !accepted {
		return fault.ErrSubmissionRejected
	}
	return nil
}

// Push - add a transaction to the mempool
func (n *Node) Push(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	return n.pool.Push(ctx, tx)
}

// Transactions - pooled transactions
func (n *Node) Transactions() []*transaction.Transaction {
	return n.pool.Transactions()
}

// Subscribe - mempool events
func (n *Node) Subscribe() (<-chan core.MempoolEvent, func()) {
	return n.pool.Subscribe()
}

// Head - current chain head
func (n *Node) Head() core.Head {
	head, err := n.ledger.CurrentHead()
	if nil != err {
		n.log.Errorf("head: error: %s", err)
	}
	return head
}

// SubscribeHead - head changes
func (n *Node) SubscribeHead() (<-chan core.Head, func()) {
	return n.heads.Subscribe()
}

// Credit - faucet, adds funds and moves the head
func (n *Node) Credit(address account.Address, amount uint64) (core.Head, error) {
	head, err := n.ledger.Credit(address, amount)
	if nil != err {
		return core.Head{}, err
	}
	n.heads.Send(head)
	return head, nil
}

// Mine - confirm everything in the mempool that the ledger accepts
//
// all pooled transactions are removed, the ones the ledger skipped are
// dropped
func (n *Node) Mine() ([]*transaction.Transaction, core.Head, error) {
	txs := n.pool.Transactions()
	applied, head, err := n.ledger.Apply(txs)
	if nil != err {
		return nil, core.Head{}, err
	}
	n.pool.Remove(txs)

	n.log.Infof("mined: height: %d  transactions: %d", head.Height, len(applied))
	n.heads.Send(head)
	return applied, head, nil
}

// Branch - announce a head on a competing branch
func (n *Node) Branch() (core.Head, error) {
	head, err := n.ledger.Branch()
	if nil != err {
		return core.Head{}, err
	}
	n.heads.Send(head)
	return head, nil
}
