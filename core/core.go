// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package core - the collaborators a transfer link is built against
//
// the link never talks to a node directly, it is given a ledger, a
// mempool, a blockchain view and a consensus view through these
// interfaces
package core

import (
	"context"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/merkle"
	"github.com/bitmark-inc/cashlink/transaction"
)

//go:generate mockgen -source=core.go -destination=mocks/core.go -package=mocks

// Snapshot - balance and nonce of an account at some point in time
type Snapshot struct {
	Balance uint64 `json:"balance"`
	Nonce   uint32 `json:"nonce"`
}

// EmptyAccount - snapshot of an account the ledger has never seen
var EmptyAccount = Snapshot{}

// Head - the tip of the chain
type Head struct {
	Hash      merkle.Digest `json:"hash"`
	Height    uint64        `json:"height"`
	Branching bool          `json:"branching"`
}

// MempoolEventKind - what happened to a pooled transaction
type MempoolEventKind int

// mempool event kinds
const (
	TransactionAdded MempoolEventKind = iota
	TransactionExpired
)

// String - name of the event kind
func (k MempoolEventKind) String() string {
	switch k {
	case TransactionAdded:
		return "added"
	case TransactionExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MempoolEvent - notification from the mempool
type MempoolEvent struct {
	Kind        MempoolEventKind
	Transaction *transaction.Transaction
}

// AccountSource - anything that can look up the confirmed state of an
// account
//
// found is false when the account has no entry, which is not an error
type AccountSource interface {
	Account(ctx context.Context, address account.Address) (snapshot Snapshot, found bool, err error)
}

// Consensus - consensus layer view, used directly in nano mode
type Consensus interface {
	AccountSource
	Established() bool
	SubscribeEstablished() (<-chan struct{}, func())
	Relay(ctx context.Context, tx *transaction.Transaction) error
}

// Mempool - pending transaction pool, used for submission in full mode
type Mempool interface {
	Push(ctx context.Context, tx *transaction.Transaction) (accepted bool, err error)
	Transactions() []*transaction.Transaction
	Subscribe() (<-chan MempoolEvent, func())
}

// Blockchain - chain head view
type Blockchain interface {
	Head() Head
	SubscribeHead() (<-chan Head, func())
}

// Wallet - a key holder able to sign transfers from its own address
type Wallet interface {
	Address() account.Address
	Sign(tx *transaction.Transaction) error
}
