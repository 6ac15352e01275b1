// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"context"
	"errors"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/metrics"
	"github.com/bitmark-inc/cashlink/transaction"
)

// submission kinds for metrics
const (
	kindFund  = "fund"
	kindClaim = "claim"
)

// Fund - move the link's value from the sender into the link
//
// the recipient pays the fee so the link receives value - fee; the
// consensus wait, the lookup of the sender and the submission are each
// tried once and any failure is returned
func (l *Link) Fund(ctx context.Context, sender core.Wallet, fee uint64) (*transaction.Transaction, error) {
	l.lock.Lock()
	value := l.value
	l.lock.Unlock()

	if 0 == value {
		return nil, fault.ErrMalformedValue
	}
	if fee >= value {
		return nil, fault.ErrFeeExceedsValue
	}

	// a cached sender snapshot skips the lookup's own wait
	if err := l.gate.Await(ctx); nil != err {
		return nil, err
	}

	from := sender.Address()
	balance, err := l.accounts.GetOnce(ctx, from)
	if nil != err {
		l.log.Warnf("fund: sender: %s  lookup error: %s", from, err)
		return nil, err
	}
	if balance.Balance < value {
		return nil, fault.ErrInsufficientFunds
	}

	tx, err := transaction.New(from, l.Address(), value-fee, fee, balance.Nonce)
	if nil != err {
		return nil, err
	}
	if err := sender.Sign(tx); nil != err {
		return nil, err
	}

	if err := l.submit(ctx, tx); nil != err {
		metrics.Submissions.WithLabelValues(kindFund, metrics.SubmitRejected).Inc()
		l.log.Errorf("fund: tx: %s  error: %s", tx.Id(), err)
		return nil, err
	}
	metrics.Submissions.WithLabelValues(kindFund, metrics.SubmitAccepted).Inc()

	l.lock.Lock()
	l.value = value - fee
	l.immutable = true
	if Created == l.state {
		l.state = Funded
	}
	l.lock.Unlock()

	l.log.Infof("fund: tx: %s  value: %d  fee: %d", tx.Id(), value-fee, fee)
	return tx, nil
}

// Claim - move the whole confirmed balance of the link to recipient
//
// submission is retried until it is accepted, ctx or Close stops it
func (l *Link) Claim(ctx context.Context, recipient account.Address, fee uint64) (*transaction.Transaction, error) {
	balance, err := l.accounts.Get(ctx, l.Address())
	if nil != err {
		return nil, err
	}
	if 0 == balance.Balance {
		return nil, fault.ErrEmptyLink
	}
	if fee >= balance.Balance {
		return nil, fault.ErrFeeExceedsValue
	}

	tx, err := transaction.New(l.Address(), recipient, balance.Balance-fee, fee, balance.Nonce)
	if nil != err {
		return nil, err
	}
	if err := l.keys.Sign(tx); nil != err {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(l.ctx, cancel)
	defer stop()

	err = l.retry.UntilSuccess(ctx, "claim", func(ctx context.Context) error {
		if err := l.gate.Await(ctx); nil != err {
			return err
		}
		err := l.submit(ctx, tx)
		if errors.Is(err, fault.ErrTransactionAlreadyExists) {
			return nil
		}
		if nil != err {
			metrics.Submissions.WithLabelValues(kindClaim, metrics.SubmitRejected).Inc()
		}
		return err
	})
	if nil != err {
		if nil != l.ctx.Err() {
			return nil, fault.ErrLinkClosed
		}
		return nil, err
	}
	metrics.Submissions.WithLabelValues(kindClaim, metrics.SubmitAccepted).Inc()

	l.log.Infof("claim: tx: %s  recipient: %s  value: %d  fee: %d", tx.Id(), recipient, tx.Value, fee)
	return tx, nil
}

// hand a signed transaction to the network once
func (l *Link) submit(ctx context.Context, tx *transaction.Transaction) error {
	if l.cfg.Nano() {
		return fault.Submission(l.cfg.Consensus.Relay(ctx, tx))
	}

	accepted, err := l.cfg.Mempool.Push(ctx, tx)
	if nil != err {
		return fault.Submission(err)
	}
	if !accepted {
		return fault.ErrSubmissionRejected
	}
	return nil
}
