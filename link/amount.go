// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"context"

	"github.com/bitmark-inc/cashlink/unconfirmed"
)

// Amount - balance of the link
//
// with includeUnconfirmed the pending transactions in the mempool are
// applied to the confirmed balance; the result is never negative
func (l *Link) Amount(ctx context.Context, includeUnconfirmed bool) (uint64, error) {
	snapshot, err := l.accounts.Get(ctx, l.Address())
	if nil != err {
		return 0, err
	}
	if !includeUnconfirmed {
		return snapshot.Balance, nil
	}

	return unconfirmed.Clamp(unconfirmed.Project(snapshot.Balance, l.Address(), l.cfg.Mempool.Transactions())), nil
}

// WasEmptied - true once the link has spent and holds nothing
//
// an account that was never used has nonce zero and is not emptied
func (l *Link) WasEmptied(ctx context.Context) (bool, error) {
	snapshot, err := l.accounts.Get(ctx, l.Address())
	if nil != err {
		return false, err
	}
	return snapshot.Nonce > 0 && 0 == snapshot.Balance, nil
}
