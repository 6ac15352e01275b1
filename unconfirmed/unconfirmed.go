// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unconfirmed - overlay pending transactions on a confirmed
// balance
package unconfirmed

import (
	"math"
	"math/bits"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/transaction"
)

// Project - the balance an address would have if every transaction in
// the view were confirmed
//
// incoming transfers add their value, outgoing transfers subtract value
// plus fee and a transfer to self does both.  The result is returned as
// a magnitude and a sign so that every uint64 balance survives; it is
// not clamped at zero.  Credit or debit totals beyond 2^64-1 saturate.
func Project(confirmed uint64, address account.Address, txs []*transaction.Transaction) (amount uint64, negative bool) {
	credits := confirmed
	debits := uint64(0)
	for _, tx := range txs {
		if tx.Recipient == address {
			credits = add(credits, tx.Value)
		}
		if tx.Sender == address {
			debits = add(add(debits, tx.Value), tx.Fee)
		}
	}
	if credits >= debits {
		return credits - debits, false
	}
	return debits - credits, true
}

// saturating addition
func add(a uint64, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		return math.MaxUint64
	}
	return sum
}

// Touches - true if the transaction moves funds into or out of address
func Touches(tx *transaction.Transaction, address account.Address) bool {
	return tx.Sender == address || tx.Recipient == address
}

// Clamp - a projection as an amount, negative values become zero
func Clamp(amount uint64, negative bool) uint64 {
	if negative {
		return 0
	}
	return amount
}
