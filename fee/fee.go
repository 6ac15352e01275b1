// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fee

import (
	"math/bits"

	"github.com/bitmark-inc/cashlink/fault"
)

// PartsPerMillion - denominator of Policy.Rate
const PartsPerMillion = 1000000

// defaults
const (
	DefaultRate    = 1000 // 0.1%
	DefaultMinimum = 2
	DefaultMaximum = 100000
)

// Policy - percentage fee with a floor and an optional ceiling
//
// a Maximum of zero means there is no ceiling
type Policy struct {
	Rate    uint64 `json:"rate"`
	Minimum uint64 `json:"minimum"`
	Maximum uint64 `json:"maximum"`
}

// Default - the policy used when nothing is configured
func Default() Policy {
	return Policy{
		Rate:    DefaultRate,
		Minimum: DefaultMinimum,
		Maximum: DefaultMaximum,
	}
}

// Validate - check the policy is usable
func (p Policy) Validate() error {
	if p.Rate > PartsPerMillion {
		return fault.ErrInvalidFeePolicy
	}
	if 0 != p.Maximum && p.Minimum > p.Maximum {
		return fault.ErrInvalidFeePolicy
	}
	return nil
}

// Calculate - fee for an amount
//
// with included false the amount is what the recipient receives and
// the fee is on top of it
//
// with included true the amount already contains the fee and the
// result is the fee part of it, such that
//   Calculate(a + Calculate(a, false), true) == Calculate(a, false)
func (p Policy) Calculate(amount uint64, included bool) uint64 {
	if !included {
		return p.on(amount)
	}
	net, ok := p.largestNet(amount)
	if !ok {
		return amount
	}
	return amount - net
}

// Split - divide a total into the net transfer value and its fee
func (p Policy) Split(total uint64) (net uint64, fee uint64) {
	fee = p.Calculate(total, true)
	return total - fee, fee
}

// fee charged on top of a net amount
func (p Policy) on(amount uint64) uint64 {
	hi, lo := bits.Mul64(amount, p.Rate)
	lo, carry := bits.Add64(lo, PartsPerMillion-1, 0)
	hi += carry
	f, _ := bits.Div64(hi, lo, PartsPerMillion)
	if f < p.Minimum {
		f = p.Minimum
	}
	if 0 != p.Maximum && f > p.Maximum {
		f = p.Maximum
	}
	return f
}

// largest net amount a such that a + on(a) does not exceed total
//
// a + on(a) is strictly increasing so a binary search finds it
func (p Policy) largestNet(total uint64) (uint64, bool) {
	fits := func(a uint64) bool {
		sum, carry := bits.Add64(a, p.on(a), 0)
		return 0 == carry && sum <= total
	}
	if !fits(0) {
		return 0, false
	}
	lo, hi := uint64(0), total
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, true
}
