// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"time"

	"github.com/lightningnetwork/lnd/clock"

	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/fee"
)

// Config - the collaborators and tuning shared by links
//
// with Accounts nil the link runs in nano mode: balances are read from
// Consensus and transactions are relayed instead of pushed into the
// mempool
type Config struct {
	Accounts   core.AccountSource
	Consensus  core.Consensus
	Mempool    core.Mempool
	Blockchain core.Blockchain

	Fees             fee.Policy
	RetryDelay       time.Duration
	ConsensusTimeout time.Duration
	CacheExpiry      time.Duration

	Clock clock.Clock
}

// Nano - true when balances come from the consensus layer
func (cfg Config) Nano() bool {
	return nil == cfg.Accounts
}

func (cfg Config) validate() error {
	if nil == cfg.Consensus || nil == cfg.Mempool || nil == cfg.Blockchain {
		return fault.ErrMissingCollaborator
	}
	return cfg.Fees.Validate()
}

func (cfg Config) source() core.AccountSource {
	if cfg.Nano() {
		return cfg.Consensus
	}
	return cfg.Accounts
}

func (cfg Config) fees() fee.Policy {
	if (fee.Policy{}) == cfg.Fees {
		return fee.Default()
	}
	return cfg.Fees
}
