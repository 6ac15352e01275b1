// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensus - wait for the node to reach consensus before
// reading or writing the ledger
package consensus

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/metrics"
)

// DefaultTimeout - how long Await waits when none is configured
const DefaultTimeout = 60 * time.Second

// Gate - blocks callers until consensus is established
type Gate struct {
	log       *logger.L
	consensus core.Consensus
	timeout   time.Duration
	clock     clock.Clock
}

// NewGate - create a gate over a consensus view
//
// a zero timeout selects DefaultTimeout and a nil clock the system
// clock
func NewGate(log *logger.L, c core.Consensus, timeout time.Duration, clk clock.Clock) *Gate {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if nil == clk {
		clk = clock.NewDefaultClock()
	}
	return &Gate{
		log:       log,
		consensus: c,
		timeout:   timeout,
		clock:     clk,
	}
}

// Await - return once consensus is established
//
// fails with fault.ErrConsensusTimeout if that does not happen within
// the timeout, or with the context error if ctx ends first
func (g *Gate) Await(ctx context.Context) error {
	if g.consensus.Established() {
		return nil
	}

	established, cancel := g.consensus.SubscribeEstablished()
	defer cancel()

	// may have been established before the subscription was in place
	if g.consensus.Established() {
		return nil
	}

	g.log.Debugf("waiting up to %s for consensus", g.timeout)

	select {
	case <-established:
		g.log.Debugf("consensus established")
		return nil
	case <-g.clock.TickAfter(g.timeout):
		metrics.ConsensusTimeouts.Inc()
		g.log.Warnf("consensus not established after %s", g.timeout)
		return fault.ErrConsensusTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
