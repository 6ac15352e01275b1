// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package retry - repeat an operation until it succeeds or the caller
// gives up
package retry

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/bitmark-inc/cashlink/metrics"
)

// DefaultDelay - wait between attempts when none is configured
const DefaultDelay = 5 * time.Second

// Operation - a single attempt
type Operation func(ctx context.Context) error

// Executor - fixed delay retry loop
type Executor struct {
	log   *logger.L
	delay time.Duration
	clock clock.Clock
}

// New - create an executor
//
// a zero delay selects DefaultDelay and a nil clock the system clock
func New(log *logger.L, delay time.Duration, clk clock.Clock) *Executor {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if nil == clk {
		clk = clock.NewDefaultClock()
	}
	return &Executor{
		log:   log,
		delay: delay,
		clock: clk,
	}
}

// Delay - the wait between attempts
func (e *Executor) Delay() time.Duration {
	return e.delay
}

// UntilSuccess - run op until it returns nil
//
// each failure is logged and followed by the configured delay; the
// only way out other than success is cancelling ctx, in which case the
// context error is returned
func (e *Executor) UntilSuccess(ctx context.Context, name string, op Operation) error {
	for attempt := 1; ; attempt += 1 {
		if err := ctx.Err(); nil != err {
			return err
		}

		err := op(ctx)
		if nil == err {
			if attempt > 1 {
				e.log.Infof("%s: succeeded after %d attempts", name, attempt)
			}
			return nil
		}

		// an operation aborted by cancellation is not a failure
		if nil != ctx.Err() {
			return ctx.Err()
		}

		metrics.Retries.WithLabelValues(name).Inc()
		e.log.Warnf("%s: attempt: %d  error: %s  retry in: %s", name, attempt, err, e.delay)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.clock.TickAfter(e.delay):
		}
	}
}
