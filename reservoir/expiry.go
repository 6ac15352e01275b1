// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"time"

	"github.com/bitmark-inc/logger"
)

type expiry struct {
	log      *logger.L
	interval time.Duration
}

// expiry loop
func (state *expiry) Run(args interface{}, shutdown <-chan struct{}) {

	log := state.log
	r := args.(*Reservoir)

	log.Info("starting…")

loop:
	for {
		log.Debug("waiting…")
		select {
		case <-shutdown:
			break loop

		case <-r.clock.TickAfter(state.interval):
			r.expire()
		}
	}

	log.Info("shutting down…")
}
