// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cashlink/background"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/transaction"
)

// shared by every process in a test
type watchArgs struct {
	t          *testing.T
	recomputed atomic.Int32
}

// recomputes on every event and flushes once on shutdown
type eventWatcher struct {
	events  chan core.MempoolEvent
	flushed bool
}

func (state *eventWatcher) Run(args interface{}, shutdown <-chan struct{}) {

	a := args.(*watchArgs)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case e := <-state.events:
			if nil == e.Transaction {
				a.t.Errorf("event without transaction: %v", e.Kind)
			}
			a.recomputed.Add(1)
		}
	}

	// Stop must wait for this
	time.Sleep(10 * time.Millisecond)
	state.flushed = true
}

func TestStartStop(t *testing.T) {

	args := &watchArgs{t: t}

	w1 := &eventWatcher{events: make(chan core.MempoolEvent)}
	w2 := &eventWatcher{events: make(chan core.MempoolEvent)}

	p := background.Start(background.Processes{w1, w2}, args)

	for _, w := range []*eventWatcher{w1, w2, w1} {
		w.events <- core.MempoolEvent{Kind: core.TransactionAdded, Transaction: &transaction.Transaction{Value: 1}}
	}

	p.Stop()

	assert.True(t, w1.flushed, "first watcher did not finish")
	assert.True(t, w2.flushed, "second watcher did not finish")
	assert.Equal(t, int32(3), args.recomputed.Load(), "recomputed")

	// second stop must not block or panic
	p.Stop()
}

func TestStopBeforeAnyEvent(t *testing.T) {
	w := &eventWatcher{events: make(chan core.MempoolEvent)}

	p := background.Start(background.Processes{w}, &watchArgs{t: t})
	p.Stop()

	assert.True(t, w.flushed, "watcher did not finish")
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
