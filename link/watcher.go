// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/messagebus"
	"github.com/bitmark-inc/cashlink/metrics"
	"github.com/bitmark-inc/cashlink/unconfirmed"
)

// watcher - turns collaborator notifications into link events
//
// subscriptions are taken when the watcher is created so nothing that
// happens after New returns can be missed
type watcher struct {
	link *Link

	mempool     <-chan core.MempoolEvent
	heads       <-chan core.Head
	established <-chan struct{}

	unsubscribe []func()
}

func newWatcher(l *Link) *watcher {
	mempool, cancelMempool := l.cfg.Mempool.Subscribe()
	heads, cancelHeads := l.cfg.Blockchain.SubscribeHead()
	established, cancelEstablished := l.cfg.Consensus.SubscribeEstablished()

	return &watcher{
		link:        l,
		mempool:     mempool,
		heads:       heads,
		established: established,
		unsubscribe: []func(){cancelMempool, cancelHeads, cancelEstablished},
	}
}

// Run - background process
func (w *watcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.link.log
	log.Debugf("watcher: %s  starting…", w.link.Address())

	defer func() {
		for _, cancel := range w.unsubscribe {
			cancel()
		}
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.mempool:
			if !ok {
				w.mempool = nil
				continue loop
			}
			if nil != event.Transaction && unconfirmed.Touches(event.Transaction, w.link.Address()) {
				w.unconfirmedChanged()
			}

		case head, ok := <-w.heads:
			if !ok {
				w.heads = nil
				continue loop
			}
			w.headChanged(head)

		case _, ok := <-w.established:
			if !ok {
				w.established = nil
				continue loop
			}
			w.confirmedChanged()
		}
	}

	log.Debugf("watcher: %s  shutting down…", w.link.Address())
}

func (w *watcher) unconfirmedChanged() {
	l := w.link
	amount, err := l.Amount(l.ctx, true)
	if nil != err {
		l.log.Debugf("unconfirmed amount: error: %s", err)
		return
	}
	w.publish(messagebus.UnconfirmedAmountChanged{Amount: amount})
}

// a new head always invalidates, a branching head is not trusted for
// balances until the chain settles
func (w *watcher) headChanged(head core.Head) {
	l := w.link
	l.accounts.Invalidate()

	l.log.Debugf("head: %d  %s  branching: %t", head.Height, head.Hash, head.Branching)

	if head.Branching || !l.cfg.Consensus.Established() {
		return
	}
	w.confirmedChanged()
}

// publish only when the confirmed amount differs from the last one seen
func (w *watcher) confirmedChanged() {
	l := w.link
	amount, err := l.Amount(l.ctx, false)
	if nil != err {
		l.log.Debugf("confirmed amount: error: %s", err)
		return
	}

	l.lock.Lock()
	changed := !l.confirmedKnown || amount != l.lastConfirmed
	l.lastConfirmed = amount
	l.confirmedKnown = true
	l.lock.Unlock()

	if changed {
		w.publish(messagebus.ConfirmedAmountChanged{Amount: amount})
	}
}

func (w *watcher) publish(e messagebus.Event) {
	metrics.Events.WithLabelValues(e.Kind().String()).Inc()
	w.link.bus.Publish(e)
}
