// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// initial buffer of each subscriber queue, it grows without limit
const queueSize = 20

// Feed - broadcast to all current subscribers
//
// each subscriber has its own unbounded queue so a slow reader never
// blocks Send; items sent while nobody is subscribed are dropped
type Feed[T any] struct {
	lock        sync.Mutex
	next        uint64
	closed      bool
	subscribers map[uint64]*fn.ConcurrentQueue[T]
}

// Subscribe - start receiving items, call the returned function to stop
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	q := fn.NewConcurrentQueue[T](queueSize)
	q.Start()

	f.lock.Lock()
	if f.closed {
		f.lock.Unlock()
		q.Stop()
		return make(chan T), func() {}
	}
	if nil == f.subscribers {
		f.subscribers = make(map[uint64]*fn.ConcurrentQueue[T])
	}
	f.next += 1
	id := f.next
	f.subscribers[id] = q
	f.lock.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.lock.Lock()
			_, ok := f.subscribers[id]
			delete(f.subscribers, id)
			f.lock.Unlock()
			if ok {
				q.Stop()
			}
		})
	}
	return q.ChanOut(), cancel
}

// Send - queue an item for every subscriber
func (f *Feed[T]) Send(item T) {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, q := range f.subscribers {
		q.ChanIn() <- item
	}
}

// Subscribers - number of active subscriptions
func (f *Feed[T]) Subscribers() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.subscribers)
}

// Close - drop all subscribers, later subscriptions receive nothing
func (f *Feed[T]) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.closed = true
	for id, q := range f.subscribers {
		q.Stop()
		delete(f.subscribers, id)
	}
}
