// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// Kind - event type selector for On
type Kind int

// event kinds
const (
	Unconfirmed Kind = iota
	Confirmed
)

// String - name of the kind
func (k Kind) String() string {
	switch k {
	case Unconfirmed:
		return "unconfirmed-amount-changed"
	case Confirmed:
		return "confirmed-amount-changed"
	default:
		return "unknown"
	}
}

// Event - a typed event payload
type Event interface {
	Kind() Kind
}

// UnconfirmedAmountChanged - the projected amount may have changed
type UnconfirmedAmountChanged struct {
	Amount uint64
}

// Kind - implements Event
func (UnconfirmedAmountChanged) Kind() Kind { return Unconfirmed }

// ConfirmedAmountChanged - the confirmed amount did change
type ConfirmedAmountChanged struct {
	Amount uint64
}

// Kind - implements Event
func (ConfirmedAmountChanged) Kind() Kind { return Confirmed }

// Handler - receives published events
type Handler func(Event)

// ListenerID - returned by On, used to remove the listener
type ListenerID uint64

type listener struct {
	id      ListenerID
	handler Handler
}

// Bus - ordered listener lists per kind
//
// the zero value is ready to use
type Bus struct {
	lock      sync.Mutex
	next      ListenerID
	listeners map[Kind][]listener
}

// On - append a handler for a kind
//
// the same handler may be added more than once and is then called
// once per registration
func (b *Bus) On(kind Kind, handler Handler) ListenerID {
	b.lock.Lock()
	defer b.lock.Unlock()

	if nil == b.listeners {
		b.listeners = make(map[Kind][]listener)
	}
	b.next += 1
	b.listeners[kind] = append(b.listeners[kind], listener{
		id:      b.next,
		handler: handler,
	})
	return b.next
}

// Off - remove a registration, false if it was not present
func (b *Bus) Off(id ListenerID) bool {
	b.lock.Lock()
	defer b.lock.Unlock()

	for kind, list := range b.listeners {
		for i, l := range list {
			if l.id != id {
				continue
			}
			remaining := make([]listener, 0, len(list)-1)
			remaining = append(remaining, list[:i]...)
			remaining = append(remaining, list[i+1:]...)
			b.listeners[kind] = remaining
			return true
		}
	}
	return false
}

// Publish - call every handler for the event's kind in registration
// order
//
// handlers run on the caller's goroutine without the bus lock held so
// they may call On or Off
func (b *Bus) Publish(e Event) {
	b.lock.Lock()
	list := b.listeners[e.Kind()]
	b.lock.Unlock()

	for _, l := range list {
		l.handler(e)
	}
}

// Count - number of handlers registered for a kind
func (b *Bus) Count(kind Kind) int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return len(b.listeners[kind])
}
