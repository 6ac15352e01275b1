// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cashlink/messagebus"
)

func TestBusOrder(t *testing.T) {
	var bus messagebus.Bus

	calls := []string{}
	first := func(e messagebus.Event) { calls = append(calls, "first") }
	second := func(e messagebus.Event) { calls = append(calls, "second") }

	bus.On(messagebus.Confirmed, first)
	bus.On(messagebus.Confirmed, second)
	bus.On(messagebus.Confirmed, first)

	bus.Publish(messagebus.ConfirmedAmountChanged{Amount: 5})

	assert.Equal(t, []string{"first", "second", "first"}, calls, "invocation order")
}

func TestBusKinds(t *testing.T) {
	var bus messagebus.Bus

	var confirmed, unconfirmed []uint64
	bus.On(messagebus.Confirmed, func(e messagebus.Event) {
		confirmed = append(confirmed, e.(messagebus.ConfirmedAmountChanged).Amount)
	})
	bus.On(messagebus.Unconfirmed, func(e messagebus.Event) {
		unconfirmed = append(unconfirmed, e.(messagebus.UnconfirmedAmountChanged).Amount)
	})

	bus.Publish(messagebus.UnconfirmedAmountChanged{Amount: 1})
	bus.Publish(messagebus.ConfirmedAmountChanged{Amount: 2})
	bus.Publish(messagebus.UnconfirmedAmountChanged{Amount: 3})

	assert.Equal(t, []uint64{2}, confirmed, "confirmed")
	assert.Equal(t, []uint64{1, 3}, unconfirmed, "unconfirmed")
}

func TestBusOff(t *testing.T) {
	var bus messagebus.Bus

	n := 0
	h := func(e messagebus.Event) { n += 1 }
	id1 := bus.On(messagebus.Unconfirmed, h)
	id2 := bus.On(messagebus.Unconfirmed, h)
	assert.Equal(t, 2, bus.Count(messagebus.Unconfirmed), "count")

	assert.True(t, bus.Off(id1), "first removal")
	assert.False(t, bus.Off(id1), "second removal")

	bus.Publish(messagebus.UnconfirmedAmountChanged{})
	assert.Equal(t, 1, n, "calls after removal")

	assert.True(t, bus.Off(id2), "remove last")
	bus.Publish(messagebus.UnconfirmedAmountChanged{})
	assert.Equal(t, 1, n, "calls with no listener")
}

func TestBusReentrant(t *testing.T) {
	var bus messagebus.Bus

	n := 0
	var id messagebus.ListenerID
	id = bus.On(messagebus.Confirmed, func(e messagebus.Event) {
		n += 1
		bus.Off(id)
	})

	bus.Publish(messagebus.ConfirmedAmountChanged{})
	bus.Publish(messagebus.ConfirmedAmountChanged{})
	assert.Equal(t, 1, n, "handler removed itself")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "confirmed-amount-changed", messagebus.Confirmed.String())
	assert.Equal(t, "unconfirmed-amount-changed", messagebus.Unconfirmed.String())
	assert.Equal(t, "unknown", messagebus.Kind(7).String())
}
