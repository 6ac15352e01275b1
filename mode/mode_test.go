// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cashlink/chain"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/mode"
)

func TestInvalidChain(t *testing.T) {
	_, err := mode.New("nowhere")
	assert.Equal(t, fault.ErrInvalidChain, err, "error")
}

func TestTransitions(t *testing.T) {
	m, err := mode.New(chain.Local)
	require.Nil(t, err, "new")
	defer m.Close()

	assert.True(t, m.IsTesting(), "testing")
	assert.Equal(t, chain.Local, m.ChainName(), "chain")
	assert.True(t, m.Is(mode.Resynchronise), "initial mode")
	assert.False(t, m.Established(), "established at start")

	ch, cancel := m.SubscribeEstablished()
	defer cancel()

	m.Set(mode.Normal)
	assert.True(t, m.Established(), "established")
	assert.Equal(t, "Normal", m.String(), "string")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification")
	}

	// repeating the mode does not notify again
	m.Set(mode.Normal)
	select {
	case <-ch:
		t.Fatal("duplicate notification")
	case <-time.After(20 * time.Millisecond):
	}

	m.Set(mode.Mode(99))
	assert.True(t, m.IsNot(mode.Resynchronise), "invalid set changed mode")
}

func TestLiveChain(t *testing.T) {
	m, err := mode.New(chain.Live)
	require.Nil(t, err, "new")
	defer m.Close()
	assert.False(t, m.IsTesting(), "live is testing")
}
