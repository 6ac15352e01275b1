// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/core/mocks"
	"github.com/bitmark-inc/cashlink/devnet"
	"github.com/bitmark-inc/cashlink/link"
	"github.com/bitmark-inc/cashlink/messagebus"
)

// mocked collaborators with the calls every link makes
type mockNet struct {
	accounts   *mocks.MockAccountSource
	consensus  *mocks.MockConsensus
	mempool    *mocks.MockMempool
	blockchain *mocks.MockBlockchain

	// what Established reports, initially true
	established atomic.Bool
}

func newMockNet(ctl *gomock.Controller) *mockNet {
	m := &mockNet{
		accounts:   mocks.NewMockAccountSource(ctl),
		consensus:  mocks.NewMockConsensus(ctl),
		mempool:    mocks.NewMockMempool(ctl),
		blockchain: mocks.NewMockBlockchain(ctl),
	}

	m.consensus.EXPECT().SubscribeEstablished().Return((<-chan struct{})(make(chan struct{})), func() {}).AnyTimes()
	m.established.Store(true)
	m.consensus.EXPECT().Established().DoAndReturn(m.established.Load).AnyTimes()
	m.mempool.EXPECT().Subscribe().Return((<-chan core.MempoolEvent)(make(chan core.MempoolEvent)), func() {}).AnyTimes()
	m.blockchain.EXPECT().SubscribeHead().Return((<-chan core.Head)(make(chan core.Head)), func() {}).AnyTimes()
	m.blockchain.EXPECT().Head().Return(core.Head{}).AnyTimes()

	return m
}

func (m *mockNet) config() link.Config {
	return link.Config{
		Accounts:   m.accounts,
		Consensus:  m.consensus,
		Mempool:    m.mempool,
		Blockchain: m.blockchain,
	}
}

func (m *mockNet) nanoConfig() link.Config {
	cfg := m.config()
	cfg.Accounts = nil
	return cfg
}

func newNode(t *testing.T, established bool) *devnet.Node {
	n, err := devnet.New(devnet.Config{Established: established, RelayRate: 1000, RelayBurst: 100})
	require.Nil(t, err, "devnet")
	return n
}

func fullConfig(n *devnet.Node) link.Config {
	return link.Config{
		Accounts:   n,
		Consensus:  n,
		Mempool:    n,
		Blockchain: n,
	}
}

func nanoConfig(n *devnet.Node) link.Config {
	return link.Config{
		Consensus:  n,
		Mempool:    n,
		Blockchain: n,
	}
}

// collects link events
type recorder struct {
	unconfirmed chan uint64
	confirmed   chan uint64
}

func record(l *link.Link) *recorder {
	r := &recorder{
		unconfirmed: make(chan uint64, 20),
		confirmed:   make(chan uint64, 20),
	}
	l.On(messagebus.Unconfirmed, func(e messagebus.Event) {
		r.unconfirmed <- e.(messagebus.UnconfirmedAmountChanged).Amount
	})
	l.On(messagebus.Confirmed, func(e messagebus.Event) {
		r.confirmed <- e.(messagebus.ConfirmedAmountChanged).Amount
	})
	return r
}

func expectAmount(t *testing.T, ch <-chan uint64, expected uint64, what string) {
	t.Helper()
	select {
	case amount := <-ch:
		if expected != amount {
			t.Fatalf("%s: amount: %d  expected: %d", what, amount, expected)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("%s: no event", what)
	}
}

func expectNothing(t *testing.T, ch <-chan uint64, what string) {
	t.Helper()
	select {
	case amount := <-ch:
		t.Fatalf("%s: unexpected event: %d", what, amount)
	case <-time.After(50 * time.Millisecond):
	}
}

// a wallet for address whose signing always fails with err
func mockWallet(ctl *gomock.Controller, address account.Address, err error) core.Wallet {
	w := mocks.NewMockWallet(ctl)
	w.EXPECT().Address().Return(address).AnyTimes()
	w.EXPECT().Sign(gomock.Any()).Return(err).AnyTimes()
	return w
}
