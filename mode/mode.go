// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - tracks whether a node is in consensus with the network
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cashlink/chain"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/messagebus"
)

// Mode - type to hold the mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Resynchronise
	Normal
	maximum
)

// Tracker - the mode of one node
//
// Normal is the only mode in which consensus is established
type Tracker struct {
	sync.RWMutex
	log     *logger.L
	mode    Mode
	testing bool
	chain   string

	normal messagebus.Feed[struct{}]
}

// New - create a tracker, it starts in Resynchronise
func New(chainName string) (*Tracker, error) {
	if !chain.Valid(chainName) {
		return nil, fault.ErrInvalidChain
	}

	log := logger.New("mode")
	log.Info("starting…")

	return &Tracker{
		log:     log,
		mode:    Resynchronise,
		testing: chain.IsTesting(chainName),
		chain:   chainName,
	}, nil
}

// Close - stop the tracker and release any subscribers
func (t *Tracker) Close() {
	t.log.Info("shutting down…")
	t.Set(Stopped)
	t.normal.Close()
	t.log.Flush()
}

// Set - change mode
//
// entering Normal notifies subscribers
func (t *Tracker) Set(mode Mode) {

	if mode >= Stopped && mode < maximum {
		t.Lock()
		previous := t.mode
		t.mode = mode
		t.Unlock()

		if previous == mode {
			return
		}
		t.log.Infof("set: %s", mode)
		if Normal == mode {
			t.normal.Send(struct{}{})
		}
	} else {
		t.log.Errorf("ignore invalid set: %d", mode)
	}
}

// Is - detect mode
func (t *Tracker) Is(mode Mode) bool {
	t.RLock()
	defer t.RUnlock()
	return mode == t.mode
}

// IsNot - detect mode
func (t *Tracker) IsNot(mode Mode) bool {
	t.RLock()
	defer t.RUnlock()
	return mode != t.mode
}

// Established - true in Normal mode
func (t *Tracker) Established() bool {
	return t.Is(Normal)
}

// SubscribeEstablished - notified on each entry to Normal
func (t *Tracker) SubscribeEstablished() (<-chan struct{}, func()) {
	return t.normal.Subscribe()
}

// IsTesting - true for any chain other than live
func (t *Tracker) IsTesting() bool {
	t.RLock()
	defer t.RUnlock()
	return t.testing
}

// ChainName - name of the current chain
func (t *Tracker) ChainName() string {
	t.RLock()
	defer t.RUnlock()
	return t.chain
}

// String - current mode represented as a string
func (t *Tracker) String() string {
	t.RLock()
	defer t.RUnlock()
	return t.mode.String()
}

// String - mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Resynchronise:
		return "Resynchronise"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}
