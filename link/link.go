// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package link

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/background"
	"github.com/bitmark-inc/cashlink/cache"
	"github.com/bitmark-inc/cashlink/consensus"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/fee"
	"github.com/bitmark-inc/cashlink/keypair"
	"github.com/bitmark-inc/cashlink/messagebus"
	"github.com/bitmark-inc/cashlink/retry"
)

// State - lifecycle of a link
type State int

// link states
const (
	Created State = iota
	Funded
	PartiallyClaimed
	Emptied
)

// String - name of the state
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Funded:
		return "funded"
	case PartiallyClaimed:
		return "partially-claimed"
	case Emptied:
		return "emptied"
	default:
		return "unknown"
	}
}

// Link - a transfer link
type Link struct {
	lock sync.Mutex

	log  *logger.L
	cfg  Config
	fees fee.Policy
	keys *keypair.KeyPair

	value     uint64
	message   string
	immutable bool
	state     State

	lastConfirmed  uint64
	confirmedKnown bool

	accounts *cache.AccountRequests
	gate     *consensus.Gate
	retry    *retry.Executor
	bus      messagebus.Bus

	background *background.T
	ctx        context.Context
	cancel     context.CancelFunc
	closeOnce  sync.Once
}

// Create - a new link with fresh keys, no value and no message
func Create(cfg Config) (*Link, error) {
	keys, err := keypair.New()
	if nil != err {
		return nil, err
	}
	return New(cfg, keys, 0, "")
}

// New - a link over existing keys
//
// supplying a value or a message makes both immutable
func New(cfg Config, keys *keypair.KeyPair, value uint64, message string) (*Link, error) {
	if nil == keys {
		return nil, fault.ErrMissingCollaborator
	}
	if err := cfg.validate(); nil != err {
		return nil, err
	}
	if err := validateMessage(message); nil != err {
		return nil, err
	}

	log := logger.New("link")
	ctx, cancel := context.WithCancel(context.Background())

	l := &Link{
		log:       log,
		cfg:       cfg,
		fees:      cfg.fees(),
		keys:      keys,
		value:     value,
		message:   message,
		immutable: 0 != value || "" != message,
		state:     Created,
		gate:      consensus.NewGate(logger.New("consensus"), cfg.Consensus, cfg.ConsensusTimeout, cfg.Clock),
		retry:     retry.New(logger.New("retry"), cfg.RetryDelay, cfg.Clock),
		ctx:       ctx,
		cancel:    cancel,
	}

	accounts, err := cache.New(cache.Config{
		Log:        logger.New("cache"),
		Source:     cfg.source(),
		Blockchain: cfg.Blockchain,
		Gate:       l.gate,
		Retry:      l.retry,
		Expiry:     cfg.CacheExpiry,
		Owner:      keys.Address(),
		Observer:   l.observe,
	})
	if nil != err {
		cancel()
		return nil, err
	}
	l.accounts = accounts

	l.background = background.Start(background.Processes{newWatcher(l)}, nil)

	log.Infof("link: %s  value: %d  nano: %t", keys.Address(), value, cfg.Nano())
	return l, nil
}

// Parse - reconstruct a link from a rendered token
//
// returns nil for a malformed token
func Parse(cfg Config, token string) *Link {
	p, err := unpack(token)
	if nil != err {
		return nil
	}
	keys, err := keypair.FromSeed(p.seed)
	if nil != err {
		return nil
	}
	l, err := New(cfg, keys, p.value, p.message)
	if nil != err {
		return nil
	}
	return l
}

// Render - the token form of the link
func (l *Link) Render() string {
	l.lock.Lock()
	defer l.lock.Unlock()

	return payload{
		seed:    l.keys.Seed(),
		value:   l.value,
		message: l.message,
	}.pack()
}

// Address - ledger address of the link's account
func (l *Link) Address() account.Address {
	return l.keys.Address()
}

// PublicKey - public key of the link's account
func (l *Link) PublicKey() []byte {
	return l.keys.PublicKey()
}

// Keys - the link's key pair
func (l *Link) Keys() *keypair.KeyPair {
	return l.keys
}

// Value - amount the link is meant to carry
func (l *Link) Value() uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.value
}

// SetValue - change the value of a mutable link
func (l *Link) SetValue(value uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.immutable {
		return fault.ErrImmutableLink
	}
	if 0 == value {
		return fault.ErrMalformedValue
	}
	l.value = value
	return nil
}

// Message - text carried by the link
func (l *Link) Message() string {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.message
}

// SetMessage - change the message of a mutable link
func (l *Link) SetMessage(message string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.immutable {
		return fault.ErrImmutableLink
	}
	if err := validateMessage(message); nil != err {
		return err
	}
	l.message = message
	return nil
}

// Immutable - true once value and message can no longer change
func (l *Link) Immutable() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.immutable
}

// State - current lifecycle state
func (l *Link) State() State {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.state
}

// SuggestedFee - fee for moving total out of an account with the fee
// taken from total
func (l *Link) SuggestedFee(total uint64) uint64 {
	return l.fees.Calculate(total, true)
}

// On - register an event handler
func (l *Link) On(kind messagebus.Kind, handler messagebus.Handler) messagebus.ListenerID {
	return l.bus.On(kind, handler)
}

// Off - remove an event handler
func (l *Link) Off(id messagebus.ListenerID) bool {
	return l.bus.Off(id)
}

// Close - stop watching the network and abandon any pending retries
func (l *Link) Close() {
	l.closeOnce.Do(func() {
		l.log.Infof("link: %s  shutting down…", l.keys.Address())
		l.cancel()
		l.accounts.Close()
		l.background.Stop()
	})
}

// observer hook for confirmed snapshots of the link's own account
func (l *Link) observe(s core.Snapshot) {
	l.lock.Lock()
	defer l.lock.Unlock()

	next := l.state
	switch {
	case s.Balance > 0 && 0 == s.Nonce:
		next = Funded
	case s.Balance > 0:
		next = PartiallyClaimed
	case 0 != s.Nonce:
		next = Emptied
	}
	if next != l.state {
		l.log.Debugf("link: %s  state: %s -> %s", l.keys.Address(), l.state, next)
		l.state = next
		if Created != next {
			l.immutable = true
		}
	}
}
