// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/merkle"
	"github.com/bitmark-inc/cashlink/metrics"
	"github.com/bitmark-inc/cashlink/retry"
)

// DefaultExpiry - upper bound on the life of a completed entry
const DefaultExpiry = 10 * time.Minute

// Gate - blocks until the account source can be trusted
type Gate interface {
	Await(ctx context.Context) error
}

// Observer - receives accepted snapshots of the owner's account
type Observer func(core.Snapshot)

// Config - collaborators for AccountRequests
type Config struct {
	Log        *logger.L
	Source     core.AccountSource
	Blockchain core.Blockchain // optional, enables head tracking
	Gate       Gate
	Retry      *retry.Executor
	Expiry     time.Duration
	Owner      account.Address
	Observer   Observer // optional
}

// AccountRequests - the account request cache
type AccountRequests struct {
	lock sync.Mutex

	log        *logger.L
	source     core.AccountSource
	blockchain core.Blockchain
	gate       Gate
	retry      *retry.Executor
	owner      account.Address
	observer   Observer

	generation uint64
	head       merkle.Digest
	headKnown  bool
	pending    map[account.Address]*request
	completed  *gocache.Cache

	current      core.Snapshot
	currentKnown bool

	ctx    context.Context
	cancel context.CancelFunc
}

// a single lookup shared by every caller that joined it
type request struct {
	generation uint64
	address    account.Address

	lock    sync.Mutex
	attempt *attempt // the attempt in progress or the next one

	done     chan struct{}
	snapshot core.Snapshot
	err      error
}

// failure notice of one attempt of a lookup
type attempt struct {
	failed chan struct{}
	err    error
}

// New - create an empty cache
func New(cfg Config) (*AccountRequests, error) {
	if nil == cfg.Log || nil == cfg.Source || nil == cfg.Gate || nil == cfg.Retry {
		return nil, fault.ErrMissingCollaborator
	}
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &AccountRequests{
		log:        cfg.Log,
		source:     cfg.Source,
		blockchain: cfg.Blockchain,
		gate:       cfg.Gate,
		retry:      cfg.Retry,
		owner:      cfg.Owner,
		observer:   cfg.Observer,
		pending:    make(map[account.Address]*request),
		completed:  gocache.New(expiry, 2*expiry),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Get - confirmed snapshot of an account
//
// lookups are retried until they succeed, so the only errors are from
// ctx or from closing the cache
func (c *AccountRequests) Get(ctx context.Context, address account.Address) (core.Snapshot, error) {
	r, _, snapshot, err := c.request(address)
	if nil != err || nil == r {
		return snapshot, err
	}

	select {
	case <-r.done:
		return r.snapshot, r.err
	case <-ctx.Done():
		return core.EmptyAccount, ctx.Err()
	}
}

// GetOnce - like Get, but the first attempt of the underlying lookup
// to fail after this caller joined it is returned as an error
//
// failures from before joining are never reported, so a caller joining
// a lookup that is waiting to retry sees the outcome of the next
// attempt. The lookup itself keeps retrying for the benefit of other
// callers
func (c *AccountRequests) GetOnce(ctx context.Context, address account.Address) (core.Snapshot, error) {
	r, a, snapshot, err := c.request(address)
	if nil != err || nil == r {
		return snapshot, err
	}

	select {
	case <-r.done:
		return r.snapshot, r.err
	case <-a.failed:
		select {
		case <-r.done:
			return r.snapshot, r.err
		default:
		}
		return core.EmptyAccount, a.err
	case <-ctx.Done():
		return core.EmptyAccount, ctx.Err()
	}
}

// Invalidate - forget all completed and in-flight lookups
func (c *AccountRequests) Invalidate() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.invalidate()
}

// Generation - number of invalidations so far
func (c *AccountRequests) Generation() uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.generation
}

// Current - last accepted snapshot of the owner's account
func (c *AccountRequests) Current() (core.Snapshot, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.current, c.currentKnown
}

// Close - cancel in-flight lookups, later calls fail
func (c *AccountRequests) Close() {
	c.cancel()
}

// must hold lock
func (c *AccountRequests) invalidate() {
	c.generation += 1
	c.pending = make(map[account.Address]*request)
	c.completed.Flush()
	metrics.Invalidations.Inc()
	c.log.Debugf("invalidated: generation: %d", c.generation)
}

// must hold lock
func (c *AccountRequests) checkHead() {
	if nil == c.blockchain {
		return
	}
	head := c.blockchain.Head().Hash
	if c.headKnown && head == c.head {
		return
	}
	if c.headKnown {
		c.log.Debugf("head moved: %s -> %s", c.head, head)
		c.invalidate()
	}
	c.head = head
	c.headKnown = true
}

// returns either a completed snapshot (nil request) or the request to
// wait for together with its attempt at the moment of joining
func (c *AccountRequests) request(address account.Address) (*request, *attempt, core.Snapshot, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if nil != c.ctx.Err() {
		return nil, nil, core.EmptyAccount, fault.ErrLinkClosed
	}

	c.checkHead()

	if x, ok := c.completed.Get(address.String()); ok {
		metrics.Lookups.WithLabelValues(metrics.LookupHit).Inc()
		return nil, nil, x.(core.Snapshot), nil
	}

	if r, ok := c.pending[address]; ok {
		metrics.Lookups.WithLabelValues(metrics.LookupJoined).Inc()
		return r, r.current(), core.EmptyAccount, nil
	}

	r := &request{
		generation: c.generation,
		address:    address,
		attempt:    &attempt{failed: make(chan struct{})},
		done:       make(chan struct{}),
	}
	c.pending[address] = r
	metrics.Lookups.WithLabelValues(metrics.LookupStarted).Inc()

	a := r.attempt
	go c.lookup(r)

	return r, a, core.EmptyAccount, nil
}

// run the lookup under the retry executor
func (c *AccountRequests) lookup(r *request) {
	var snapshot core.Snapshot

	err := c.retry.UntilSuccess(c.ctx, "account lookup", func(ctx context.Context) error {
		if err := c.gate.Await(ctx); nil != err {
			r.fail(err)
			return err
		}

		s, found, err := c.source.Account(ctx, r.address)
		if nil != err {
			r.fail(err)
			return err
		}
		if !found {
			s = core.EmptyAccount
		}
		snapshot = s
		return nil
	})
	if nil != err {
		c.log.Debugf("lookup: %s  abandoned: %s", r.address, err)
		err = fault.ErrLinkClosed
		r.fail(err)
	}

	c.complete(r, snapshot, err)
}

// settle a finished lookup, forwarding to a newer one if it is stale
func (c *AccountRequests) complete(r *request, snapshot core.Snapshot, err error) {
	c.lock.Lock()

	if c.generation != r.generation {
		if newest, ok := c.pending[r.address]; ok && newest != r && newest.generation > r.generation {
			c.lock.Unlock()

			metrics.Lookups.WithLabelValues(metrics.LookupForward).Inc()
			c.log.Debugf("lookup: %s  generation: %d  forwarded to: %d", r.address, r.generation, newest.generation)

			<-newest.done
			r.resolve(newest.snapshot, newest.err)
			return
		}
	}

	if c.pending[r.address] == r {
		delete(c.pending, r.address)
	}

	notify := false
	if nil == err {
		if c.generation == r.generation {
			c.completed.Set(r.address.String(), snapshot, gocache.DefaultExpiration)
		} else {
			metrics.Lookups.WithLabelValues(metrics.LookupStale).Inc()
		}
		if r.address == c.owner {
			c.current = snapshot
			c.currentKnown = true
			notify = nil != c.observer
		}
	}
	c.lock.Unlock()

	if notify {
		c.observer(snapshot)
	}
	r.resolve(snapshot, err)
}

func (r *request) current() *attempt {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.attempt
}

// report the failure of the attempt in progress and arm the next one
func (r *request) fail(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	a := r.attempt
	r.attempt = &attempt{failed: make(chan struct{})}
	a.err = err
	close(a.failed)
}

func (r *request) resolve(snapshot core.Snapshot, err error) {
	r.snapshot = snapshot
	r.err = err
	close(r.done)
}
