// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus counters for the balance and submission
// paths
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cashlink"

// lookup results
const (
	LookupHit     = "hit"
	LookupJoined  = "joined"
	LookupStarted = "started"
	LookupStale   = "stale"
	LookupForward = "forwarded"
)

// submission results
const (
	SubmitAccepted = "accepted"
	SubmitRejected = "rejected"
)

var (
	// Lookups - account requests served by the cache, by result
	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "account requests by outcome",
	}, []string{"result"})

	// Invalidations - number of times the cache was dropped
	Invalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "invalidations_total",
		Help:      "cache invalidations",
	})

	// Retries - failed attempts that were retried, by operation
	Retries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "retry",
		Name:      "failures_total",
		Help:      "failed attempts by operation",
	}, []string{"operation"})

	// ConsensusTimeouts - consensus waits that gave up
	ConsensusTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consensus",
		Name:      "timeouts_total",
		Help:      "consensus waits that timed out",
	})

	// Submissions - transactions handed to the network, by kind and result
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "link",
		Name:      "submissions_total",
		Help:      "submitted transactions by kind and result",
	}, []string{"kind", "result"})

	// Events - link events published, by kind
	Events = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "link",
		Name:      "events_total",
		Help:      "published link events by kind",
	}, []string{"kind"})
)
