// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache - coalesced and cached account lookups
//
//  ***** Data Structure *****
//
//  AccountRequests
//  |___ pending     account.Address   *request (in flight)     until completed
//  |___ completed   address hex       core.Snapshot            until the head moves
//  |___ generation  uint64            bumped on every invalidation
//  |___ head        merkle.Digest     chain head the completed entries belong to
//
//  ***** Purpose *****
//
//  pending:
//    at most one lookup per address is in flight, later callers join it
//
//  completed:
//    results of lookups that finished without an intervening
//    invalidation
//
//  generation:
//    a lookup that started before an invalidation is stale; when it
//    finishes while a newer lookup for the same address is in flight
//    its callers are given the newer result instead, otherwise they get
//    the stale result but it is not stored
package cache
