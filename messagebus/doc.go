// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - event delivery
//
// Bus carries the typed amount-changed events a link publishes to its
// owner.  Feed is a broadcast queue used by collaborators to fan out
// notifications to any number of subscribers without blocking the
// sender.
package messagebus
