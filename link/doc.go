// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package link - transfer links
//
// a link is a throw-away key pair used as an escrow account: its
// creator funds it and renders it into a token, whoever holds the token
// can claim the balance
//
//  Created ---> Funded ---> PartiallyClaimed ---> Emptied
//     |                                              ^
//     |______________________________________________|
//
// state moves forward on a successful Fund and on every confirmed
// observation of the link's account
package link
