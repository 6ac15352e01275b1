// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the on-disk account ledger
//
// maintain separate pools of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. height       = big endian uint64 (8 bytes)
// 4. txId         = transaction digest as 32 byte SHA3-256(packed transaction)
// 5. address      = 20 byte account address
// 6. balance      = big endian uint64 (8 bytes)
// 7. nonce        = big endian uint32 (4 bytes)
//
// Accounts:
//
//   A ++ address               - confirmed account state
//                                data: balance ++ nonce
//
// Transactions:
//
//   T ++ txId                  - confirmed transactions
//                                data: height
//
// Head:
//
//   H                          - current chain head
//                                data: height ++ digest ++ branching(1 byte)
package storage
