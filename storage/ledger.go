// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/cashlink/account"
	"github.com/bitmark-inc/cashlink/core"
	"github.com/bitmark-inc/cashlink/fault"
	"github.com/bitmark-inc/cashlink/merkle"
	"github.com/bitmark-inc/cashlink/transaction"
)

// record sizes
const (
	accountLength = 8 + 4
	headLength    = 8 + merkle.DigestLength + 1
)

var headKey = []byte{}

// Ledger - confirmed account balances and the chain head
type Ledger struct {
	sync.RWMutex
	log *logger.L
	db  *leveldb.DB

	Accounts     *PoolHandle
	Transactions *PoolHandle
	Head         *PoolHandle
}

// Open - open a ledger database, an empty path gives a memory database
func Open(path string) (*Ledger, error) {
	log := logger.New("storage")

	var db *leveldb.DB
	var err error
	if "" == path {
		db, err = leveldb.Open(ldb_storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, &ldb_opt.Options{
			ErrorIfMissing: false,
		})
	}
	if nil != err {
		log.Errorf("open: %q  error: %s", path, err)
		return nil, err
	}
	log.Infof("opened: %q", path)

	return &Ledger{
		log:          log,
		db:           db,
		Accounts:     &PoolHandle{prefix: 'A', database: db},
		Transactions: &PoolHandle{prefix: 'T', database: db},
		Head:         &PoolHandle{prefix: 'H', database: db},
	}, nil
}

// Close - close the database
func (l *Ledger) Close() error {
	l.Lock()
	defer l.Unlock()
	l.log.Info("shutting down…")
	return l.db.Close()
}

// Account - confirmed state of an account
func (l *Ledger) Account(ctx context.Context, address account.Address) (core.Snapshot, bool, error) {
	if err := ctx.Err(); nil != err {
		return core.EmptyAccount, false, err
	}

	l.RLock()
	defer l.RUnlock()
	return l.account(address)
}

// CurrentHead - the stored chain head, zero before anything was written
func (l *Ledger) CurrentHead() (core.Head, error) {
	l.RLock()
	defer l.RUnlock()
	return l.head()
}

// HasTransaction - true if the transaction was confirmed
func (l *Ledger) HasTransaction(id merkle.Digest) (bool, error) {
	l.RLock()
	defer l.RUnlock()
	return l.Transactions.Has(id[:])
}

// Credit - add funds to an account outside of any transaction and move
// the head
func (l *Ledger) Credit(address account.Address, amount uint64) (core.Head, error) {
	l.Lock()
	defer l.Unlock()

	s, _, err := l.account(address)
	if nil != err {
		return core.Head{}, err
	}
	if s.Balance+amount < s.Balance {
		return core.Head{}, fault.ErrValueOverflow
	}
	s.Balance += amount

	head, err := l.head()
	if nil != err {
		return core.Head{}, err
	}
	head = nextHead(head, false, address[:])

	batch := new(leveldb.Batch)
	l.Accounts.batchPut(batch, address[:], packAccount(s))
	l.Head.batchPut(batch, headKey, packHead(head))
	if err := l.db.Write(batch, nil); nil != err {
		return core.Head{}, err
	}

	l.log.Infof("credit: %s  amount: %d  balance: %d", address, amount, s.Balance)
	return head, nil
}

// Apply - confirm transactions in order and move the head
//
// a transaction that does not verify, has the wrong nonce or is not
// covered by the sender's balance is skipped; the applied transactions
// are returned
func (l *Ledger) Apply(txs []*transaction.Transaction) ([]*transaction.Transaction, core.Head, error) {
	l.Lock()
	defer l.Unlock()

	head, err := l.head()
	if nil != err {
		return nil, core.Head{}, err
	}

	accounts := make(map[account.Address]core.Snapshot)
	get := func(address account.Address) (core.Snapshot, error) {
		if s, ok := accounts[address]; ok {
			return s, nil
		}
		s, _, err := l.account(address)
		return s, err
	}

	applied := make([]*transaction.Transaction, 0, len(txs))
	seed := []byte{}

	for _, tx := range txs {
		if err := tx.Verify(); nil != err {
			l.log.Warnf("apply: tx: %s  error: %s", tx.Id(), err)
			continue
		}
		sender, err := get(tx.Sender)
		if nil != err {
			return nil, core.Head{}, err
		}
		if err := payable(tx, sender); nil != err {
			l.log.Warnf("apply: tx: %s  nonce: %d  total: %d  error: %s", tx.Id(), tx.Nonce, tx.Total(), err)
			continue
		}
		sender.Balance -= tx.Total()
		sender.Nonce += 1
		accounts[tx.Sender] = sender

		recipient, err := get(tx.Recipient)
		if nil != err {
			return nil, core.Head{}, err
		}
		recipient.Balance += tx.Value
		accounts[tx.Recipient] = recipient

		applied = append(applied, tx)
		id := tx.Id()
		seed = append(seed, id[:]...)
	}

	head = nextHead(head, false, seed)

	batch := new(leveldb.Batch)
	for address, s := range accounts {
		l.Accounts.batchPut(batch, address[:], packAccount(s))
	}
	height := make([]byte, 8)
	binary.BigEndian.PutUint64(height, head.Height)
	for _, tx := range applied {
		id := tx.Id()
		l.Transactions.batchPut(batch, id[:], height)
	}
	l.Head.batchPut(batch, headKey, packHead(head))

	if err := l.db.Write(batch, nil); nil != err {
		return nil, core.Head{}, err
	}

	l.log.Infof("apply: height: %d  transactions: %d of %d", head.Height, len(applied), len(txs))
	return applied, head, nil
}

// the sender must be at the transaction's nonce and cover its total
func payable(tx *transaction.Transaction, sender core.Snapshot) error {
	if sender.Nonce != tx.Nonce {
		return fault.ErrInvalidNonce
	}
	if sender.Balance < tx.Total() {
		return fault.ErrInsufficientFunds
	}
	return nil
}

// Branch - record a head that is on a competing branch
func (l *Ledger) Branch() (core.Head, error) {
	l.Lock()
	defer l.Unlock()

	head, err := l.head()
	if nil != err {
		return core.Head{}, err
	}
	head = nextHead(head, true, []byte("branch"))

	batch := new(leveldb.Batch)
	l.Head.batchPut(batch, headKey, packHead(head))
	if err := l.db.Write(batch, nil); nil != err {
		return core.Head{}, err
	}
	return head, nil
}

// must hold lock
func (l *Ledger) account(address account.Address) (core.Snapshot, bool, error) {
	buffer, err := l.Accounts.Get(address[:])
	if nil != err {
		return core.EmptyAccount, false, err
	}
	if nil == buffer {
		return core.EmptyAccount, false, nil
	}
	if accountLength != len(buffer) {
		l.log.Criticalf("account: %s  truncated record: %x", address, buffer)
		return core.EmptyAccount, false, fault.ErrMalformedValue
	}
	return core.Snapshot{
		Balance: binary.BigEndian.Uint64(buffer[:8]),
		Nonce:   binary.BigEndian.Uint32(buffer[8:]),
	}, true, nil
}

// must hold lock
func (l *Ledger) head() (core.Head, error) {
	buffer, err := l.Head.Get(headKey)
	if nil != err || nil == buffer {
		return core.Head{}, err
	}
	if headLength != len(buffer) {
		l.log.Criticalf("head: truncated record: %x", buffer)
		return core.Head{}, fault.ErrMalformedValue
	}
	h := core.Head{
		Height:    binary.BigEndian.Uint64(buffer[:8]),
		Branching: 0 != buffer[8+merkle.DigestLength],
	}
	copy(h.Hash[:], buffer[8:8+merkle.DigestLength])
	return h, nil
}

func nextHead(previous core.Head, branching bool, seed []byte) core.Head {
	height := previous.Height + 1
	data := make([]byte, 0, merkle.DigestLength+8+len(seed))
	data = append(data, previous.Hash[:]...)
	data = binary.BigEndian.AppendUint64(data, height)
	data = append(data, seed...)
	return core.Head{
		Hash:      merkle.NewDigest(data),
		Height:    height,
		Branching: branching,
	}
}

func packAccount(s core.Snapshot) []byte {
	buffer := make([]byte, 0, accountLength)
	buffer = binary.BigEndian.AppendUint64(buffer, s.Balance)
	return binary.BigEndian.AppendUint32(buffer, s.Nonce)
}

func packHead(h core.Head) []byte {
	buffer := make([]byte, 0, headLength)
	buffer = binary.BigEndian.AppendUint64(buffer, h.Height)
	buffer = append(buffer, h.Hash[:]...)
	if h.Branching {
		return append(buffer, 1)
	}
	return append(buffer, 0)
}
