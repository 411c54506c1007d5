// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/solvernet/solverd/fault"
)

// Transaction - a batch of writes over any of the pools that commits
// as a single unit
//
// either every staged write is applied or none is
type Transaction interface {
	Put(pool *PoolHandle, key []byte, value []byte)
	Delete(pool *PoolHandle, key []byte)
	Commit() error
	Abort()
}

type transaction struct {
	sync.Mutex
	db    *leveldb.DB
	batch *leveldb.Batch
	inUse bool
}

func newTransaction(db *leveldb.DB) *transaction {
	return &transaction{
		db:    db,
		batch: new(leveldb.Batch),
	}
}

// Begin - reserve the transaction
//
// only one transaction may be open at a time; the dispatcher's
// single writer model makes contention here a caller error
func (t *transaction) Begin() error {
	t.Lock()
	defer t.Unlock()
	if t.inUse {
		return fault.TransactionAlreadyInUse
	}
	t.inUse = true
	t.batch.Reset()
	return nil
}

// Put - stage a key/value write into the batch
func (t *transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	t.batch.Put(pool.prefixKey(key), value)
}

// Delete - stage a key removal into the batch
func (t *transaction) Delete(pool *PoolHandle, key []byte) {
	t.batch.Delete(pool.prefixKey(key))
}

// Commit - atomically apply every staged write
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()
	err := t.db.Write(t.batch, nil)
	t.batch.Reset()
	t.inUse = false
	return err
}

// Abort - discard every staged write
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()
	t.batch.Reset()
	t.inUse = false
}
