// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - the per-address token balance ledger
//
// balances are stored as canonical decimal strings; an address with no
// entry is absent, which is not the same as a zero balance
package balance

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/decimal"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/storage"
)

// Entry - one ledger entry
type Entry struct {
	PoolAddress string          `json:"poolAddress"`
	Amount      decimal.Decimal `json:"amount"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the balance ledger
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("balance")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the balance ledger
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// Set - store the balance of a pool address
//
// the value is validated at this write boundary so the ledger can
// never hold a malformed amount
func Set(poolAddress string, value string) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if "" == poolAddress {
		return fault.InvalidPoolAddress
	}

	amount, err := decimal.Parse(value)
	if nil != err {
		return err
	}

	storage.Pool.Balances.Put([]byte(poolAddress), []byte(amount.String()))
	globalData.log.Infof("balance: %q = %s", poolAddress, amount)
	return nil
}

// Store - stage a balance write into an open transaction
//
// used by settlement to commit both sides of a swap as one batch
func Store(trx storage.Transaction, poolAddress string, amount decimal.Decimal) {
	trx.Put(storage.Pool.Balances, []byte(poolAddress), []byte(amount.String()))
}

// Get - fetch the balance of a pool address
//
// the second result is false when the address has no ledger entry
func Get(poolAddress string) (decimal.Decimal, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return decimal.Zero(), false
	}

	value := storage.Pool.Balances.Get([]byte(poolAddress))
	if nil == value {
		return decimal.Zero(), false
	}

	amount, err := decimal.Parse(string(value))
	logger.PanicIfError("balance: corrupt ledger entry", err)
	return amount, true
}

// List - all ledger entries in key order
func List() ([]Entry, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	entries := []Entry{}
	err := storage.Pool.Balances.NewFetchCursor().Map(func(key []byte, value []byte) error {
		amount, err := decimal.Parse(string(value))
		if nil != err {
			return err
		}
		entries = append(entries, Entry{
			PoolAddress: string(key),
			Amount:      amount,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return entries, nil
}
