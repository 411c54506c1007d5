// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package poollist - the registry of liquidity pool addresses by
// token chain name
package poollist

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/storage"
)

// Entry - one registered pool
type Entry struct {
	ChainName   string `json:"chainName"`
	PoolAddress string `json:"poolAddress"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the pool registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("poollist")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the pool registry
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

// Add - register a pool address for a token name
//
// an existing registration for the same name is silently overwritten
func Add(chainName string, poolAddress string) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if "" == chainName || "" == poolAddress {
		return fault.MissingParameters
	}

	storage.Pool.Pools.Put([]byte(chainName), []byte(poolAddress))
	globalData.log.Infof("pool: %q → %q", chainName, poolAddress)
	return nil
}

// Remove - delete a pool registration
//
// removing an unregistered name is an error, not a no-op
func Remove(chainName string) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if "" == chainName {
		return fault.MissingParameters
	}

	if !storage.Pool.Pools.Has([]byte(chainName)) {
		return fault.PoolNotFound
	}

	storage.Pool.Pools.Delete([]byte(chainName))
	globalData.log.Infof("pool removed: %q", chainName)
	return nil
}

// Get - look up the pool address for a token name
func Get(chainName string) (string, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return "", false
	}

	address := storage.Pool.Pools.Get([]byte(chainName))
	if nil == address {
		return "", false
	}
	return string(address), true
}

// List - all registered pools in key order
func List() ([]Entry, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	entries := []Entry{}
	err := storage.Pool.Pools.NewFetchCursor().Map(func(key []byte, value []byte) error {
		entries = append(entries, Entry{
			ChainName:   string(key),
			PoolAddress: string(value),
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return entries, nil
}
