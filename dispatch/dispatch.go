// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - the single entry point for mutating operations
//
// operations arrive as opaque packed payloads and run strictly one at
// a time; reads elsewhere are never blocked by the writer
package dispatch

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/balance"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/mode"
	"github.com/solvernet/solverd/poollist"
	"github.com/solvernet/solverd/registry"
	"github.com/solvernet/solverd/solverecord"
	"github.com/solvernet/solverd/swap"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	writer      sync.Mutex
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the dispatcher
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("dispatch")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the dispatcher
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

// Execute - decode and run one packed operation
//
// either the operation completes in full or the store is unchanged;
// there is no retry here, resubmission is the caller's concern
func Execute(caller solverecord.Caller, packed solverecord.Packed) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if !mode.Is(mode.Normal) {
		return fault.NotAvailableDuringSynchronise
	}

	operation, err := solverecord.UnpackOperation(packed)
	if nil != err {
		return err
	}

	// mutations are strictly serialized
	globalData.writer.Lock()
	defer globalData.writer.Unlock()

	switch op := operation.(type) {

	case *solverecord.AddFile:
		if err := op.Owner.Authenticate(caller); nil != err {
			return err
		}
		_, err := registry.Add(op.Owner, op.Name, op.ContentRef)
		return err

	case *solverecord.AddPool:
		return poollist.Add(op.ChainName, op.PoolAddress)

	case *solverecord.RemovePool:
		return poollist.Remove(op.ChainName)

	case *solverecord.UpdatePoolBalance:
		return balance.Set(op.PoolAddress, op.Balance)

	case *solverecord.Swap:
		return swap.Execute(op.FromToken, op.ToToken, op.DestinationAddress, op.Amount)

	default:
		return fault.NotOperationRecord
	}
}
