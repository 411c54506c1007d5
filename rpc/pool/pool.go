// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pool

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/balance"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/poollist"
	"github.com/solvernet/solverd/rpc/ratelimit"
	"github.com/solvernet/solverd/solverecord"
)

// Pool
// ----

// Pool - type for the RPC
type Pool struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitPool = 200
	rateBurstPool = 100
)

// New - create the Pool RPC instance
func New(log *logger.L) *Pool {
	return &Pool{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitPool, rateBurstPool),
	}
}

// Pool get
// --------

// GetArguments - arguments for RPC
type GetArguments struct {
	ChainName string `json:"chainName"`
}

// GetReply - result of pool get RPC
type GetReply struct {
	ChainName   string `json:"chainName"`
	PoolAddress string `json:"poolAddress"`
}

// Get - look up one pool registration
func (pool *Pool) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	log := pool.Log
	log.Infof("Pool.Get: %+v", arguments)

	address, ok := poollist.Get(arguments.ChainName)
	if !ok {
		return fault.PoolNotFound
	}

	reply.ChainName = arguments.ChainName
	reply.PoolAddress = address
	return nil
}

// Pool list
// ---------

// ListArguments - arguments for RPC
type ListArguments struct {
}

// ListReply - all registered pools
type ListReply struct {
	Pools []poollist.Entry `json:"pools"`
}

// List - all pool registrations
func (pool *Pool) List(arguments *ListArguments, reply *ListReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	log := pool.Log
	log.Info("Pool.List")

	entries, err := poollist.List()
	if nil != err {
		return err
	}

	reply.Pools = entries
	return nil
}

// Pool balance
// ------------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	PoolAddress string `json:"poolAddress"`
}

// BalanceReply - result of balance RPC
type BalanceReply struct {
	PoolAddress string `json:"poolAddress"`
	Balance     string `json:"balance"`
}

// Balance - the ledger balance of one pool address
//
// an address without a ledger entry is an error, not zero
func (pool *Pool) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	log := pool.Log
	log.Infof("Pool.Balance: %+v", arguments)

	amount, ok := balance.Get(arguments.PoolAddress)
	if !ok {
		return fault.BalanceNotFound
	}

	reply.PoolAddress = arguments.PoolAddress
	reply.Balance = amount.String()
	return nil
}

// Pool balances
// -------------

// BalancesArguments - arguments for RPC
type BalancesArguments struct {
}

// BalancesReply - the whole ledger
type BalancesReply struct {
	Balances []balance.Entry `json:"balances"`
}

// Balances - all ledger entries
func (pool *Pool) Balances(arguments *BalancesArguments, reply *BalancesReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	log := pool.Log
	log.Info("Pool.Balances")

	entries, err := balance.List()
	if nil != err {
		return err
	}

	reply.Balances = entries
	return nil
}

// Pool prepare
// ------------

// PrepareReply - the packed operation payload for submission
type PrepareReply struct {
	Payload []byte `json:"payload"` // base64
}

// PrepareAddArguments - arguments for RPC
type PrepareAddArguments struct {
	ChainName   string `json:"chainName"`
	PoolAddress string `json:"poolAddress"`
}

// PrepareAdd - pack an add pool operation for external submission
func (pool *Pool) PrepareAdd(arguments *PrepareAddArguments, reply *PrepareReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	pool.Log.Infof("Pool.PrepareAdd: %+v", arguments)

	operation := &solverecord.AddPool{
		ChainName:   arguments.ChainName,
		PoolAddress: arguments.PoolAddress,
	}
	packed, err := operation.Pack()
	if nil != err {
		return err
	}

	reply.Payload = packed
	return nil
}

// PrepareRemoveArguments - arguments for RPC
type PrepareRemoveArguments struct {
	ChainName string `json:"chainName"`
}

// PrepareRemove - pack a remove pool operation for external submission
func (pool *Pool) PrepareRemove(arguments *PrepareRemoveArguments, reply *PrepareReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	pool.Log.Infof("Pool.PrepareRemove: %+v", arguments)

	operation := &solverecord.RemovePool{
		ChainName: arguments.ChainName,
	}
	packed, err := operation.Pack()
	if nil != err {
		return err
	}

	reply.Payload = packed
	return nil
}

// PrepareBalanceArguments - arguments for RPC
type PrepareBalanceArguments struct {
	PoolAddress string `json:"poolAddress"`
	Balance     string `json:"balance"`
}

// PrepareBalance - pack an update balance operation for external
// submission
func (pool *Pool) PrepareBalance(arguments *PrepareBalanceArguments, reply *PrepareReply) error {

	if err := ratelimit.Limit(pool.Limiter); nil != err {
		return err
	}

	pool.Log.Infof("Pool.PrepareBalance: %+v", arguments)

	operation := &solverecord.UpdatePoolBalance{
		PoolAddress: arguments.PoolAddress,
		Balance:     arguments.Balance,
	}
	packed, err := operation.Pack()
	if nil != err {
		return err
	}

	reply.Payload = packed
	return nil
}
