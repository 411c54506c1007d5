// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package swap - settlement of token swaps between liquidity pools
//
// settlement is a linear pipeline: resolve both pools, validate the
// amount against the source ledger balance, price the pair, then
// commit both ledger writes as one batch. Every gate is fatal and a
// failed swap leaves the ledger untouched.
package swap

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/balance"
	"github.com/solvernet/solverd/decimal"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/poollist"
	"github.com/solvernet/solverd/storage"
)

// RateSource - where exchange rates come from
//
// injected so tests can fix rates without a live price API
type RateSource interface {
	// Rate - may be served from recently fetched prices
	Rate(fromToken string, toToken string) (decimal.Decimal, error)

	// LiveRate - must reflect current prices
	LiveRate(fromToken string, toToken string) (decimal.Decimal, error)
}

// Quotation - the outcome of pricing a prospective swap
type Quotation struct {
	FromToken    string          `json:"fromToken"`
	ToToken      string          `json:"toToken"`
	FromAmount   decimal.Decimal `json:"fromAmount"`
	ToAmount     decimal.Decimal `json:"toAmount"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	rates       RateSource
	legacy      bool
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the settlement engine
//
// legacySettlement selects the reversed settlement arithmetic kept
// for compatibility with ledgers written by old deployments: the
// source pool is credited and the destination debited
func Initialise(rates RateSource, legacySettlement bool) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("swap")
	globalData.log.Info("starting…")

	if nil == rates {
		return fault.MissingParameters
	}

	globalData.rates = rates
	globalData.legacy = legacySettlement
	if legacySettlement {
		globalData.log.Warn("legacy settlement direction enabled")
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut down the settlement engine
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.rates = nil
	globalData.initialised = false
	return nil
}

// the validated inputs shared by quoting and settlement
type resolved struct {
	sourceAddress      string
	destinationAddress string
	sourceBalance      decimal.Decimal
	amount             decimal.Decimal
}

// resolve both pools and validate the amount against the source balance
//
// gate order: source pool, destination pool, amount syntax, amount
// sign, balance presence, balance sufficiency
func resolve(fromToken string, toToken string, amountText string) (*resolved, error) {
	sourceAddress, ok := poollist.Get(fromToken)
	if !ok {
		return nil, fault.PoolNotFound
	}

	destinationAddress, ok := poollist.Get(toToken)
	if !ok {
		return nil, fault.PoolNotFound
	}

	amount, err := decimal.Parse(amountText)
	if nil != err {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fault.InvalidItem
	}

	sourceBalance, ok := balance.Get(sourceAddress)
	if !ok {
		return nil, fault.SourceBalanceNotFound
	}
	if sourceBalance.Cmp(amount) < 0 {
		return nil, fault.InsufficientBalance
	}

	return &resolved{
		sourceAddress:      sourceAddress,
		destinationAddress: destinationAddress,
		sourceBalance:      sourceBalance,
		amount:             amount,
	}, nil
}

// Quote - price a prospective swap without touching the ledger
func Quote(fromToken string, toToken string, amountText string) (*Quotation, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	r, err := resolve(fromToken, toToken, amountText)
	if nil != err {
		return nil, err
	}

	exchangeRate, err := globalData.rates.Rate(fromToken, toToken)
	if nil != err {
		return nil, err
	}

	return &Quotation{
		FromToken:    fromToken,
		ToToken:      toToken,
		FromAmount:   r.amount,
		ToAmount:     r.amount.Mul(exchangeRate),
		ExchangeRate: exchangeRate,
	}, nil
}

// Execute - settle a swap
//
// the source pool is debited by the amount and the registered
// destination pool credited with amount times the live exchange rate;
// both writes commit in one batch or not at all
//
// the destination address carried on the operation names the payout
// recipient and is only recorded in the log; settlement is strictly
// between the two registered pools
func Execute(fromToken string, toToken string, destinationAddress string, amountText string) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if "" == destinationAddress {
		return fault.InvalidPoolAddress
	}

	r, err := resolve(fromToken, toToken, amountText)
	if nil != err {
		return err
	}

	exchangeRate, err := globalData.rates.LiveRate(fromToken, toToken)
	if nil != err {
		return err
	}
	destinationAmount := r.amount.Mul(exchangeRate)

	// an absent destination pool starts from zero at settlement
	destinationBalance, _ := balance.Get(r.destinationAddress)

	var newSource, newDestination decimal.Decimal
	if globalData.legacy {
		newSource = r.sourceBalance.Add(r.amount)
		newDestination = destinationBalance.Sub(destinationAmount)
	} else {
		newSource = r.sourceBalance.Sub(r.amount)
		newDestination = destinationBalance.Add(destinationAmount)
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return err
	}
	balance.Store(trx, r.sourceAddress, newSource)
	balance.Store(trx, r.destinationAddress, newDestination)
	err = trx.Commit()
	if nil != err {
		return err
	}

	globalData.log.Infof("swap: %s %s→%s rate: %s source: %q = %s destination: %q = %s for: %q",
		r.amount, fromToken, toToken, exchangeRate,
		r.sourceAddress, newSource, r.destinationAddress, newDestination, destinationAddress)
	return nil
}
