// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package swap_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solvernet/solverd/balance"
	"github.com/solvernet/solverd/decimal"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/poollist"
	"github.com/solvernet/solverd/rpc/fixtures"
	"github.com/solvernet/solverd/storage"
	"github.com/solvernet/solverd/swap"
)

const databaseFileName = "test.leveldb"

// fixed price table standing in for the live oracle
type fixedRates struct {
	prices map[string]string
	err    error
}

func (f fixedRates) rate(fromToken string, toToken string) (decimal.Decimal, error) {
	if nil != f.err {
		return decimal.Decimal{}, f.err
	}
	fromText, ok := f.prices[fromToken]
	if !ok {
		return decimal.Decimal{}, fault.PriceNotFound
	}
	toText, ok := f.prices[toToken]
	if !ok {
		return decimal.Decimal{}, fault.PriceNotFound
	}
	fromPrice, err := decimal.Parse(fromText)
	if nil != err {
		return decimal.Decimal{}, err
	}
	toPrice, err := decimal.Parse(toText)
	if nil != err {
		return decimal.Decimal{}, err
	}
	return fromPrice.Div(toPrice)
}

func (f fixedRates) Rate(fromToken string, toToken string) (decimal.Decimal, error) {
	return f.rate(fromToken, toToken)
}

func (f fixedRates) LiveRate(fromToken string, toToken string) (decimal.Decimal, error) {
	return f.rate(fromToken, toToken)
}

var usdPrices = fixedRates{
	prices: map[string]string{
		"ETH": "2000",
		"SOL": "14.21",
	},
}

func setup(t *testing.T, rates swap.RateSource, legacySettlement bool) {
	os.RemoveAll(databaseFileName)
	fixtures.SetupTestLogger()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	err = poollist.Initialise()
	if nil != err {
		t.Fatalf("poollist initialise error: %s", err)
	}
	err = balance.Initialise()
	if nil != err {
		t.Fatalf("balance initialise error: %s", err)
	}
	err = swap.Initialise(rates, legacySettlement)
	if nil != err {
		t.Fatalf("swap initialise error: %s", err)
	}
}

func teardown(t *testing.T) {
	swap.Finalise()
	balance.Finalise()
	poollist.Finalise()
	storage.Finalise()
	fixtures.TeardownTestLogger()
	os.RemoveAll(databaseFileName)
}

// source funded with 100, destination registered with no ledger entry
func fundSource(t *testing.T) {
	if err := poollist.Add("ETH", "0xA"); nil != err {
		t.Fatalf("add pool error: %s", err)
	}
	if err := poollist.Add("SOL", "0xB"); nil != err {
		t.Fatalf("add pool error: %s", err)
	}
	if err := balance.Set("0xA", "100"); nil != err {
		t.Fatalf("set balance error: %s", err)
	}
}

func TestExecute(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	fundSource(t)

	err := swap.Execute("ETH", "SOL", "0xB", "10")
	assert.NoError(t, err, "execute")

	// source debited
	source, ok := balance.Get("0xA")
	assert.True(t, ok, "source present")
	assert.Equal(t, "90", source.String(), "source balance")

	// destination started from zero and was credited
	destination, ok := balance.Get("0xB")
	assert.True(t, ok, "destination present")
	assert.Equal(t, "1407.45953554", destination.String(), "destination balance")
}

// the reversed arithmetic kept for old ledgers
func TestExecuteLegacyDirection(t *testing.T) {
	setup(t, usdPrices, true)
	defer teardown(t)

	fundSource(t)

	err := swap.Execute("ETH", "SOL", "0xB", "10")
	assert.NoError(t, err, "execute")

	source, ok := balance.Get("0xA")
	assert.True(t, ok, "source present")
	assert.Equal(t, "110", source.String(), "source balance")

	destination, ok := balance.Get("0xB")
	assert.True(t, ok, "destination present")
	assert.Equal(t, "-1407.45953554", destination.String(), "destination balance")
}

// the whole balance may be swapped
func TestExecuteExactBalance(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	fundSource(t)

	err := swap.Execute("ETH", "SOL", "0xB", "100")
	assert.NoError(t, err, "execute")

	source, ok := balance.Get("0xA")
	assert.True(t, ok, "source present")
	assert.True(t, source.IsZero(), "source drained")
}

func TestExecuteGates(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	fundSource(t)

	// a registered pool whose token the price table does not know
	if err := poollist.Add("DOGE", "0xD"); nil != err {
		t.Fatalf("add pool error: %s", err)
	}

	testCases := []struct {
		description string
		fromToken   string
		toToken     string
		destination string
		amount      string
		expected    error
	}{
		{"unknown source pool", "BTC", "SOL", "0xB", "10", fault.PoolNotFound},
		{"unknown destination pool", "ETH", "XRP", "0xB", "10", fault.PoolNotFound},
		{"malformed amount", "ETH", "SOL", "0xB", "ten", fault.InvalidDecimal},
		{"zero amount", "ETH", "SOL", "0xB", "0", fault.InvalidItem},
		{"negative amount", "ETH", "SOL", "0xB", "-10", fault.InvalidItem},
		{"over balance", "ETH", "SOL", "0xB", "100.00000001", fault.InsufficientBalance},
		{"empty destination", "ETH", "SOL", "", "10", fault.InvalidPoolAddress},
		{"unknown price", "ETH", "DOGE", "0xB", "10", fault.PriceNotFound},
	}

	for _, testCase := range testCases {
		err := swap.Execute(testCase.fromToken, testCase.toToken, testCase.destination, testCase.amount)
		assert.Equal(t, testCase.expected, err, testCase.description)

		// every failed gate leaves the ledger untouched
		source, ok := balance.Get("0xA")
		assert.True(t, ok, "source present")
		assert.Equal(t, "100", source.String(), "source unchanged after %s", testCase.description)
		_, ok = balance.Get("0xB")
		assert.False(t, ok, "destination still absent after %s", testCase.description)
	}
}

// a funded pool whose ledger entry is missing cannot swap
func TestExecuteMissingSourceBalance(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	if err := poollist.Add("ETH", "0xA"); nil != err {
		t.Fatalf("add pool error: %s", err)
	}
	if err := poollist.Add("SOL", "0xB"); nil != err {
		t.Fatalf("add pool error: %s", err)
	}

	err := swap.Execute("ETH", "SOL", "0xB", "10")
	assert.Equal(t, fault.SourceBalanceNotFound, err, "missing source balance")
}

// settlement credits the registered destination pool, not the carried
// destination address
func TestExecuteDestinationPool(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	fundSource(t)

	err := swap.Execute("ETH", "SOL", "0xRECIPIENT", "10")
	assert.NoError(t, err, "execute")

	destination, ok := balance.Get("0xB")
	assert.True(t, ok, "destination pool present")
	assert.Equal(t, "1407.45953554", destination.String(), "destination balance")

	_, ok = balance.Get("0xRECIPIENT")
	assert.False(t, ok, "no ledger entry for the carried address")
}

func TestQuote(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	fundSource(t)

	quotation, err := swap.Quote("ETH", "SOL", "10")
	assert.NoError(t, err, "quote")
	assert.Equal(t, "ETH", quotation.FromToken, "from token")
	assert.Equal(t, "SOL", quotation.ToToken, "to token")
	assert.Equal(t, "10", quotation.FromAmount.String(), "from amount")
	assert.Equal(t, "140.74595355", quotation.ExchangeRate.String(), "exchange rate")
	assert.Equal(t, "1407.45953554", quotation.ToAmount.String(), "to amount")

	// a quote never moves money
	source, ok := balance.Get("0xA")
	assert.True(t, ok, "source present")
	assert.Equal(t, "100", source.String(), "source unchanged")
	_, ok = balance.Get("0xB")
	assert.False(t, ok, "destination untouched")
}

func TestQuoteGates(t *testing.T) {
	setup(t, usdPrices, false)
	defer teardown(t)

	fundSource(t)

	_, err := swap.Quote("BTC", "SOL", "10")
	assert.Equal(t, fault.PoolNotFound, err, "unknown source pool")

	_, err = swap.Quote("ETH", "XRP", "10")
	assert.Equal(t, fault.PoolNotFound, err, "unknown destination pool")

	_, err = swap.Quote("ETH", "SOL", "101")
	assert.Equal(t, fault.InsufficientBalance, err, "over balance")
}
