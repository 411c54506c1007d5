// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade_test

import (
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/balance"
	"github.com/solvernet/solverd/decimal"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/poollist"
	"github.com/solvernet/solverd/rpc/fixtures"
	"github.com/solvernet/solverd/rpc/mocks"
	"github.com/solvernet/solverd/rpc/trade"
	"github.com/solvernet/solverd/solverecord"
	"github.com/solvernet/solverd/storage"
	"github.com/solvernet/solverd/swap"
)

const databaseFileName = "test.leveldb"

func setup(t *testing.T, rates swap.RateSource) {
	os.RemoveAll(databaseFileName)
	fixtures.SetupTestLogger()

	if err := storage.Initialise(databaseFileName, storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	if err := poollist.Initialise(); nil != err {
		t.Fatalf("poollist initialise error: %s", err)
	}
	if err := balance.Initialise(); nil != err {
		t.Fatalf("balance initialise error: %s", err)
	}
	if err := swap.Initialise(rates, false); nil != err {
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

func TestTradeQuote(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rates := mocks.NewMockRateSource(ctl)

	setup(t, rates)
	defer teardown(t)

	tr := trade.New(logger.New(fixtures.LogCategory))

	assert.Nil(t, poollist.Add("ETH", "0xA"), "wrong poollist Add")
	assert.Nil(t, poollist.Add("SOL", "0xB"), "wrong poollist Add")
	assert.Nil(t, balance.Set("0xA", "100"), "wrong balance Set")

	rate, _ := decimal.Parse("140.74595355")
	rates.EXPECT().Rate("ETH", "SOL").Return(rate, nil).Times(1)

	arg := trade.QuoteArguments{
		FromToken: "ETH",
		ToToken:   "SOL",
		Amount:    "10",
	}

	var reply trade.QuoteReply
	err := tr.Quote(&arg, &reply)
	assert.Nil(t, err, "wrong Quote")
	assert.Equal(t, "ETH", reply.FromToken, "wrong from token")
	assert.Equal(t, "SOL", reply.ToToken, "wrong to token")
	assert.Equal(t, "10", reply.FromAmount, "wrong from amount")
	assert.Equal(t, "140.74595355", reply.ExchangeRate, "wrong rate")
	assert.Equal(t, "1407.4595355", reply.ToAmount, "wrong to amount")
}

func TestTradeQuoteWhenRateFails(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rates := mocks.NewMockRateSource(ctl)

	setup(t, rates)
	defer teardown(t)

	tr := trade.New(logger.New(fixtures.LogCategory))

	assert.Nil(t, poollist.Add("ETH", "0xA"), "wrong poollist Add")
	assert.Nil(t, poollist.Add("SOL", "0xB"), "wrong poollist Add")
	assert.Nil(t, balance.Set("0xA", "100"), "wrong balance Set")

	rates.EXPECT().Rate("ETH", "SOL").Return(decimal.Decimal{}, fault.PriceNotFound).Times(1)

	arg := trade.QuoteArguments{
		FromToken: "ETH",
		ToToken:   "SOL",
		Amount:    "10",
	}

	var reply trade.QuoteReply
	err := tr.Quote(&arg, &reply)
	assert.Equal(t, fault.PriceNotFound, err, "wrong Quote error")
}

func TestTradeQuoteWhenUnknownPool(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rates := mocks.NewMockRateSource(ctl)

	setup(t, rates)
	defer teardown(t)

	tr := trade.New(logger.New(fixtures.LogCategory))

	arg := trade.QuoteArguments{
		FromToken: "ETH",
		ToToken:   "SOL",
		Amount:    "10",
	}

	var reply trade.QuoteReply
	err := tr.Quote(&arg, &reply)
	assert.Equal(t, fault.PoolNotFound, err, "wrong Quote error")
}

// a quote needs both pools registered, no rate is ever requested
func TestTradeQuoteWhenUnknownDestinationPool(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rates := mocks.NewMockRateSource(ctl)

	setup(t, rates)
	defer teardown(t)

	tr := trade.New(logger.New(fixtures.LogCategory))

	assert.Nil(t, poollist.Add("ETH", "0xA"), "wrong poollist Add")
	assert.Nil(t, balance.Set("0xA", "100"), "wrong balance Set")

	arg := trade.QuoteArguments{
		FromToken: "ETH",
		ToToken:   "SOL",
		Amount:    "10",
	}

	var reply trade.QuoteReply
	err := tr.Quote(&arg, &reply)
	assert.Equal(t, fault.PoolNotFound, err, "wrong Quote error")
}

func TestTradePrepare(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	rates := mocks.NewMockRateSource(ctl)

	setup(t, rates)
	defer teardown(t)

	tr := trade.New(logger.New(fixtures.LogCategory))

	arg := trade.PrepareArguments{
		FromToken:          "ETH",
		ToToken:            "SOL",
		DestinationAddress: "0xB",
		Amount:             "10",
	}

	var reply trade.PrepareReply
	err := tr.Prepare(&arg, &reply)
	assert.Nil(t, err, "wrong Prepare")

	operation, err := solverecord.UnpackOperation(solverecord.Packed(reply.Payload))
	assert.Nil(t, err, "wrong Unpack")

	s, ok := operation.(*solverecord.Swap)
	assert.True(t, ok, "wrong operation type")
	assert.Equal(t, "ETH", s.FromToken, "wrong from token")
	assert.Equal(t, "SOL", s.ToToken, "wrong to token")
	assert.Equal(t, "0xB", s.DestinationAddress, "wrong destination")
	assert.Equal(t, "10", s.Amount, "wrong amount")
}
