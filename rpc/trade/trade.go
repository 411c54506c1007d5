// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package trade

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/rpc/ratelimit"
	"github.com/solvernet/solverd/solverecord"
	"github.com/solvernet/solverd/swap"
)

// Trade
// -----

// Trade - type for the RPC
type Trade struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitTrade = 200
	rateBurstTrade = 100
)

// New - create the Trade RPC instance
func New(log *logger.L) *Trade {
	return &Trade{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitTrade, rateBurstTrade),
	}
}

// Trade quote
// -----------

// QuoteArguments - arguments for RPC
type QuoteArguments struct {
	FromToken string `json:"fromToken"`
	ToToken   string `json:"toToken"`
	Amount    string `json:"amount"`
}

// QuoteReply - a priced prospective swap
type QuoteReply struct {
	FromToken    string `json:"fromToken"`
	ToToken      string `json:"toToken"`
	FromAmount   string `json:"fromAmount"`
	ToAmount     string `json:"toAmount"`
	ExchangeRate string `json:"exchangeRate"`
}

// Quote - price a swap without executing it
func (trade *Trade) Quote(arguments *QuoteArguments, reply *QuoteReply) error {

	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}

	log := trade.Log
	log.Infof("Trade.Quote: %+v", arguments)

	quotation, err := swap.Quote(arguments.FromToken, arguments.ToToken, arguments.Amount)
	if nil != err {
		return err
	}

	reply.FromToken = quotation.FromToken
	reply.ToToken = quotation.ToToken
	reply.FromAmount = quotation.FromAmount.String()
	reply.ToAmount = quotation.ToAmount.String()
	reply.ExchangeRate = quotation.ExchangeRate.String()
	return nil
}

// Trade prepare
// -------------

// PrepareArguments - arguments for RPC
type PrepareArguments struct {
	FromToken          string `json:"fromToken"`
	ToToken            string `json:"toToken"`
	DestinationAddress string `json:"destinationAddress"`
	Amount             string `json:"amount"`
}

// PrepareReply - the packed operation payload for submission
type PrepareReply struct {
	Payload []byte `json:"payload"` // base64
}

// Prepare - pack a swap operation for external submission
func (trade *Trade) Prepare(arguments *PrepareArguments, reply *PrepareReply) error {

	if err := ratelimit.Limit(trade.Limiter); nil != err {
		return err
	}

	log := trade.Log
	log.Infof("Trade.Prepare: %+v", arguments)

	operation := &solverecord.Swap{
		FromToken:          arguments.FromToken,
		ToToken:            arguments.ToToken,
		DestinationAddress: arguments.DestinationAddress,
		Amount:             arguments.Amount,
	}
	packed, err := operation.Pack()
	if nil != err {
		return err
	}

	reply.Payload = packed
	return nil
}
