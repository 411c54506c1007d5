// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package oracle - exchange rates from an external price API
//
// the API serves current token prices by symbol; a rate is the ratio
// of two prices. Quotes may be served from a short lived price cache,
// settlement always fetches live prices.
package oracle

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/decimal"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/util"
)

// cache tuning
const (
	priceLifetime   = 15 * time.Second
	cleanupInterval = 1 * time.Minute
	requestTimeout  = 30 * time.Second
)

// response layout of the prices-by-symbol endpoint
type priceReply struct {
	Data []struct {
		Symbol string `json:"symbol"`
		Prices []struct {
			Currency string `json:"currency"`
			Value    string `json:"value"`
		} `json:"prices"`
	} `json:"data"`
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	client      *http.Client
	endpoint    string
	apiKey      string
	prices      *gocache.Cache
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the price client
//
// endpoint is the prices-by-symbol URL, apiKey the bearer token sent
// with each request
func Initialise(endpoint string, apiKey string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("oracle")
	globalData.log.Info("starting…")

	if "" == endpoint {
		return fault.MissingParameters
	}

	globalData.client = &http.Client{Timeout: requestTimeout}
	globalData.endpoint = endpoint
	globalData.apiKey = apiKey
	globalData.prices = gocache.New(priceLifetime, cleanupInterval)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the price client
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.prices.Flush()
	globalData.initialised = false
	return nil
}

// Client - the rate source backed by the configured price API
type Client struct{}

// Rate - exchange rate between two tokens, cached prices allowed
func (c Client) Rate(fromToken string, toToken string) (decimal.Decimal, error) {
	return rate(fromToken, toToken, true)
}

// LiveRate - exchange rate between two tokens from live prices only
//
// the settlement path uses this so a swap is never priced from a
// stale cache entry
func (c Client) LiveRate(fromToken string, toToken string) (decimal.Decimal, error) {
	return rate(fromToken, toToken, false)
}

// rate = price(fromToken) / price(toToken)
func rate(fromToken string, toToken string, cached bool) (decimal.Decimal, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return decimal.Decimal{}, fault.NotInitialised
	}

	fromPrice, err := price(fromToken, cached)
	if nil != err {
		return decimal.Decimal{}, err
	}
	toPrice, err := price(toToken, cached)
	if nil != err {
		return decimal.Decimal{}, err
	}

	// Div cannot fail here as both prices are strictly positive
	result, err := fromPrice.Div(toPrice)
	if nil != err {
		return decimal.Decimal{}, err
	}
	return result, nil
}

// fetch one token price, optionally serving a recent cached value
func price(symbol string, cached bool) (decimal.Decimal, error) {
	if "" == symbol {
		return decimal.Decimal{}, fault.MissingParameters
	}

	if cached {
		if entry, ok := globalData.prices.Get(symbol); ok {
			return entry.(decimal.Decimal), nil
		}
	}

	query := globalData.endpoint + "?symbols=" + url.QueryEscape(symbol)

	headers := map[string]string{
		"Accept": "application/json",
	}
	if "" != globalData.apiKey {
		headers["Authorization"] = "Bearer " + globalData.apiKey
	}

	var reply priceReply
	err := util.FetchJSON(globalData.client, query, headers, &reply)
	if nil != err {
		globalData.log.Errorf("price fetch: %q error: %s", symbol, err)
		return decimal.Decimal{}, fault.OracleRequestFail
	}

	for _, entry := range reply.Data {
		if entry.Symbol != symbol {
			continue
		}
		if 0 == len(entry.Prices) {
			break
		}
		value, err := decimal.Parse(entry.Prices[0].Value)
		if nil != err {
			globalData.log.Errorf("price for token %s: bad value: %q", symbol, entry.Prices[0].Value)
			return decimal.Decimal{}, fault.InvalidPriceValue
		}
		if !value.IsPositive() {
			globalData.log.Errorf("price for token %s: not positive: %q", symbol, entry.Prices[0].Value)
			return decimal.Decimal{}, fault.InvalidPriceValue
		}
		globalData.prices.Set(symbol, value, gocache.DefaultExpiration)
		return value, nil
	}

	globalData.log.Errorf("price not found for token %s", symbol)
	return decimal.Decimal{}, fault.PriceNotFound
}
