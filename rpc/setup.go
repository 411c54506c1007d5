// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the query surface of the daemon
//
// a TLS JSON RPC service plus an HTTPS bridge exposing the same
// handlers to plain web clients
package rpc

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/counter"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/rpc/certificate"
	"github.com/solvernet/solverd/rpc/handler"
	"github.com/solvernet/solverd/rpc/listeners"
	"github.com/solvernet/solverd/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// connection count for both listeners
var connectionCountRPC counter.Counter

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC and HTTPS listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, version string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, &connectionCountRPC),
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}

	err = initialiseHTTPS(httpsConfiguration, version)
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop the query surface
func Finalise() error {

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func initialiseHTTPS(configuration *listeners.HTTPSConfiguration, version string) error {

	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", "http_rpc")
		return nil
	}

	tlsConfiguration, fingerprint, err := certificate.Get(log, "http_rpc", configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	log.Infof("http_rpc: SHA3-256 fingerprint: %x", fingerprint)

	s := server.Create(log, version, &connectionCountRPC)
	hdlr := handler.New(log, s, time.Now(), version, &connectionCountRPC, configuration.MaximumConnections)

	httpsListener, err := listeners.NewHTTPS(configuration, log, tlsConfiguration, hdlr)
	if nil != err {
		return err
	}
	if nil == httpsListener {
		return nil
	}

	return httpsListener.Serve()
}
