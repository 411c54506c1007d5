// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/balance"
	"github.com/solvernet/solverd/blobstore"
	"github.com/solvernet/solverd/dispatch"
	"github.com/solvernet/solverd/mode"
	"github.com/solvernet/solverd/oracle"
	"github.com/solvernet/solverd/poollist"
	"github.com/solvernet/solverd/registry"
	"github.com/solvernet/solverd/rpc"
	"github.com/solvernet/solverd/storage"
	"github.com/solvernet/solverd/swap"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC HTTPS server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err = http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)

	// start the data storage
	log.Info("initialise storage")
	databaseName := filepath.Join(theConfiguration.Database.Directory, theConfiguration.Database.Name)
	err = storage.Initialise(databaseName, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// content-addressed blob data
	log.Info("initialise blobstore")
	err = blobstore.Initialise()
	if nil != err {
		log.Criticalf("blobstore initialise error: %s", err)
		exitwithstatus.Message("blobstore initialise error: %s", err)
	}
	defer blobstore.Finalise()

	// file records and the owner index
	log.Info("initialise registry")
	chainId, applicationId, err := theConfiguration.registryIdentifiers()
	if nil != err {
		log.Criticalf("registry identifiers error: %s", err)
		exitwithstatus.Message("registry identifiers error: %s", err)
	}
	err = registry.Initialise(chainId, applicationId)
	if nil != err {
		log.Criticalf("registry initialise error: %s", err)
		exitwithstatus.Message("registry initialise error: %s", err)
	}
	defer registry.Finalise()

	// liquidity pool registrations
	log.Info("initialise poollist")
	err = poollist.Initialise()
	if nil != err {
		log.Criticalf("poollist initialise error: %s", err)
		exitwithstatus.Message("poollist initialise error: %s", err)
	}
	defer poollist.Finalise()

	// the pool balance ledger
	log.Info("initialise balance")
	err = balance.Initialise()
	if nil != err {
		log.Criticalf("balance initialise error: %s", err)
		exitwithstatus.Message("balance initialise error: %s", err)
	}
	defer balance.Finalise()

	// token price source
	log.Info("initialise oracle")
	err = oracle.Initialise(theConfiguration.Oracle.URL, theConfiguration.Oracle.APIKey)
	if nil != err {
		log.Criticalf("oracle initialise error: %s", err)
		exitwithstatus.Message("oracle initialise error: %s", err)
	}
	defer oracle.Finalise()

	// the settlement engine, priced by the oracle
	log.Info("initialise swap")
	if theConfiguration.LegacySettlement {
		log.Warn("legacy settlement direction is enabled")
	}
	err = swap.Initialise(oracle.Client{}, theConfiguration.LegacySettlement)
	if nil != err {
		log.Criticalf("swap initialise error: %s", err)
		exitwithstatus.Message("swap initialise error: %s", err)
	}
	defer swap.Finalise()

	// the single-writer operation executor
	log.Info("initialise dispatch")
	err = dispatch.Initialise()
	if nil != err {
		log.Criticalf("dispatch initialise error: %s", err)
		exitwithstatus.Message("dispatch initialise error: %s", err)
	}
	defer dispatch.Finalise()

	// replace the certificate and key paths by the PEM content the
	// rpc listeners expect
	err = loadCertificates(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC)
	if nil != err {
		log.Criticalf("certificate load error: %s", err)
		exitwithstatus.Message("certificate load error: %s", err)
	}

	// start up the rpc listeners
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// all services are up, accept operations
	mode.Set(mode.Normal)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}
