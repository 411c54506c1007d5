// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"encoding/hex"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/dispatch"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/rpc/ratelimit"
	"github.com/solvernet/solverd/solverecord"
)

// Operation
// ---------

// Operation - type for the RPC
type Operation struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitOperation = 100
	rateBurstOperation = 50
)

// New - create the Operation RPC instance
func New(log *logger.L) *Operation {
	return &Operation{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOperation, rateBurstOperation),
	}
}

// Operation submit
// ----------------

// SubmitArguments - arguments for RPC
//
// Signer and Application identify the submitting caller; the TLS
// transport is the trust boundary for those fields
type SubmitArguments struct {
	Payload     []byte `json:"payload"`               // base64 packed operation
	Signer      string `json:"signer,omitempty"`      // hex user address
	Application string `json:"application,omitempty"` // hex application id
}

// SubmitReply - result of operation submit RPC
type SubmitReply struct {
	Executed bool `json:"executed"`
}

// Submit - run one packed operation
func (operation *Operation) Submit(arguments *SubmitArguments, reply *SubmitReply) error {

	if err := ratelimit.Limit(operation.Limiter); nil != err {
		return err
	}

	log := operation.Log
	log.Infof("Operation.Submit: %d bytes", len(arguments.Payload))

	caller := solverecord.Caller{}
	if "" != arguments.Signer {
		signer, err := hex.DecodeString(arguments.Signer)
		if nil != err {
			return fault.InvalidOwner
		}
		caller.Signer = signer
	}
	if "" != arguments.Application {
		application, err := hex.DecodeString(arguments.Application)
		if nil != err {
			return fault.InvalidOwner
		}
		caller.Application = application
	}

	err := dispatch.Execute(caller, solverecord.Packed(arguments.Payload))
	if nil != err {
		return err
	}

	reply.Executed = true
	return nil
}
