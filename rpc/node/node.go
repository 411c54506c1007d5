// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/counter"
	"github.com/solvernet/solverd/mode"
	"github.com/solvernet/solverd/rpc/ratelimit"
)

// Node
// ----

// Node - type for the RPC
type Node struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	start    time.Time
	version  string
	rpcCount *counter.Counter
}

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// New - create the Node RPC instance
func New(log *logger.L, start time.Time, version string, rpcCount *counter.Counter) *Node {
	return &Node{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:    start,
		version:  version,
		rpcCount: rpcCount,
	}
}

// Node info
// ---------

// InfoArguments - arguments for RPC
type InfoArguments struct {
}

// InfoReply - daemon status
type InfoReply struct {
	Chain   string `json:"chain"`
	Mode    string `json:"mode"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	RPCs    uint64 `json:"rpcs"`
}

// Info - daemon chain, mode and uptime
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	node.Log.Info("Node.Info")

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).String()
	reply.RPCs = node.rpcCount.Uint64()
	return nil
}
