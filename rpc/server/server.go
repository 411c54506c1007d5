// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/counter"
	"github.com/solvernet/solverd/rpc/file"
	"github.com/solvernet/solverd/rpc/node"
	"github.com/solvernet/solverd/rpc/operation"
	"github.com/solvernet/solverd/rpc/pool"
	"github.com/solvernet/solverd/rpc/trade"
)

// Create - register all of the RPC handlers on a fresh server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(file.New(log))
	_ = server.Register(pool.New(log))
	_ = server.Register(trade.New(log))
	_ = server.Register(operation.New(log))
	_ = server.Register(node.New(log, start, version, rpcCount))

	return server
}
