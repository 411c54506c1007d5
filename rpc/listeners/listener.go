// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - network listeners for the RPC and HTTPS query
// surfaces
package listeners

// Listener - a started network service
type Listener interface {
	Serve() error
}

const (
	minConnectionCount = 1
)
