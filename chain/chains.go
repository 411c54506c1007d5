// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Livenet = "livenet"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Livenet, Testing, Local:
		return true
	default:
		return false
	}
}
