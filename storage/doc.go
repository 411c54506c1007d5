// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key→value form
// over a single LevelDB database
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// The keys are simply a byte of prefix followed by the element key.
// e.g. a file record with identifier of { 0x12, 0x34, 0x56, … }
// would be stored under a key { 'F', 0x12, 0x34, 0x56, … }.
//
// Multi-element mutations are applied through a Transaction backed by
// a LevelDB batch so that either every write appears or none does.
package storage
