// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blobstore - content addressable storage for raw file payloads
//
// blobs are keyed by the SHA3-256 hash of their contents so a payload
// is stored at most once and a content reference can always be
// verified against the data it names
package blobstore

import (
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/solverecord"
	"github.com/solvernet/solverd/storage"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the blob store
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("blobstore")
	globalData.log.Info("starting…")

	globalData.initialised = true
	return nil
}

// Finalise - shut down the blob store
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// Put - store a payload, returning its content hash
//
// storing the same payload twice is a no-op yielding the same hash
func Put(data []byte) (solverecord.ContentHash, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	var hash solverecord.ContentHash
	if !globalData.initialised {
		return hash, fault.NotInitialised
	}

	hash = sha3.Sum256(data)
	if !storage.Pool.Blobs.Has(hash[:]) {
		storage.Pool.Blobs.Put(hash[:], data)
	}
	return hash, nil
}

// Has - check that a payload is present for a content hash
func Has(hash solverecord.ContentHash) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return false
	}
	return storage.Pool.Blobs.Has(hash[:])
}

// Get - fetch the payload for a content hash
func Get(hash solverecord.ContentHash) ([]byte, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	data := storage.Pool.Blobs.Get(hash[:])
	if nil == data {
		return nil, fault.BlobNotFound
	}
	return data, nil
}
