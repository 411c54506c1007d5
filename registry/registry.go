// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the append-only file record store and its owner
// index
//
// a record and its owner index entry are committed in a single batch
// so the two tables can never disagree
package registry

import (
	"bytes"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/blobstore"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/solverecord"
	"github.com/solvernet/solverd/storage"
)

// globals
type globalDataType struct {
	sync.RWMutex
	log           *logger.L
	chainId       []byte
	applicationId []byte
	initialised   bool
}

// global storage
var globalData globalDataType

// Initialise - set up the registry
//
// the chain and application identifiers are mixed into every derived
// file identifier so records from different deployments never collide
func Initialise(chainId []byte, applicationId []byte) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("registry")
	globalData.log.Info("starting…")

	globalData.chainId = chainId
	globalData.applicationId = applicationId

	globalData.initialised = true
	return nil
}

// Finalise - shut down the registry
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

// Add - register a file for an owner
//
// the blob named by contentRef must already be present; the record and
// its owner index entry are written in one atomic batch
//
// re-registering an identical record is a no-op returning the same
// identifier; the same identifier under a different owner is rejected
func Add(owner solverecord.Owner, name string, contentRef solverecord.ContentHash) (solverecord.FileId, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	var fileId solverecord.FileId
	if !globalData.initialised {
		return fileId, fault.NotInitialised
	}

	if !blobstore.Has(contentRef) {
		return fileId, fault.BlobNotFound
	}

	record, err := solverecord.NewFileRecord(globalData.chainId, globalData.applicationId, owner, name, contentRef)
	if nil != err {
		return fileId, err
	}
	fileId = record.FileId

	packed, err := record.Pack()
	if nil != err {
		return fileId, err
	}

	if existing := storage.Pool.Files.Get(fileId[:]); nil != existing {
		if bytes.Equal(existing, packed) {
			return fileId, nil
		}
		return fileId, fault.FileAlreadyExists
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return fileId, err
	}

	trx.Put(storage.Pool.Files, fileId[:], packed)
	trx.Put(storage.Pool.OwnerIndex, indexKey(owner, fileId), []byte{})

	err = trx.Commit()
	if nil != err {
		return fileId, err
	}

	globalData.log.Infof("registered file: %s owner: %s", fileId, owner)
	return fileId, nil
}

// Record - fetch a file record by its identifier
func Record(fileId solverecord.FileId) (*solverecord.FileRecord, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, false
	}

	packed := storage.Pool.Files.Get(fileId[:])
	if nil == packed {
		return nil, false
	}

	record, err := solverecord.UnpackFileRecord(packed)
	logger.PanicIfError("registry: corrupt file record", err)
	return record, true
}

// stops the owner index scan at the end of one owner's range
var endOfOwner = fault.ProcessError("end of owner range")

// OwnedBy - list the identifiers registered to an owner
//
// an unknown owner yields an empty list
func OwnedBy(owner solverecord.Owner) ([]solverecord.FileId, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}
	if nil == owner {
		return nil, fault.InvalidOwner
	}

	prefix := owner.Bytes()
	fileIds := []solverecord.FileId{}

	cursor := storage.Pool.OwnerIndex.NewFetchCursor().Seek(prefix)
	err := cursor.Map(func(key []byte, value []byte) error {
		if !bytes.HasPrefix(key, prefix) {
			return endOfOwner
		}
		var fileId solverecord.FileId
		if err := solverecord.FileIdFromBytes(&fileId, key[len(prefix):]); nil != err {
			return err
		}
		fileIds = append(fileIds, fileId)
		return nil
	})
	if endOfOwner == err {
		err = nil
	}
	if nil != err {
		return nil, err
	}
	return fileIds, nil
}

// owner index key: tagged owner bytes followed by the file identifier
func indexKey(owner solverecord.Owner, fileId solverecord.FileId) []byte {
	return append(owner.Bytes(), fileId[:]...)
}
