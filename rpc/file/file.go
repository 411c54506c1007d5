// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package file

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/solvernet/solverd/blobstore"
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/registry"
	"github.com/solvernet/solverd/rpc/ratelimit"
	"github.com/solvernet/solverd/solverecord"
)

// File
// ----

// File - type for the RPC
type File struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitFile = 200
	rateBurstFile = 100
)

// New - create the File RPC instance
func New(log *logger.L) *File {
	return &File{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFile, rateBurstFile),
	}
}

// File get
// --------

// GetArguments - arguments for RPC
type GetArguments struct {
	FileId string `json:"fileId"` // unpadded base64
}

// GetReply - registered metadata and the blob payload
type GetReply struct {
	Record *solverecord.FileRecord `json:"record"`
	Data   []byte                  `json:"data"` // base64
}

// Get - fetch one file record with its content
func (file *File) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(file.Limiter); nil != err {
		return err
	}

	log := file.Log
	log.Infof("File.Get: %+v", arguments)

	var fileId solverecord.FileId
	if err := fileId.UnmarshalText([]byte(arguments.FileId)); nil != err {
		return err
	}

	record, ok := registry.Record(fileId)
	if !ok {
		return fault.FileNotFound
	}

	data, err := blobstore.Get(record.ContentRef)
	if nil != err {
		return err
	}

	reply.Record = record
	reply.Data = data
	return nil
}

// File owned by
// -------------

// OwnedByArguments - arguments for RPC
type OwnedByArguments struct {
	Owner string `json:"owner"` // "user:…" or "application:…"
}

// OwnedByReply - all records registered to one owner
type OwnedByReply struct {
	Files []*solverecord.FileRecord `json:"files"`
}

// OwnedBy - list the file records of an owner
func (file *File) OwnedBy(arguments *OwnedByArguments, reply *OwnedByReply) error {

	if err := ratelimit.Limit(file.Limiter); nil != err {
		return err
	}

	log := file.Log
	log.Infof("File.OwnedBy: %+v", arguments)

	owner, err := solverecord.ParseOwner(arguments.Owner)
	if nil != err {
		return err
	}

	fileIds, err := registry.OwnedBy(owner)
	if nil != err {
		return err
	}

	files := make([]*solverecord.FileRecord, 0, len(fileIds))
	for _, fileId := range fileIds {
		record, ok := registry.Record(fileId)
		if !ok {
			log.Criticalf("owner index entry without record: %s", fileId)
			logger.Panicf("owner index entry without record: %s", fileId)
		}
		files = append(files, record)
	}

	reply.Files = files
	return nil
}

// File prepare
// ------------

// PrepareArguments - arguments for RPC
type PrepareArguments struct {
	Owner      string                  `json:"owner"`
	Name       string                  `json:"name"`
	ContentRef solverecord.ContentHash `json:"contentRef"` // hex
}

// PrepareReply - the packed operation payload for submission
type PrepareReply struct {
	Payload []byte `json:"payload"` // base64
}

// Prepare - pack an add file operation for external submission
func (file *File) Prepare(arguments *PrepareArguments, reply *PrepareReply) error {

	if err := ratelimit.Limit(file.Limiter); nil != err {
		return err
	}

	log := file.Log
	log.Infof("File.Prepare: %+v", arguments)

	owner, err := solverecord.ParseOwner(arguments.Owner)
	if nil != err {
		return err
	}

	operation := &solverecord.AddFile{
		Owner:      owner,
		Name:       arguments.Name,
		ContentRef: arguments.ContentRef,
	}
	packed, err := operation.Pack()
	if nil != err {
		return err
	}

	reply.Payload = packed
	return nil
}
