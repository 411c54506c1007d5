// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord

import (
	"unicode/utf8"

	"github.com/solvernet/solverd/fault"
)

// name limits
const (
	minNameLength = 1
	maxNameLength = 255
)

// FileRecord - a registered file
//
// created once by AddFile; never mutated, never deleted
type FileRecord struct {
	FileId     FileId      `json:"fileId"`
	Owner      Owner       `json:"owner"`
	Name       string      `json:"name"`
	ContentRef ContentHash `json:"contentRef"`
}

// NewFileRecord - assemble a record, deriving its identifier
func NewFileRecord(chainId []byte, applicationId []byte, owner Owner, name string, contentRef ContentHash) (*FileRecord, error) {
	if nil == owner {
		return nil, fault.InvalidOwner
	}
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, fault.NameTooShort
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fault.NameTooLong
	}

	return &FileRecord{
		FileId:     NewFileId(chainId, applicationId, name, contentRef),
		Owner:      owner,
		Name:       name,
		ContentRef: contentRef,
	}, nil
}

// Pack - binary form of a file record
//
// varint64(tag) followed by fields in order as struct above
func (record *FileRecord) Pack() (Packed, error) {
	if nil == record.Owner {
		return nil, fault.InvalidOwner
	}
	if utf8.RuneCountInString(record.Name) < minNameLength {
		return nil, fault.NameTooShort
	}
	if utf8.RuneCountInString(record.Name) > maxNameLength {
		return nil, fault.NameTooLong
	}

	message := newMessage(fileRecordTag)
	message = append(message, record.FileId[:]...)
	message = appendOwner(message, record.Owner)
	message = appendString(message, record.Name)
	message = append(message, record.ContentRef[:]...)
	return message, nil
}

// UnpackFileRecord - decode the binary form of a file record
func UnpackFileRecord(packed Packed) (*FileRecord, error) {
	u := newUnpacker(packed)

	if fileRecordTag != u.tag() {
		return nil, fault.NotOperationRecord
	}

	record := &FileRecord{}

	if err := FileIdFromBytes(&record.FileId, u.fixedBytes(FileIdLength)); nil != err {
		return nil, err
	}
	record.Owner = u.owner()
	record.Name = u.str()
	if err := ContentHashFromBytes(&record.ContentRef, u.fixedBytes(ContentHashLength)); nil != err {
		return nil, err
	}

	if err := u.done(); nil != err {
		return nil, err
	}
	return record, nil
}
