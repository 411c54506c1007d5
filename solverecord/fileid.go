// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord

import (
	"encoding/base64"

	"golang.org/x/crypto/sha3"

	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/util"
)

// limits
const (
	FileIdLength = 32
)

// FileId - the content-addressed identifier of a registered file
// stored as a byte array
// represented as unpadded standard base64 text for JSON encoding
// to get bytes value just use fileId[:]
type FileId [FileIdLength]byte

// NewFileId - derive the identifier of a file record
//
// SHA3-256 over, in order: the chain identifier bytes, the
// application identifier bytes, the name bytes, the varint64 encoded
// name length and the content hash bytes
//
// deterministic: no clock, no randomness, no map iteration
func NewFileId(chainId []byte, applicationId []byte, name string, contentRef ContentHash) FileId {
	hasher := sha3.New256()
	hasher.Write(chainId)
	hasher.Write(applicationId)
	hasher.Write([]byte(name))
	hasher.Write(util.ToVarint64(uint64(len(name))))
	hasher.Write(contentRef[:])

	var fileId FileId
	copy(fileId[:], hasher.Sum(nil))
	return fileId
}

// String - convert a binary fileId to unpadded base64 for use by the fmt package (for %s)
func (fileId FileId) String() string {
	return base64.StdEncoding.WithPadding(base64.NoPadding).EncodeToString(fileId[:])
}

// GoString - convert a binary fileId to unpadded base64 for use by the fmt package (for %#v)
func (fileId FileId) GoString() string {
	return "<file:" + fileId.String() + ">"
}

// MarshalText - convert fileId to unpadded base64 text
func (fileId FileId) MarshalText() ([]byte, error) {
	encoding := base64.StdEncoding.WithPadding(base64.NoPadding)
	buffer := make([]byte, encoding.EncodedLen(len(fileId)))
	encoding.Encode(buffer, fileId[:])
	return buffer, nil
}

// UnmarshalText - convert unpadded base64 text into a fileId
func (fileId *FileId) UnmarshalText(s []byte) error {
	encoding := base64.StdEncoding.WithPadding(base64.NoPadding)
	if len(fileId) != encoding.DecodedLen(len(s)) {
		return fault.NotAFileId
	}
	buffer := make([]byte, encoding.DecodedLen(len(s)))
	byteCount, err := encoding.Decode(buffer, s)
	if nil != err {
		return fault.NotAFileId
	}
	if FileIdLength != byteCount {
		return fault.NotAFileId
	}
	copy(fileId[:], buffer)
	return nil
}

// FileIdFromBytes - convert and validate a binary byte slice to a fileId
func FileIdFromBytes(fileId *FileId, buffer []byte) error {
	if FileIdLength != len(buffer) {
		return fault.NotAFileId
	}
	copy(fileId[:], buffer)
	return nil
}
