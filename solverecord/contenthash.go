// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/solvernet/solverd/fault"
)

// limits
const (
	ContentHashLength = 32
)

// ContentHash - reference to a blob in the content-addressable store
// stored as a byte array
// represented as hex text for JSON encoding
type ContentHash [ContentHashLength]byte

// NewContentHash - hash a blob of data
//
// SHA3-256 hash
func NewContentHash(data []byte) ContentHash {
	return ContentHash(sha3.Sum256(data))
}

// String - convert a binary content hash to hex string for use by the fmt package (for %s)
func (hash ContentHash) String() string {
	return hex.EncodeToString(hash[:])
}

// GoString - convert a binary content hash to hex string for use by the fmt package (for %#v)
func (hash ContentHash) GoString() string {
	return "<blob:" + hex.EncodeToString(hash[:]) + ">"
}

// MarshalText - convert content hash to hex text
func (hash ContentHash) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(hash))
	buffer := make([]byte, size)
	hex.Encode(buffer, hash[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a content hash
func (hash *ContentHash) UnmarshalText(s []byte) error {
	if len(hash) != hex.DecodedLen(len(s)) {
		return fault.NotAContentHash
	}
	byteCount, err := hex.Decode(hash[:], s)
	if nil != err {
		return err
	}
	if ContentHashLength != byteCount {
		return fault.NotAContentHash
	}
	return nil
}

// ContentHashFromBytes - convert and validate a binary byte slice to a content hash
func ContentHashFromBytes(hash *ContentHash, buffer []byte) error {
	if ContentHashLength != len(buffer) {
		return fault.NotAContentHash
	}
	copy(hash[:], buffer)
	return nil
}
