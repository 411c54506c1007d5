// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord

import (
	"github.com/solvernet/solverd/fault"
	"github.com/solvernet/solverd/util"
)

// Packed - the binary form of a record or operation
type Packed []byte

// start a message with its tag
func newMessage(tag uint64) Packed {
	return Packed(util.ToVarint64(tag))
}

// append a length prefixed string
func appendString(buffer Packed, s string) Packed {
	buffer = append(buffer, util.ToVarint64(uint64(len(s)))...)
	return append(buffer, s...)
}

// append an owner in its tagged byte form
func appendOwner(buffer Packed, owner Owner) Packed {
	return append(buffer, owner.Bytes()...)
}

// unpacker - sequential field decoder for packed messages
//
// the first error sticks; subsequent reads return zero values
type unpacker struct {
	buffer []byte
	offset int
	err    error
}

func newUnpacker(packed Packed) *unpacker {
	return &unpacker{buffer: packed}
}

// read the message tag
func (u *unpacker) tag() uint64 {
	return u.varint()
}

// read a varint64
func (u *unpacker) varint() uint64 {
	if nil != u.err {
		return 0
	}
	value, count := util.FromVarint64(u.buffer[u.offset:])
	if 0 == count {
		u.err = fault.NotOperationRecord
		return 0
	}
	u.offset += count
	return value
}

// read a length prefixed string
//
// the length is clipped to the buffer size so an oversized varint
// cannot push the slice bounds past the payload
func (u *unpacker) str() string {
	if nil != u.err {
		return ""
	}
	length, count := util.ClippedVarint64(u.buffer[u.offset:], 0, len(u.buffer))
	if 0 == count {
		u.err = fault.NotOperationRecord
		return ""
	}
	u.offset += count
	if u.offset+length > len(u.buffer) {
		u.err = fault.NotOperationRecord
		return ""
	}
	s := string(u.buffer[u.offset : u.offset+length])
	u.offset += length
	return s
}

// read a fixed number of bytes
func (u *unpacker) fixedBytes(length int) []byte {
	if nil != u.err {
		return nil
	}
	if u.offset+length > len(u.buffer) {
		u.err = fault.NotOperationRecord
		return nil
	}
	buffer := u.buffer[u.offset : u.offset+length]
	u.offset += length
	return buffer
}

// read a tagged owner
func (u *unpacker) owner() Owner {
	if nil != u.err {
		return nil
	}
	owner, count, err := OwnerFromBytes(u.buffer[u.offset:])
	if nil != err {
		u.err = err
		return nil
	}
	u.offset += count
	return owner
}

// finish - the whole buffer must have been consumed
func (u *unpacker) done() error {
	if nil != u.err {
		return u.err
	}
	if u.offset != len(u.buffer) {
		return fault.NotOperationRecord
	}
	return nil
}
