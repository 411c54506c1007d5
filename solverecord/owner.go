// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/solvernet/solverd/fault"
)

// owner variant tags as packed
const (
	ownerTagUser        = 0x01
	ownerTagApplication = 0x02
)

// text prefixes for the two variants
const (
	userPrefix        = "user:"
	applicationPrefix = "application:"
)

// OwnerLength - length of an owner address or application identifier
const OwnerLength = 32

// Owner - a closed two variant sum: a record is owned either by a
// user account or by another application
//
// only UserOwner and ApplicationOwner implement this interface
type Owner interface {
	// Bytes - canonical tagged bytes used for packing and for owner
	// index keys
	Bytes() []byte

	// String - text form, also used for JSON encoding
	String() string

	// Authenticate - the authentication rule of the variant checked
	// against the submitting caller
	Authenticate(caller Caller) error

	// seals the sum
	ownerVariant()
}

// UserOwner - a record owned by a user account address
type UserOwner [OwnerLength]byte

// ApplicationOwner - a record owned by another application
type ApplicationOwner [OwnerLength]byte

// Caller - the authenticated context an operation arrives with
//
// Signer is the authenticated user address, nil if the operation was
// not signed by a user; Application is the authenticated calling
// application identifier, nil if not an application call
type Caller struct {
	Signer      []byte
	Application []byte
}

// Bytes - tag byte followed by the address
func (owner UserOwner) Bytes() []byte {
	return append([]byte{ownerTagUser}, owner[:]...)
}

// Bytes - tag byte followed by the application identifier
func (owner ApplicationOwner) Bytes() []byte {
	return append([]byte{ownerTagApplication}, owner[:]...)
}

// String - "user:" followed by hex address
func (owner UserOwner) String() string {
	return userPrefix + hex.EncodeToString(owner[:])
}

// String - "application:" followed by hex identifier
func (owner ApplicationOwner) String() string {
	return applicationPrefix + hex.EncodeToString(owner[:])
}

// Authenticate - a user owned operation must be signed by that user
func (owner UserOwner) Authenticate(caller Caller) error {
	if !bytes.Equal(caller.Signer, owner[:]) {
		return fault.NotAuthenticated
	}
	return nil
}

// Authenticate - an application owned operation must come from that
// application
func (owner ApplicationOwner) Authenticate(caller Caller) error {
	if !bytes.Equal(caller.Application, owner[:]) {
		return fault.NotAuthenticated
	}
	return nil
}

func (owner UserOwner) ownerVariant()        {}
func (owner ApplicationOwner) ownerVariant() {}

// MarshalText - convert owner to its text form
func (owner UserOwner) MarshalText() ([]byte, error) {
	return []byte(owner.String()), nil
}

// MarshalText - convert owner to its text form
func (owner ApplicationOwner) MarshalText() ([]byte, error) {
	return []byte(owner.String()), nil
}

// ParseOwner - convert the text form back to an owner
func ParseOwner(s string) (Owner, error) {
	switch {
	case strings.HasPrefix(s, userPrefix):
		var owner UserOwner
		if err := decodeOwnerHex(owner[:], s[len(userPrefix):]); nil != err {
			return nil, err
		}
		return owner, nil

	case strings.HasPrefix(s, applicationPrefix):
		var owner ApplicationOwner
		if err := decodeOwnerHex(owner[:], s[len(applicationPrefix):]); nil != err {
			return nil, err
		}
		return owner, nil

	default:
		return nil, fault.InvalidOwner
	}
}

// OwnerFromBytes - unpack a tagged owner from the start of a buffer
//
// returns the owner and the number of bytes consumed
func OwnerFromBytes(buffer []byte) (Owner, int, error) {
	if len(buffer) < 1+OwnerLength {
		return nil, 0, fault.InvalidOwner
	}
	switch buffer[0] {
	case ownerTagUser:
		var owner UserOwner
		copy(owner[:], buffer[1:1+OwnerLength])
		return owner, 1 + OwnerLength, nil
	case ownerTagApplication:
		var owner ApplicationOwner
		copy(owner[:], buffer[1:1+OwnerLength])
		return owner, 1 + OwnerLength, nil
	default:
		return nil, 0, fault.InvalidOwner
	}
}

func decodeOwnerHex(destination []byte, s string) error {
	if hex.EncodedLen(len(destination)) != len(s) {
		return fault.InvalidOwner
	}
	_, err := hex.Decode(destination, []byte(s))
	if nil != err {
		return fault.InvalidOwner
	}
	return nil
}
