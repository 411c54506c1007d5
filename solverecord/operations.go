// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord

import (
	"unicode/utf8"

	"github.com/solvernet/solverd/fault"
)

// record tags for the packed forms
const (
	nullTag              = 0x00
	addFileTag           = 0x01
	addPoolTag           = 0x02
	removePoolTag        = 0x03
	updatePoolBalanceTag = 0x04
	swapTag              = 0x05
	fileRecordTag        = 0x06
)

// Operation - one of the five mutating entry points
//
// an operation travels as an opaque packed payload and is decoded by
// the dispatcher
type Operation interface {
	Pack() (Packed, error)
}

// AddFile - register a file for an owner
type AddFile struct {
	Owner      Owner       `json:"owner"`
	Name       string      `json:"name"`
	ContentRef ContentHash `json:"contentRef"`
}

// AddPool - register or overwrite a pool address for a token name
type AddPool struct {
	ChainName   string `json:"chainName"`
	PoolAddress string `json:"poolAddress"`
}

// RemovePool - delete a pool registration
type RemovePool struct {
	ChainName string `json:"chainName"`
}

// UpdatePoolBalance - set the ledger balance of a pool address
type UpdatePoolBalance struct {
	PoolAddress string `json:"poolAddress"`
	Balance     string `json:"balance"`
}

// Swap - settle a token swap between two pools
type Swap struct {
	FromToken          string `json:"fromToken"`
	ToToken            string `json:"toToken"`
	DestinationAddress string `json:"destinationAddress"`
	Amount             string `json:"amount"`
}

// Pack - binary form of AddFile
//
// varint64(tag) followed by fields in order as struct above
func (operation *AddFile) Pack() (Packed, error) {
	if nil == operation.Owner {
		return nil, fault.InvalidOwner
	}
	if utf8.RuneCountInString(operation.Name) < minNameLength {
		return nil, fault.NameTooShort
	}
	if utf8.RuneCountInString(operation.Name) > maxNameLength {
		return nil, fault.NameTooLong
	}

	message := newMessage(addFileTag)
	message = appendOwner(message, operation.Owner)
	message = appendString(message, operation.Name)
	message = append(message, operation.ContentRef[:]...)
	return message, nil
}

// Pack - binary form of AddPool
func (operation *AddPool) Pack() (Packed, error) {
	if "" == operation.ChainName || "" == operation.PoolAddress {
		return nil, fault.MissingParameters
	}

	message := newMessage(addPoolTag)
	message = appendString(message, operation.ChainName)
	message = appendString(message, operation.PoolAddress)
	return message, nil
}

// Pack - binary form of RemovePool
func (operation *RemovePool) Pack() (Packed, error) {
	if "" == operation.ChainName {
		return nil, fault.MissingParameters
	}

	message := newMessage(removePoolTag)
	message = appendString(message, operation.ChainName)
	return message, nil
}

// Pack - binary form of UpdatePoolBalance
func (operation *UpdatePoolBalance) Pack() (Packed, error) {
	if "" == operation.PoolAddress || "" == operation.Balance {
		return nil, fault.MissingParameters
	}

	message := newMessage(updatePoolBalanceTag)
	message = appendString(message, operation.PoolAddress)
	message = appendString(message, operation.Balance)
	return message, nil
}

// Pack - binary form of Swap
func (operation *Swap) Pack() (Packed, error) {
	if "" == operation.FromToken || "" == operation.ToToken ||
		"" == operation.DestinationAddress || "" == operation.Amount {
		return nil, fault.MissingParameters
	}

	message := newMessage(swapTag)
	message = appendString(message, operation.FromToken)
	message = appendString(message, operation.ToToken)
	message = appendString(message, operation.DestinationAddress)
	message = appendString(message, operation.Amount)
	return message, nil
}

// UnpackOperation - decode a packed payload back to its operation
//
// a truncated, oversize or unrecognised payload returns
// fault.NotOperationRecord
func UnpackOperation(packed Packed) (Operation, error) {
	u := newUnpacker(packed)

	switch u.tag() {

	case addFileTag:
		operation := &AddFile{}
		operation.Owner = u.owner()
		operation.Name = u.str()
		err := ContentHashFromBytes(&operation.ContentRef, u.fixedBytes(ContentHashLength))
		if nil != err {
			return nil, err
		}
		if err := u.done(); nil != err {
			return nil, err
		}
		return operation, nil

	case addPoolTag:
		operation := &AddPool{}
		operation.ChainName = u.str()
		operation.PoolAddress = u.str()
		if err := u.done(); nil != err {
			return nil, err
		}
		return operation, nil

	case removePoolTag:
		operation := &RemovePool{}
		operation.ChainName = u.str()
		if err := u.done(); nil != err {
			return nil, err
		}
		return operation, nil

	case updatePoolBalanceTag:
		operation := &UpdatePoolBalance{}
		operation.PoolAddress = u.str()
		operation.Balance = u.str()
		if err := u.done(); nil != err {
			return nil, err
		}
		return operation, nil

	case swapTag:
		operation := &Swap{}
		operation.FromToken = u.str()
		operation.ToToken = u.str()
		operation.DestinationAddress = u.str()
		operation.Amount = u.str()
		if err := u.done(); nil != err {
			return nil, err
		}
		return operation, nil

	default:
		return nil, fault.NotOperationRecord
	}
}
