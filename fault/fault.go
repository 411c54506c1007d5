// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised            = ExistsError("already initialised")
	BalanceNotFound               = NotFoundError("balance not found")
	BlobNotFound                  = NotFoundError("blob not found")
	CertificateFileAlreadyExists  = ExistsError("certificate file already exists")
	DivisionByZero                = InvalidError("division by zero")
	FileAlreadyExists             = ExistsError("file already exists")
	FileNotFound                  = NotFoundError("file not found")
	InsufficientBalance           = InvalidError("insufficient balance")
	InvalidChain                  = InvalidError("invalid chain")
	InvalidCount                  = InvalidError("invalid count")
	InvalidCursor                 = InvalidError("invalid cursor")
	InvalidDecimal                = InvalidError("invalid decimal string")
	InvalidIpAddress              = InvalidError("invalid ip address")
	InvalidItem                   = InvalidError("invalid item")
	InvalidOwner                  = InvalidError("invalid owner")
	InvalidPoolAddress            = InvalidError("invalid pool address")
	InvalidPriceValue             = InvalidError("invalid price value")
	KeyFileAlreadyExists          = ExistsError("key file already exists")
	MissingParameters             = InvalidError("missing parameters")
	NameTooLong                   = InvalidError("name too long")
	NameTooShort                  = InvalidError("name too short")
	NotAContentHash               = InvalidError("not a content hash")
	NotAFileId                    = InvalidError("not a file id")
	NotAuthenticated              = InvalidError("operation is not correctly authenticated")
	NotAvailableDuringSynchronise = ProcessError("not available during synchronise")
	NotInitialised                = NotFoundError("not initialised")
	NotOperationRecord            = InvalidError("not an operation record")
	OracleRequestFail             = ProcessError("oracle request failed")
	PoolNotFound                  = NotFoundError("pool not found")
	PriceNotFound                 = NotFoundError("price not found")
	RateLimiting                  = ProcessError("rate limiting")
	SourceBalanceNotFound         = NotFoundError("source balance not found")
	TransactionAlreadyInUse       = ProcessError("transaction already in use")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// IsErrExists - determine if error is of exists class
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine if error is of invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - determine if error is of not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine if error is of process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
