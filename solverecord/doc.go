// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package solverecord - record and operation types
//
// all data that crosses the operation surface is packed into a
// compact binary form: a varint64 tag followed by the fields in
// order, strings preceded by their varint64 length
//
// the file identifier is content addressed: a SHA3-256 digest over
// the chain identifier, the application identifier, the record name,
// the varint64 encoded name length and the content hash; identical
// inputs always derive the identical identifier
package solverecord
