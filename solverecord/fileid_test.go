// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package solverecord_test

import (
	"testing"

	"github.com/solvernet/solverd/solverecord"
)

var (
	testChainId       = []byte("chain-0000000000000000000000000001")
	testApplicationId = []byte("application-00000000000000000001")
)

// identical inputs must always derive the identical identifier
func TestFileIdDeterministic(t *testing.T) {

	contentRef := solverecord.NewContentHash([]byte("file payload"))

	one := solverecord.NewFileId(testChainId, testApplicationId, "report.json", contentRef)
	two := solverecord.NewFileId(testChainId, testApplicationId, "report.json", contentRef)

	if one != two {
		t.Errorf("identical inputs derived different ids: %s and %s", one, two)
	}
}

// changing any single input field must change the identifier
func TestFileIdInjective(t *testing.T) {

	contentRef := solverecord.NewContentHash([]byte("file payload"))
	otherRef := solverecord.NewContentHash([]byte("other payload"))

	base := solverecord.NewFileId(testChainId, testApplicationId, "report.json", contentRef)

	variants := []solverecord.FileId{
		solverecord.NewFileId([]byte("chain-0000000000000000000000000002"), testApplicationId, "report.json", contentRef),
		solverecord.NewFileId(testChainId, []byte("application-00000000000000000002"), "report.json", contentRef),
		solverecord.NewFileId(testChainId, testApplicationId, "report.txt", contentRef),
		solverecord.NewFileId(testChainId, testApplicationId, "report.json", otherRef),
	}

	for i, v := range variants {
		if base == v {
			t.Errorf("%d: variant input derived the base id: %s", i, v)
		}
	}
}

// external form is unpadded base64 and must round trip
func TestFileIdText(t *testing.T) {

	contentRef := solverecord.NewContentHash([]byte("file payload"))
	fileId := solverecord.NewFileId(testChainId, testApplicationId, "report.json", contentRef)

	text, err := fileId.MarshalText()
	if nil != err {
		t.Fatalf("marshal error: %s", err)
	}
	if 43 != len(text) { // 32 bytes → 43 base64 characters, no padding
		t.Errorf("text length: got: %d  expected: 43", len(text))
	}
	for _, c := range text {
		if '=' == c {
			t.Errorf("padded base64: %q", text)
		}
	}

	var decoded solverecord.FileId
	err = decoded.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal error: %s", err)
	}
	if decoded != fileId {
		t.Errorf("round trip: got: %s  expected: %s", decoded, fileId)
	}

	var bad solverecord.FileId
	if nil == bad.UnmarshalText([]byte("too-short")) {
		t.Error("short text must not unmarshal")
	}
}
