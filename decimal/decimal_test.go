// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package decimal_test

import (
	"testing"

	"github.com/solvernet/solverd/decimal"
	"github.com/solvernet/solverd/fault"
)

// round trip valid decimal strings
func TestParseValid(t *testing.T) {

	testData := []struct {
		in       string
		expected string
	}{
		{"0", "0"},
		{"100", "100"},
		{"14.21", "14.21"},
		{"2000", "2000"},
		{"-1407.46", "-1407.46"},
		{"+7.50", "7.5"},
		{"0.00000001", "0.00000001"},
		{".5", "0.5"},
		{"5.", "5"},
	}

	for i, item := range testData {
		d, err := decimal.Parse(item.in)
		if nil != err {
			t.Fatalf("%d: parse: %q  unexpected error: %s", i, item.in, err)
		}
		if d.String() != item.expected {
			t.Errorf("%d: parse: %q  got: %q  expected: %q", i, item.in, d.String(), item.expected)
		}
	}
}

// malformed strings must be rejected
func TestParseInvalid(t *testing.T) {

	testData := []string{
		"",
		"-",
		"+",
		".",
		"abc",
		"12a",
		"1.2.3",
		"1,5",
		"1e5",
		" 10",
	}

	for i, s := range testData {
		_, err := decimal.Parse(s)
		if fault.InvalidDecimal != err {
			t.Errorf("%d: parse: %q  got: %v  expected: %v", i, s, err, fault.InvalidDecimal)
		}
	}
}

// exact arithmetic used by swap settlement
func TestArithmetic(t *testing.T) {

	ethPrice, _ := decimal.Parse("2000")
	solPrice, _ := decimal.Parse("14.21")
	amount, _ := decimal.Parse("10")

	rate, err := ethPrice.Div(solPrice)
	if nil != err {
		t.Fatalf("div error: %s", err)
	}

	// 2000/14.21 ≈ 140.74595355
	if "140.74595355" != rate.String() {
		t.Errorf("rate: got: %q  expected: %q", rate.String(), "140.74595355")
	}

	toAmount := amount.Mul(rate)
	if "1407.45953554" != toAmount.String() {
		t.Errorf("toAmount: got: %q  expected: %q", toAmount.String(), "1407.45953554")
	}

	hundred, _ := decimal.Parse("100")
	if hundred.Sub(amount).String() != "90" {
		t.Errorf("sub: got: %q  expected: %q", hundred.Sub(amount).String(), "90")
	}
	if hundred.Add(amount).String() != "110" {
		t.Errorf("add: got: %q  expected: %q", hundred.Add(amount).String(), "110")
	}

	zero := decimal.Zero()
	if !zero.IsZero() {
		t.Error("zero is not zero")
	}
	if zero.IsPositive() {
		t.Error("zero is positive")
	}
	if _, err := amount.Div(zero); fault.DivisionByZero != err {
		t.Errorf("div by zero: got: %v  expected: %v", err, fault.DivisionByZero)
	}

	// boundary used by swap validation: balance >= amount
	if hundred.Cmp(hundred) < 0 {
		t.Error("equal amounts must not compare as insufficient")
	}
	if !(amount.Cmp(hundred) < 0) {
		t.Error("10 < 100 expected")
	}
}
