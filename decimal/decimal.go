// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Solvernet Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package decimal - exact decimal amounts for the balance ledger
//
// balances and swap amounts are transported as decimal strings; this
// package parses them into exact rational values so that ledger
// arithmetic never accumulates binary floating point error
package decimal

import (
	"math/big"
	"strings"

	"github.com/solvernet/solverd/fault"
)

// DisplayDigits - fractional digits kept when rendering back to a string
//
// an exchange rate is a ratio of two prices so the product of amount
// and rate is rarely a terminating decimal; rendering rounds to this
// fixed scale
const DisplayDigits = 8

// Decimal - an exact decimal amount
//
// the zero value is usable and represents zero
type Decimal struct {
	rat *big.Rat
}

// Zero - the zero amount
func Zero() Decimal {
	return Decimal{rat: new(big.Rat)}
}

// Parse - convert a decimal string to a Decimal
//
// accepted form: optional sign, digits, optional "." and more digits
// anything else returns fault.InvalidDecimal
func Parse(s string) (Decimal, error) {

	t := s
	negative := false
	if strings.HasPrefix(t, "-") {
		negative = true
		t = t[1:]
	} else if strings.HasPrefix(t, "+") {
		t = t[1:]
	}

	intPart := t
	fracPart := ""
	if i := strings.IndexByte(t, '.'); i >= 0 {
		intPart = t[:i]
		fracPart = t[i+1:]
	}

	if 0 == len(intPart) && 0 == len(fracPart) {
		return Decimal{}, fault.InvalidDecimal
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Decimal{}, fault.InvalidDecimal
	}

	digits := intPart + fracPart
	numerator, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, fault.InvalidDecimal
	}

	denominator := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(fracPart))), nil)

	r := new(big.Rat).SetFrac(numerator, denominator)
	if negative {
		r.Neg(r)
	}
	return Decimal{rat: r}, nil
}

// ensure a string is entirely ASCII digits (empty is allowed)
func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// value - access the rational, treating the zero value as zero
func (d Decimal) value() *big.Rat {
	if nil == d.rat {
		return new(big.Rat)
	}
	return d.rat
}

// Add - sum of two amounts
func (d Decimal) Add(x Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Add(d.value(), x.value())}
}

// Sub - difference of two amounts
func (d Decimal) Sub(x Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Sub(d.value(), x.value())}
}

// Mul - product of two amounts
func (d Decimal) Mul(x Decimal) Decimal {
	return Decimal{rat: new(big.Rat).Mul(d.value(), x.value())}
}

// Div - quotient of two amounts
//
// division by zero returns fault.DivisionByZero
func (d Decimal) Div(x Decimal) (Decimal, error) {
	if 0 == x.value().Sign() {
		return Decimal{}, fault.DivisionByZero
	}
	return Decimal{rat: new(big.Rat).Quo(d.value(), x.value())}, nil
}

// Cmp - compare two amounts: -1, 0 or +1
func (d Decimal) Cmp(x Decimal) int {
	return d.value().Cmp(x.value())
}

// IsPositive - strictly greater than zero
func (d Decimal) IsPositive() bool {
	return d.value().Sign() > 0
}

// IsZero - exactly zero
func (d Decimal) IsZero() bool {
	return 0 == d.value().Sign()
}

// MarshalText - render as a decimal string for JSON encoding
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText - parse a decimal string for JSON decoding
func (d *Decimal) UnmarshalText(s []byte) error {
	parsed, err := Parse(string(s))
	if nil != err {
		return err
	}
	*d = parsed
	return nil
}

// String - render as a decimal string
//
// exact values are rendered exactly; non-terminating values are
// rounded to DisplayDigits fractional digits; trailing zeros in the
// fraction are removed
func (d Decimal) String() string {
	s := d.value().FloatString(DisplayDigits)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if "" == s || "-" == s {
		return "0"
	}
	return s
}
