// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	FeeRateParam      = "fee-rate"
	InterestRateParam = "default-interest-rate"
)

var hundred = decimal.NewFromInt(100)

// ParsePercent reads a percentage given on the command line. The text is kept
// as an exact decimal so that values like 0.1 do not pick up binary rounding.
func ParsePercent(name string, text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, NewInvalidParameterError(name, text, "not a number")
	}
	return d, nil
}

// NormalizeFeeRate converts an imbalance fee rate in percent into the fee
// divisor the currency network expects. A rate of zero disables fees.
func NormalizeFeeRate(percent decimal.Decimal) (uint64, error) {
	if percent.IsZero() {
		return 0, nil
	}
	if percent.IsNegative() {
		return 0, NewInvalidParameterError(FeeRateParam, percent, "the fee rate must not be negative")
	}
	divisor, remainder := hundred.QuoRem(percent, 0)
	if !remainder.IsZero() {
		return 0, NewInvalidParameterError(
			FeeRateParam,
			percent,
			"this fee rate is not usable: 100/%s = %s is not an integer",
			percent,
			hundred.DivRound(percent, 4),
		)
	}
	if !divisor.BigInt().IsUint64() {
		return 0, NewInvalidParameterError(FeeRateParam, percent, "the fee divisor %s is out of range", divisor)
	}
	return divisor.BigInt().Uint64(), nil
}

// NormalizeInterestRate scales an interest rate in percent by 100
func NormalizeInterestRate(percent decimal.Decimal) (int64, error) {
	scaled := percent.Mul(hundred)
	if !scaled.IsInteger() {
		return 0, NewInvalidParameterError(
			InterestRateParam,
			percent,
			"this default interest rate is not usable: %s%% * 100 = %s is not an integer",
			percent,
			scaled,
		)
	}
	if scaled.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || scaled.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, NewInvalidParameterError(InterestRateParam, percent, "out of range")
	}
	return scaled.IntPart(), nil
}
