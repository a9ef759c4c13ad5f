// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

import (
	"strings"

	"github.com/ava-labs/libevm/common"
)

// ValidateInterestFlags rejects interest settings the currency network
// cannot honor. defaultInterestRate is the already scaled value.
func ValidateInterestFlags(customInterests bool, defaultInterestRate int64, preventMediatorInterests bool) error {
	if customInterests && defaultInterestRate != 0 {
		return NewInvalidParameterError(
			"custom-interests",
			nil,
			"custom interests can only be set without a default interest rate, but was %d (%.2f%%)",
			defaultInterestRate,
			float64(defaultInterestRate)/100,
		)
	}
	if preventMediatorInterests && !customInterests {
		return NewInvalidParameterError(
			"prevent-mediator-interests",
			nil,
			"prevent mediator interests is not necessary if custom interests are disabled",
		)
	}
	return nil
}

// ValidateAddress accepts only 0x prefixed addresses in their EIP-55
// checksum encoding
func ValidateAddress(name string, candidate string) (common.Address, error) {
	candidate = strings.TrimSpace(candidate)
	if !strings.HasPrefix(candidate, "0x") || !common.IsHexAddress(candidate) {
		return common.Address{}, NewInvalidParameterError(name, candidate, "not a valid address")
	}
	address := common.HexToAddress(candidate)
	if address.Hex() != candidate {
		return common.Address{}, NewInvalidParameterError(
			name,
			candidate,
			"not a valid checksum address, expected %s",
			address.Hex(),
		)
	}
	return address, nil
}

// ValidateOptionalAddress returns the zero address for an empty candidate
func ValidateOptionalAddress(name string, candidate string) (common.Address, error) {
	if strings.TrimSpace(candidate) == "" {
		return common.Address{}, nil
	}
	return ValidateAddress(name, candidate)
}
