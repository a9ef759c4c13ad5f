// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateInterestFlags(t *testing.T) {
	tests := []struct {
		name        string
		custom      bool
		rate        int64
		prevent     bool
		expectError bool
	}{
		{name: "custom interests preventing mediator interests", custom: true, rate: 0, prevent: true},
		{name: "prevent without custom interests", custom: false, rate: 0, prevent: true, expectError: true},
		{name: "custom interests with default rate", custom: true, rate: 5, prevent: false, expectError: true},
		{name: "default rate only", custom: false, rate: 250, prevent: false},
		{name: "nothing set", custom: false, rate: 0, prevent: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterestFlags(tt.custom, tt.rate, tt.prevent)
			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	const checksummed = "0x12657128d7fa4291647eC3b0147E5fA6EebD388A"
	tests := []struct {
		name        string
		candidate   string
		expectError bool
	}{
		{name: "checksummed", candidate: checksummed},
		{name: "lowercase", candidate: "0x12657128d7fa4291647ec3b0147e5fa6eebd388a", expectError: true},
		{name: "bad checksum", candidate: "0x12657128D7fa4291647eC3b0147E5fA6EebD388A", expectError: true},
		{name: "no prefix", candidate: "12657128d7fa4291647eC3b0147E5fA6EebD388A", expectError: true},
		{name: "too short", candidate: "0x12657128d7fa", expectError: true},
		{name: "not hex", candidate: "0xZZ657128d7fa4291647eC3b0147E5fA6EebD388A", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			address, err := ValidateAddress("exchange-contract", tt.candidate)
			if tt.expectError {
				require.ErrorIs(err, ErrInvalidParameter)
				require.Contains(err.Error(), tt.candidate)
				return
			}
			require.NoError(err)
			require.Equal(tt.candidate, address.Hex())
		})
	}
}

func TestValidateOptionalAddress(t *testing.T) {
	require := require.New(t)
	address, err := ValidateOptionalAddress("exchange-contract", "")
	require.NoError(err)
	require.Zero(address)
}
