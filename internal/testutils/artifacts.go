// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/pkg/contracts"
)

const networkInputs = `[
	{"name":"_name","type":"string"},
	{"name":"_symbol","type":"string"},
	{"name":"_decimals","type":"uint8"},
	{"name":"_capacityImbalanceFeeDivisor","type":"uint16"},
	{"name":"_defaultInterestRate","type":"int16"},
	{"name":"_customInterests","type":"bool"},
	{"name":"_preventMediatorInterests","type":"bool"},
	{"name":"_expirationTime","type":"uint256"},
	{"name":"_authorizedAddresses","type":"address[]"}
]`

// ContractsJSON mimics the compiled contracts file. The bytecode is a
// placeholder, contracts are never executed by the test chain.
const ContractsJSON = `{
"CurrencyNetwork": {
	"abi": [{"type":"constructor","inputs":` + networkInputs + `,"stateMutability":"nonpayable"}],
	"bytecode": "0x6080604052"
},
"TestCurrencyNetwork": {
	"abi": [{"type":"function","name":"init","inputs":` + networkInputs + `,"outputs":[],"stateMutability":"nonpayable"}],
	"bytecode": "0x6080604053"
},
"Exchange": {
	"abi": [],
	"bytecode": "0x6080604054"
},
"UnwEth": {
	"abi": [
		{"type":"constructor","inputs":[{"name":"_exchange","type":"address"}],"stateMutability":"nonpayable"},
		{"type":"function","name":"exchange","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"}
	],
	"bytecode": "0x6080604055"
},
"Identity": {
	"abi": [],
	"bytecode": "0x6080604056"
},
"IdentityProxyFactory": {
	"abi": [],
	"bytecode": "0x6080604057"
},
"CurrencyNetworkRegistry": {
	"abi": [{"type":"function","name":"addCurrencyNetwork","inputs":[{"name":"_address","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}],
	"bytecode": "0x6080604058"
},
"CurrencyNetworkGateway": {
	"abi": [
		{"type":"function","name":"setGatedCurrencyNetwork","inputs":[{"name":"_gatedCurrencyNetwork","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"escrowAddress","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
		{"type":"function","name":"exchangeRate","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
	],
	"bytecode": "0x6080604059"
},
"CollateralManager": {
	"abi": [{"type":"constructor","inputs":[{"name":"_gateway","type":"address"}],"stateMutability":"nonpayable"}],
	"bytecode": "0x608060405a"
}
}`

// Artifacts parses ContractsJSON
func Artifacts(t *testing.T) *contracts.Artifacts {
	artifacts, err := contracts.Parse([]byte(ContractsJSON))
	require.NoError(t, err)
	return artifacts
}

// ArtifactsFs returns an in-memory filesystem holding ContractsJSON at path
func ArtifactsFs(t *testing.T, path string) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(ContractsJSON), 0o644))
	return fs
}
