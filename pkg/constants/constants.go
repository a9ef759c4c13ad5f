// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

const (
	BaseDirName = ".tldeploy"
	LogDir      = "logs"
	LogName     = "tldeploy"

	ConfigFileName = "config.json"
	EnvPrefix      = "TLDEPLOY"

	WriteReadReadPerms     = 0o644
	MaxLogFileSize         = 4
	MaxNumOfLogFiles       = 5
	RetainOldFiles         = 0 // retain all old log files
	DefaultLogLevel        = "ERROR"
	DefaultJSONRPCEndpoint = "http://127.0.0.1:8545"
	DefaultContractsFile   = "contracts.json"

	DefaultDecimals = 4
	DefaultFeeRate  = "0.1"

	// 01/01/2100
	TestNetworkExpirationTime uint64 = 4_102_444_800
)

// contract names in the compiled artifacts file
const (
	CurrencyNetworkContract         = "CurrencyNetwork"
	TestCurrencyNetworkContract     = "TestCurrencyNetwork"
	ExchangeContract                = "Exchange"
	UnwEthContract                  = "UnwEth"
	IdentityContract                = "Identity"
	IdentityProxyFactoryContract    = "IdentityProxyFactory"
	CurrencyNetworkRegistryContract = "CurrencyNetworkRegistry"
	GatewayContract                 = "CurrencyNetworkGateway"
	CollateralManagerContract       = "CollateralManager"
)

// config keys, also bound to flags and TLDEPLOY_* environment variables
const (
	ConfigJSONRPCKey          = "jsonrpc"
	ConfigKeystoreKey         = "keystore"
	ConfigKeystorePasswordKey = "keystore-password"
	ConfigContractsKey        = "contracts"
	ConfigGasPriceKey         = "gas-price"
	ConfigPrivateKeyKey       = "private-key"
)
