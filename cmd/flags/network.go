// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

const (
	customInterestsFlag   = "custom-interests"
	noCustomInterestsFlag = "no-custom-interests"
	exchangeContractFlag  = "exchange-contract"
	// ContractNameFlag selects the compiled currency network variant
	ContractNameFlag = "currency-network-contract-name"
)

// NetworkFlags are the settings of a single currency network
type NetworkFlags struct {
	Decimals                 uint8
	FeeRate                  string
	DefaultInterestRate      string
	CustomInterests          bool
	NoCustomInterests        bool
	PreventMediatorInterests bool
	ExchangeContract         string
	ContractName             string
	ExpirationTime           uint64
	ExpirationDate           string

	set *pflag.FlagSet
}

// AddToCmd registers the network flags. The exchange flag is only offered
// where the network can be bound to an existing exchange.
func (nf *NetworkFlags) AddToCmd(cmd *cobra.Command, withExchange bool) GroupedFlags {
	return RegisterFlagGroup(cmd, "Currency Network Flags", "show-network-flags", true, func(set *pflag.FlagSet) {
		nf.set = set
		set.Uint8Var(&nf.Decimals, "decimals", constants.DefaultDecimals, "number of decimals of the network")
		set.StringVar(&nf.FeeRate, params.FeeRateParam, constants.DefaultFeeRate, "imbalance fee rate of the network in percent")
		set.StringVar(&nf.DefaultInterestRate, params.InterestRateParam, "0", "default interest rate in percent")
		set.BoolVar(&nf.CustomInterests, customInterestsFlag, false, "allow users to set custom interest rates, the default interest rate must then be 0")
		set.BoolVar(&nf.NoCustomInterests, noCustomInterestsFlag, false, "do not allow custom interest rates (default)")
		set.BoolVar(
			&nf.PreventMediatorInterests,
			"prevent-mediator-interests",
			false,
			"disallow payments that would make mediators pay interests, requires custom interests",
		)
		if withExchange {
			set.StringVar(&nf.ExchangeContract, exchangeContractFlag, "", "checksummed address of the exchange contract to authorize")
		}
		set.StringVar(&nf.ContractName, ContractNameFlag, constants.CurrencyNetworkContract, "name of the compiled currency network contract")
		set.Uint64Var(&nf.ExpirationTime, params.ExpirationTimeParam, 0, "unix timestamp at which the network expires (default: never)")
		set.StringVar(&nf.ExpirationDate, params.ExpirationDateParam, "", `date at which the network expires, e.g. "2020-09-28" or "2020-09-28T13:56"`)
		_ = set.MarkHidden(ContractNameFlag)
	})
}

// Config normalizes the flags into the configuration of the network name
func (nf *NetworkFlags) Config(name string, symbol string) (deployer.NetworkConfig, error) {
	if err := EnsureMutuallyExclusiveFlags(nf.set, customInterestsFlag, noCustomInterestsFlag); err != nil {
		return deployer.NetworkConfig{}, err
	}
	feePercent, err := params.ParsePercent(params.FeeRateParam, nf.FeeRate)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	feeDivisor, err := params.NormalizeFeeRate(feePercent)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	interestPercent, err := params.ParsePercent(params.InterestRateParam, nf.DefaultInterestRate)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	interestRate, err := params.NormalizeInterestRate(interestPercent)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	var timestamp *uint64
	var date *string
	if nf.set.Changed(params.ExpirationTimeParam) {
		timestamp = &nf.ExpirationTime
	}
	if nf.set.Changed(params.ExpirationDateParam) {
		date = &nf.ExpirationDate
	}
	expiration, err := params.ResolveExpiration(timestamp, date)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	exchange, err := params.ValidateOptionalAddress(exchangeContractFlag, nf.ExchangeContract)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	cfg := deployer.NetworkConfig{
		Name:                     name,
		Symbol:                   symbol,
		Decimals:                 nf.Decimals,
		FeeDivisor:               feeDivisor,
		DefaultInterestRate:      interestRate,
		CustomInterests:          nf.CustomInterests && !nf.NoCustomInterests,
		PreventMediatorInterests: nf.PreventMediatorInterests,
		ExpirationTime:           expiration,
		ExchangeAddress:          exchange,
		ContractName:             nf.ContractName,
	}
	if err := cfg.Validate(); err != nil {
		return deployer.NetworkConfig{}, err
	}
	return cfg, nil
}
