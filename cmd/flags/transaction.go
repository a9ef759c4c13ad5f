// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"context"
	"math/big"
	"strings"

	"github.com/ava-labs/libevm/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/evm"
	"github.com/trustlines-protocol/tldeploy/pkg/key"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

const (
	nonceFlag     = "nonce"
	autoNonceFlag = "auto-nonce"
	gasPriceFlag  = constants.ConfigGasPriceKey
)

// TransactionFlags are shared by every command that sends transactions
type TransactionFlags struct {
	JSONRPC   string
	Gas       uint64
	GasPrice  string
	Nonce     uint64
	AutoNonce bool
	Contracts string
	key.SigningKeyFlags

	set *pflag.FlagSet
}

func (tf *TransactionFlags) AddToCmd(cmd *cobra.Command, goal string) GroupedFlags {
	return RegisterFlagGroup(cmd, "Transaction Flags", "show-transaction-flags", true, func(set *pflag.FlagSet) {
		tf.set = set
		set.StringVar(&tf.JSONRPC, constants.ConfigJSONRPCKey, constants.DefaultJSONRPCEndpoint, "json-rpc endpoint of the node")
		set.Uint64Var(&tf.Gas, "gas", 0, "gas limit of each transaction (default: estimated by the node)")
		set.StringVar(&tf.GasPrice, gasPriceFlag, "", "gas price in wei (default: suggested by the node)")
		set.Uint64Var(&tf.Nonce, nonceFlag, 0, "nonce of the first transaction, following ones are incremented")
		set.BoolVar(&tf.AutoNonce, autoNonceFlag, false, "read the nonce of the first transaction from the node")
		set.StringVar(
			&tf.Contracts,
			constants.ConfigContractsKey,
			"",
			"compiled contracts json file (default: ./contracts.json, then ~/.tldeploy/contracts.json)",
		)
		tf.SigningKeyFlags.AddToFlagSet(set, goal)
	})
}

// Validate checks the flags before anything is read or dialed
func (tf *TransactionFlags) Validate() error {
	if err := EnsureMutuallyExclusiveFlags(tf.set, nonceFlag, autoNonceFlag); err != nil {
		return err
	}
	if err := tf.SigningKeyFlags.Validate(); err != nil {
		return err
	}
	_, err := tf.ParseGasPrice()
	return err
}

// ParseGasPrice returns nil when no gas price was given
func (tf *TransactionFlags) ParseGasPrice() (*big.Int, error) {
	text := strings.TrimSpace(tf.GasPrice)
	if text == "" {
		return nil, nil
	}
	price, err := uint256.FromDecimal(text)
	if err != nil {
		return nil, params.NewInvalidParameterError(gasPriceFlag, text, "%s", err)
	}
	return price.ToBig(), nil
}

// TxOptions resolves the options of the first transaction. With
// --auto-nonce the nonce of from is read right away, without any nonce
// flag the deployer reads it before its first transaction.
func (tf *TransactionFlags) TxOptions(ctx context.Context, client evm.Client, from common.Address) (evm.TxOptions, error) {
	gasPrice, err := tf.ParseGasPrice()
	if err != nil {
		return evm.TxOptions{}, err
	}
	var nonce *uint64
	switch {
	case tf.set != nil && tf.set.Changed(nonceFlag):
		n := tf.Nonce
		nonce = &n
	case tf.AutoNonce:
		n, err := evm.NonceAt(ctx, client, from)
		if err != nil {
			return evm.TxOptions{}, err
		}
		nonce = &n
	}
	return evm.BuildTxOptions(tf.Gas, gasPrice, nonce), nil
}
