// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/ava-labs/libevm/common"
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

var exchangeFlags flags.TransactionFlags

// tldeploy exchange
func newExchangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exchange",
		Short:   "Deploy an exchange contract and a contract to wrap ether",
		Long:    "Deploy an exchange contract and an unwrapping ether contract bound to it.",
		Args:    cobrautils.ExactArgs(0),
		PreRunE: applyConfig,
		RunE:    deployExchange,
	}
	exchangeFlags = flags.TransactionFlags{}
	groups := []flags.GroupedFlags{exchangeFlags.AddToCmd(cmd, "deploy the exchange")}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func deployExchange(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, &exchangeFlags)
	if err != nil {
		return err
	}
	exchange, unwEth, err := s.deployer.DeployExchangeStack(s.ctx)
	s.close()
	if exchange != (common.Address{}) {
		ux.Logger.PrintAddress("Exchange", exchange)
	}
	if err != nil {
		return err
	}
	ux.Logger.PrintAddress("Unwrapping ether", unwEth)
	return nil
}
