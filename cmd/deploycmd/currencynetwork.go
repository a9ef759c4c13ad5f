// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

type CurrencyNetworkFlags struct {
	Network     flags.NetworkFlags
	Transaction flags.TransactionFlags
}

var currencyNetworkFlags CurrencyNetworkFlags

// tldeploy currencynetwork
func newCurrencyNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currencynetwork NAME SYMBOL",
		Short: "Deploy a currency network contract",
		Long: `Deploy a currency network contract with custom settings and optionally
authorize an exchange contract to transfer on it.

The fee rate and the default interest rate are given in percent. The fee
rate must divide 100 into an integer fee divisor, e.g. 0.1 gives a divisor
of 1000. Custom interests can only be enabled without a default interest
rate.`,
		Args:    cobrautils.ExactArgs(2),
		PreRunE: applyConfig,
		RunE:    deployCurrencyNetwork,
	}
	currencyNetworkFlags = CurrencyNetworkFlags{}
	groups := []flags.GroupedFlags{
		currencyNetworkFlags.Network.AddToCmd(cmd, true),
		currencyNetworkFlags.Transaction.AddToCmd(cmd, "deploy the currency network"),
	}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func deployCurrencyNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := currencyNetworkFlags.Network.Config(args[0], args[1])
	if err != nil {
		return err
	}
	s, err := newSession(cmd, &currencyNetworkFlags.Transaction)
	if err != nil {
		return err
	}
	address, err := s.deployer.DeployNetwork(s.ctx, cfg)
	s.close()
	if err != nil {
		return err
	}
	ux.Logger.PrintAddress(cfg.String(), address)
	return nil
}
