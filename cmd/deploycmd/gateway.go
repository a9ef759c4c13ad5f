// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

type GatewayFlags struct {
	Network           flags.NetworkFlags
	CollateralManager bool
	File              string
	Transaction       flags.TransactionFlags
}

var gatewayFlags GatewayFlags

// tldeploy gateway
func newGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway NAME SYMBOL",
		Short: "Deploy a currency network gated by a collateral gateway",
		Long: `Deploy a currency network gateway, optionally a collateral manager bound to
it, and a currency network that authorizes both. The gateway escrow that
holds the deposited collateral is read back from the gateway.

The currency network takes the same settings as the currencynetwork
command.`,
		Args:    cobrautils.ExactArgs(2),
		PreRunE: applyConfig,
		RunE:    deployGateway,
	}
	gatewayFlags = GatewayFlags{}
	cmd.Flags().BoolVar(&gatewayFlags.CollateralManager, "collateral-manager", false, "also deploy a collateral manager for the gateway")
	cmd.Flags().StringVar(&gatewayFlags.File, "file", "", "output file for the addresses in json")
	groups := []flags.GroupedFlags{
		gatewayFlags.Network.AddToCmd(cmd, true),
		gatewayFlags.Transaction.AddToCmd(cmd, "deploy the gateway"),
	}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func deployGateway(cmd *cobra.Command, args []string) error {
	cfg, err := gatewayFlags.Network.Config(args[0], args[1])
	if err != nil {
		return err
	}
	s, err := newSession(cmd, &gatewayFlags.Transaction)
	if err != nil {
		return err
	}
	deployment, deployErr := s.deployer.DeployGatewayStack(s.ctx, cfg, gatewayFlags.CollateralManager)
	s.close()

	result := &deployer.Result{}
	deployment.Record(result)
	if err := finishReport(result, gatewayFlags.File, deployErr); err != nil {
		printSummary("Confirmed before the failure", result, []string{cfg.Name})
		return err
	}
	ux.Logger.PrintAddress("Gateway", deployment.Gateway)
	ux.Logger.PrintAddress("Escrow", deployment.Escrow)
	if gatewayFlags.CollateralManager {
		ux.Logger.PrintAddress("Collateral manager", deployment.CollateralManager)
	}
	cfg.GatewayAddress = deployment.Gateway
	cfg.CollateralManagerAddress = deployment.CollateralManager
	ux.Logger.PrintAddress(cfg.String(), deployment.Network)
	if deployment.ExchangeRate != nil {
		ux.Logger.PrintToUser("Exchange rate: %s", deployment.ExchangeRate)
	}
	printSummary("Gateway", result, []string{cfg.Name})
	return nil
}
