// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/networks"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

type TestFlags struct {
	File         string
	ContractName string
	Transaction  flags.TransactionFlags
}

var testFlags TestFlags

// tldeploy test
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Deploy contracts for testing",
		Long: `Deploy three test currency networks, an exchange authorized on all of
them, an unwrapping ether contract, an identity implementation and an
identity proxy factory. The networks expire on 01/01/2100.`,
		Args:    cobrautils.ExactArgs(0),
		PreRunE: applyConfig,
		RunE:    deployTestEnvironment,
	}
	testFlags = TestFlags{}
	cmd.Flags().StringVar(&testFlags.File, "file", "", "output file for the addresses in json")
	cmd.Flags().StringVar(
		&testFlags.ContractName,
		flags.ContractNameFlag,
		constants.CurrencyNetworkContract,
		"name of the compiled currency network contract",
	)
	_ = cmd.Flags().MarkHidden(flags.ContractNameFlag)
	groups := []flags.GroupedFlags{testFlags.Transaction.AddToCmd(cmd, "deploy the test contracts")}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func deployTestEnvironment(cmd *cobra.Command, _ []string) error {
	cfgs := networks.TestPreset(constants.TestNetworkExpirationTime)
	for i := range cfgs {
		cfgs[i].ContractName = testFlags.ContractName
	}
	s, err := newSession(cmd, &testFlags.Transaction)
	if err != nil {
		return err
	}
	result, err := s.deployer.DeployTestEnvironment(s.ctx, cfgs)
	s.close()
	if err := finishReport(result, testFlags.File, err); err != nil {
		printSummary("Confirmed before the failure", result, networkNames(cfgs))
		return err
	}

	report := result.Report()
	ux.Logger.PrintToUser("Exchange: %s", report.Exchange)
	ux.Logger.PrintToUser("Unwrapping ether: %s", report.UnwEth)
	ux.Logger.PrintToUser("Identity proxy factory: %s", report.IdentityProxyFactory)
	ux.Logger.PrintToUser("Identity implementation: %s", report.IdentityImplementation)
	for i, network := range result.Networks() {
		cfg := cfgs[i]
		cfg.ExchangeAddress, _ = result.Get(deployer.RoleExchange)
		ux.Logger.PrintToUser("%s at %s", cfg, network.Hex())
	}
	printSummary("Test environment", result, networkNames(cfgs))
	return nil
}
