// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/networks"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

type DeployNetworksFlags struct {
	NetworksFile string
	File         string
	Transaction  flags.TransactionFlags
}

var deployNetworksFlags DeployNetworksFlags

// tldeploy deploy-networks
func newDeployNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy-networks",
		Short: "Deploy a set of currency networks",
		Long: `Deploy every currency network of a networks table, one after the other.

Without --networks-file the built-in table of 46 networks is deployed. A
table is a yaml or json file with optional "defaults" and a list of
"networks" records (name, symbol, decimals, feeDivisor, defaultInterestRate,
customInterests, preventMediatorInterests, expirationTime or expirationDate,
contractName). All records are validated before the first transaction.`,
		Args:    cobrautils.ExactArgs(0),
		PreRunE: applyConfig,
		RunE:    deployNetworks,
	}
	deployNetworksFlags = DeployNetworksFlags{}
	cmd.Flags().StringVar(&deployNetworksFlags.NetworksFile, "networks-file", "", "yaml or json table of the networks to deploy")
	cmd.Flags().StringVar(&deployNetworksFlags.File, "file", "", "output file for the addresses in json")
	groups := []flags.GroupedFlags{deployNetworksFlags.Transaction.AddToCmd(cmd, "deploy the currency networks")}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func loadNetworksTable(path string) (*networks.Table, error) {
	if path == "" {
		return networks.Default()
	}
	return networks.Load(app.Fs, path)
}

func deployNetworks(cmd *cobra.Command, _ []string) error {
	table, err := loadNetworksTable(deployNetworksFlags.NetworksFile)
	if err != nil {
		return err
	}
	cfgs, err := table.Configs()
	if err != nil {
		return err
	}
	s, err := newSession(cmd, &deployNetworksFlags.Transaction)
	if err != nil {
		return err
	}
	addresses, deployErr := s.deployer.DeployNetworkBatch(s.ctx, cfgs)
	s.close()

	result := &deployer.Result{}
	for i, address := range addresses {
		result.AddNetwork(address)
		ux.Logger.PrintAddress("CurrencyNetwork "+cfgs[i].Name, address)
	}
	if err := finishReport(result, deployNetworksFlags.File, deployErr); err != nil {
		return err
	}
	printSummary("Currency networks", result, networkNames(cfgs))
	return nil
}
