// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"errors"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

const (
	registryFlag = "registry"
	reportFlag   = "report"
)

type RegisterNetworksFlags struct {
	Registry    string
	Report      string
	Transaction flags.TransactionFlags
}

var registerNetworksFlags RegisterNetworksFlags

// tldeploy register-networks
func newRegisterNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-networks [NETWORK_ADDRESS...]",
		Short: "Register currency networks in the currency network registry",
		Long: `Register currency networks in the currency network registry at --registry.

The networks are given as checksummed addresses, or read from the
"networks" of a report written by the test or deploy-networks commands.`,
		PreRunE: applyConfig,
		RunE:    registerNetworks,
	}
	registerNetworksFlags = RegisterNetworksFlags{}
	cmd.Flags().StringVar(&registerNetworksFlags.Registry, registryFlag, "", "checksummed address of the currency network registry")
	cmd.Flags().StringVar(&registerNetworksFlags.Report, reportFlag, "", "json report file to read the network addresses from")
	groups := []flags.GroupedFlags{registerNetworksFlags.Transaction.AddToCmd(cmd, "register the currency networks")}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

// networksToRegister reads the addresses from args or from the report
func networksToRegister(cmd *cobra.Command, args []string) ([]common.Address, error) {
	candidates := args
	name := "network"
	switch {
	case len(args) > 0 && registerNetworksFlags.Report != "":
		return nil, cobrautils.NewUsageError(cmd, fmt.Errorf("network addresses and --%s are mutually exclusive", reportFlag))
	case registerNetworksFlags.Report != "":
		report, err := deployer.ReadReport(app.Fs, registerNetworksFlags.Report)
		if err != nil {
			return nil, err
		}
		candidates = report.Networks
		name = reportFlag
	case len(args) == 0:
		return nil, cobrautils.NewUsageError(cmd, fmt.Errorf("no networks given: pass network addresses or --%s", reportFlag))
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("report %s does not list any network", registerNetworksFlags.Report)
	}
	addresses := make([]common.Address, 0, len(candidates))
	for _, candidate := range candidates {
		address, err := params.ValidateAddress(name, candidate)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

func registerNetworks(cmd *cobra.Command, args []string) error {
	if registerNetworksFlags.Registry == "" {
		return cobrautils.NewUsageError(cmd, errors.New("--registry is required"))
	}
	registry, err := params.ValidateAddress(registryFlag, registerNetworksFlags.Registry)
	if err != nil {
		return err
	}
	networks, err := networksToRegister(cmd, args)
	if err != nil {
		return err
	}
	s, err := newSession(cmd, &registerNetworksFlags.Transaction)
	if err != nil {
		return err
	}
	registered, err := s.deployer.RegisterNetworks(s.ctx, registry, networks)
	s.close()
	for _, network := range registered {
		ux.Logger.PrintAddress("CurrencyNetwork registered", network)
	}
	return err
}
