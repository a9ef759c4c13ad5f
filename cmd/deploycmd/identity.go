// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

var (
	identityImplementationFlags flags.TransactionFlags
	identityProxyFactoryFlags   flags.TransactionFlags
)

// tldeploy identity-implementation
func newIdentityImplementationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity-implementation",
		Short: "Deploy an identity contract without initializing it",
		Long: `Deploy an identity contract without initializing it. It can be used as
the implementation of identity proxies.`,
		Args:    cobrautils.ExactArgs(0),
		PreRunE: applyConfig,
		RunE:    deployIdentityImplementation,
	}
	identityImplementationFlags = flags.TransactionFlags{}
	groups := []flags.GroupedFlags{identityImplementationFlags.AddToCmd(cmd, "deploy the identity implementation")}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func deployIdentityImplementation(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, &identityImplementationFlags)
	if err != nil {
		return err
	}
	implementation, err := s.deployer.DeployIdentityImplementation(s.ctx)
	s.close()
	if err != nil {
		return err
	}
	ux.Logger.PrintAddress("Identity implementation", implementation)
	return nil
}

// tldeploy identity-proxy-factory
func newIdentityProxyFactoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "identity-proxy-factory",
		Short:   "Deploy an identity proxy factory",
		Long:    "Deploy an identity proxy factory, which can be used to create proxies for identity contracts.",
		Args:    cobrautils.ExactArgs(0),
		PreRunE: applyConfig,
		RunE:    deployIdentityProxyFactory,
	}
	identityProxyFactoryFlags = flags.TransactionFlags{}
	groups := []flags.GroupedFlags{identityProxyFactoryFlags.AddToCmd(cmd, "deploy the identity proxy factory")}
	cmd.SetHelpFunc(flags.WithGroupedHelp(groups, osArgs))
	return cmd
}

func deployIdentityProxyFactory(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd, &identityProxyFactoryFlags)
	if err != nil {
		return err
	}
	factory, err := s.deployer.DeployIdentityProxyFactory(s.ctx)
	s.close()
	if err != nil {
		return err
	}
	ux.Logger.PrintAddress("Identity proxy factory", factory)
	return nil
}
