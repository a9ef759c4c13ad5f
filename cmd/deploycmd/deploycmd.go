// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/pkg/application"
)

var app *application.TLDeploy

// NewCmds returns the deployment commands of tldeploy
func NewCmds(injectedApp *application.TLDeploy) []*cobra.Command {
	app = injectedApp
	return []*cobra.Command{
		newCurrencyNetworkCmd(),
		newExchangeCmd(),
		newIdentityImplementationCmd(),
		newIdentityProxyFactoryCmd(),
		newTestCmd(),
		newDeployNetworksCmd(),
		newRegisterNetworksCmd(),
		newGatewayCmd(),
	}
}

func osArgs() []string {
	return os.Args
}
