// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

// printSummary shows the confirmed contracts of result as a table. Currency
// networks are labeled with their names where known.
func printSummary(title string, result *deployer.Result, networkNames []string) {
	if result.Empty() {
		return
	}
	rows := make([][2]string, 0, len(result.Entries()))
	network := 0
	for _, entry := range result.Entries() {
		label := string(entry.Role)
		if entry.Role == deployer.NetworkRole(network) {
			if network < len(networkNames) {
				label = networkNames[network]
			}
			network++
		}
		rows = append(rows, [2]string{label, entry.Address.Hex()})
	}
	ux.Logger.Separator()
	ux.Logger.PrintToUser("%s", ux.AddressTable(title, rows).Render())
}

// finishReport writes result when a path was given, also after a failed
// deployment, so that the confirmed contracts are not lost
func finishReport(result *deployer.Result, path string, deployErr error) error {
	if result.Empty() {
		return deployErr
	}
	if err := writeReport(result, path); err != nil {
		if deployErr != nil {
			app.Log.Error("writing the partial report failed")
			return deployErr
		}
		return err
	}
	return deployErr
}

func networkNames(cfgs []deployer.NetworkConfig) []string {
	names := make([]string, len(cfgs))
	for i, cfg := range cfgs {
		names[i] = cfg.Name
	}
	return names
}
