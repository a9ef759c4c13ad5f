// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/ava-labs/libevm/common"
	"github.com/spf13/afero"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
)

// Role names a deployed contract within a deployment
type Role string

const (
	RoleExchange               Role = "exchange"
	RoleUnwrappedEther         Role = "unwrapped-ether"
	RoleIdentityImplementation Role = "identity-implementation"
	RoleIdentityProxyFactory   Role = "identity-proxy-factory"
	RoleGateway                Role = "gateway"
	RoleEscrow                 Role = "escrow"
	RoleCollateralManager      Role = "collateral-manager"
)

func NetworkRole(index int) Role {
	return Role(fmt.Sprintf("currency-network[%d]", index))
}

type Entry struct {
	Role    Role
	Address common.Address
}

// Result collects the addresses of a deployment in the order they were
// confirmed
type Result struct {
	entries  []Entry
	networks []common.Address
}

// Set records addr for role, replacing an earlier address in place
func (r *Result) Set(role Role, addr common.Address) {
	for i := range r.entries {
		if r.entries[i].Role == role {
			r.entries[i].Address = addr
			return
		}
	}
	r.entries = append(r.entries, Entry{Role: role, Address: addr})
}

// AddNetwork records the next currency network and returns its role
func (r *Result) AddNetwork(addr common.Address) Role {
	role := NetworkRole(len(r.networks))
	r.networks = append(r.networks, addr)
	r.entries = append(r.entries, Entry{Role: role, Address: addr})
	return role
}

func (r *Result) Get(role Role) (common.Address, bool) {
	for _, e := range r.entries {
		if e.Role == role {
			return e.Address, true
		}
	}
	return common.Address{}, false
}

func (r *Result) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

func (r *Result) Networks() []common.Address {
	return append([]common.Address(nil), r.networks...)
}

func (r *Result) Empty() bool {
	return len(r.entries) == 0
}

// Report is the JSON document written after a deployment. Addresses are
// checksummed and parts that were not deployed are left out.
type Report struct {
	Networks               []string `json:"networks,omitempty"`
	Exchange               string   `json:"exchange,omitempty"`
	UnwEth                 string   `json:"unwEth,omitempty"`
	IdentityImplementation string   `json:"identityImplementation,omitempty"`
	IdentityProxyFactory   string   `json:"identityProxyFactory,omitempty"`
	Gateway                string   `json:"gateway,omitempty"`
	Escrow                 string   `json:"escrow,omitempty"`
	CollateralManager      string   `json:"collateralManager,omitempty"`
}

func (r *Result) Report() Report {
	report := Report{}
	for _, network := range r.networks {
		report.Networks = append(report.Networks, network.Hex())
	}
	fields := map[Role]*string{
		RoleExchange:               &report.Exchange,
		RoleUnwrappedEther:         &report.UnwEth,
		RoleIdentityImplementation: &report.IdentityImplementation,
		RoleIdentityProxyFactory:   &report.IdentityProxyFactory,
		RoleGateway:                &report.Gateway,
		RoleEscrow:                 &report.Escrow,
		RoleCollateralManager:      &report.CollateralManager,
	}
	for _, e := range r.entries {
		if field, ok := fields[e.Role]; ok {
			*field = e.Address.Hex()
		}
	}
	return report
}

// WriteReport writes the report of r as indented JSON
func (r *Result) WriteReport(fs afero.Fs, path string) error {
	data, err := json.MarshalIndent(r.Report(), "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, perms.ReadWriteExecute); err != nil {
			return fmt.Errorf("failed creating report directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, append(data, '\n'), constants.WriteReadReadPerms); err != nil {
		return fmt.Errorf("failed writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport
func ReadReport(fs afero.Fs, path string) (Report, error) {
	report := Report{}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return report, fmt.Errorf("failed reading report %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return report, fmt.Errorf("failed parsing report %s: %w", path, err)
	}
	return report, nil
}
