// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"fmt"

	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
)

// DeployExchangeStack deploys the exchange and the unwrapped ether contract
// bound to it
func (d *Deployer) DeployExchangeStack(ctx context.Context) (common.Address, common.Address, error) {
	exchange, err := d.deploy(ctx, "exchange", constants.ExchangeContract)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	unwEth, err := d.deploy(ctx, "unwrapped ether", constants.UnwEthContract, exchange)
	if err != nil {
		return exchange, common.Address{}, err
	}
	return exchange, unwEth, nil
}

func (d *Deployer) DeployIdentityImplementation(ctx context.Context) (common.Address, error) {
	return d.deploy(ctx, "identity implementation", constants.IdentityContract)
}

func (d *Deployer) DeployIdentityProxyFactory(ctx context.Context) (common.Address, error) {
	return d.deploy(ctx, "identity proxy factory", constants.IdentityProxyFactoryContract)
}

// DeployIdentityStack deploys the identity implementation and the proxy
// factory. Both are required.
func (d *Deployer) DeployIdentityStack(ctx context.Context) (common.Address, common.Address, error) {
	implementation, err := d.DeployIdentityImplementation(ctx)
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	factory, err := d.DeployIdentityProxyFactory(ctx)
	if err != nil {
		return implementation, common.Address{}, err
	}
	return implementation, factory, nil
}

// DeployTestEnvironment deploys the exchange stack, the given networks
// authorized for that exchange and the identity stack. The returned result
// holds everything confirmed so far, also on error.
func (d *Deployer) DeployTestEnvironment(ctx context.Context, cfgs []NetworkConfig) (*Result, error) {
	result := &Result{}
	for i, cfg := range cfgs {
		// encode against a stand-in exchange to reject bad settings before
		// anything is deployed
		cfg.ExchangeAddress = common.Address{1}
		if _, err := planNetwork(d.artifacts, cfg); err != nil {
			return result, fmt.Errorf("network %d (%s): %w", i, cfg.Name, err)
		}
	}
	exchange, unwEth, err := d.DeployExchangeStack(ctx)
	if exchange != (common.Address{}) {
		result.Set(RoleExchange, exchange)
	}
	if err != nil {
		return result, err
	}
	result.Set(RoleUnwrappedEther, unwEth)

	wired := make([]NetworkConfig, len(cfgs))
	for i, cfg := range cfgs {
		cfg.ExchangeAddress = exchange
		wired[i] = cfg
	}
	networks, err := d.DeployNetworkBatch(ctx, wired)
	for _, network := range networks {
		result.AddNetwork(network)
	}
	if err != nil {
		return result, err
	}

	implementation, factory, err := d.DeployIdentityStack(ctx)
	if implementation != (common.Address{}) {
		result.Set(RoleIdentityImplementation, implementation)
	}
	if err != nil {
		return result, err
	}
	result.Set(RoleIdentityProxyFactory, factory)
	return result, nil
}

// RegisterNetwork adds network to the currency network registry at registry
func (d *Deployer) RegisterNetwork(ctx context.Context, registry common.Address, network common.Address) (*types.Receipt, error) {
	step := fmt.Sprintf("register %s", network.Hex())
	return d.call(ctx, step, constants.CurrencyNetworkRegistryContract, registry, "addCurrencyNetwork", network)
}

// RegisterNetworks registers networks in order and stops at the first
// failure with a *PartialBatchError
func (d *Deployer) RegisterNetworks(ctx context.Context, registry common.Address, networks []common.Address) ([]common.Address, error) {
	registered := make([]common.Address, 0, len(networks))
	for i, network := range networks {
		if _, err := d.RegisterNetwork(ctx, registry, network); err != nil {
			return registered, &PartialBatchError{
				Deployed:    registered,
				FailedIndex: i,
				FailedName:  network.Hex(),
				Err:         err,
			}
		}
		registered = append(registered, network)
	}
	return registered, nil
}
