// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ava-labs/libevm/common"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"go.uber.org/zap"
)

const (
	setGatedNetworkMethod = "setGatedCurrencyNetwork"
	escrowAddressMethod   = "escrowAddress"
	exchangeRateMethod    = "exchangeRate"
)

// GatewayDeployment is a currency network gated by a collateral gateway.
// ExchangeRate is nil when the gateway has no rate.
type GatewayDeployment struct {
	Gateway           common.Address
	Escrow            common.Address
	CollateralManager common.Address
	Network           common.Address
	ExchangeRate      *big.Int
}

// Record adds the deployed parts to result
func (g GatewayDeployment) Record(result *Result) {
	for _, e := range []Entry{
		{RoleGateway, g.Gateway},
		{RoleCollateralManager, g.CollateralManager},
	} {
		if e.Address != (common.Address{}) {
			result.Set(e.Role, e.Address)
		}
	}
	if g.Network != (common.Address{}) {
		result.AddNetwork(g.Network)
	}
	if g.Escrow != (common.Address{}) {
		result.Set(RoleEscrow, g.Escrow)
	}
}

// DeployGatewayStack deploys a gateway, optionally a collateral manager
// bound to it, and a currency network that authorizes both. The gateway is
// then pointed at the network when it supports that, and its escrow is read
// back. On error the returned deployment holds what was confirmed.
func (d *Deployer) DeployGatewayStack(ctx context.Context, cfg NetworkConfig, withCollateralManager bool) (GatewayDeployment, error) {
	deployment := GatewayDeployment{}

	// the network settings are checked against stand-in addresses first
	probe := cfg
	probe.GatewayAddress = common.Address{1}
	if withCollateralManager {
		probe.CollateralManagerAddress = common.Address{2}
	}
	if _, err := planNetwork(d.artifacts, probe); err != nil {
		return deployment, err
	}

	gateway, err := d.deploy(ctx, "gateway", constants.GatewayContract)
	if err != nil {
		return deployment, err
	}
	deployment.Gateway = gateway
	cfg.GatewayAddress = gateway

	if withCollateralManager {
		manager, err := d.deploy(ctx, "collateral manager", constants.CollateralManagerContract, gateway)
		if err != nil {
			return deployment, err
		}
		deployment.CollateralManager = manager
		cfg.CollateralManagerAddress = manager
	}

	network, err := d.DeployNetwork(ctx, cfg)
	if err != nil {
		return deployment, err
	}
	deployment.Network = network

	if d.hasMethod(constants.GatewayContract, setGatedNetworkMethod) {
		if _, err := d.call(ctx, "gate currency network", constants.GatewayContract, gateway, setGatedNetworkMethod, network); err != nil {
			return deployment, err
		}
	}

	escrow, err := d.readAddress(ctx, gateway, escrowAddressMethod)
	if err != nil {
		return deployment, err
	}
	deployment.Escrow = escrow

	if d.hasMethod(constants.GatewayContract, exchangeRateMethod) {
		out, err := d.read(ctx, constants.GatewayContract, gateway, exchangeRateMethod)
		if err != nil {
			return deployment, err
		}
		rate, ok := first[*big.Int](out)
		if !ok {
			return deployment, fmt.Errorf("unexpected %s result %v", exchangeRateMethod, out)
		}
		deployment.ExchangeRate = rate
	}
	d.log.Info("gateway stack deployed",
		zap.Stringer("gateway", deployment.Gateway),
		zap.Stringer("escrow", deployment.Escrow),
		zap.Stringer("network", deployment.Network),
	)
	return deployment, nil
}

func (d *Deployer) readAddress(ctx context.Context, gateway common.Address, method string) (common.Address, error) {
	out, err := d.read(ctx, constants.GatewayContract, gateway, method)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := first[common.Address](out)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected %s result %v", method, out)
	}
	return addr, nil
}

func first[T any](values []any) (T, bool) {
	var zero T
	if len(values) == 0 {
		return zero, false
	}
	v, ok := values[0].(T)
	return v, ok
}
