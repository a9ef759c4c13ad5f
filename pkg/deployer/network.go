// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ava-labs/libevm/common"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/contracts"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
	"go.uber.org/zap"
)

// NetworkConfig holds the normalized settings of one currency network
type NetworkConfig struct {
	Name                     string
	Symbol                   string
	Decimals                 uint8
	FeeDivisor               uint64
	DefaultInterestRate      int64
	CustomInterests          bool
	PreventMediatorInterests bool
	ExpirationTime           uint64
	ExchangeAddress          common.Address
	GatewayAddress           common.Address
	CollateralManagerAddress common.Address
	// ContractName selects the compiled contract, CurrencyNetwork if empty
	ContractName string
}

func (c NetworkConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return params.NewInvalidParameterError("name", "", "must not be empty")
	}
	if strings.TrimSpace(c.Symbol) == "" {
		return params.NewInvalidParameterError("symbol", "", "must not be empty")
	}
	return params.ValidateInterestFlags(c.CustomInterests, c.DefaultInterestRate, c.PreventMediatorInterests)
}

func (c NetworkConfig) contractName() string {
	if c.ContractName == "" {
		return constants.CurrencyNetworkContract
	}
	return c.ContractName
}

// AuthorizedAddresses lists the contracts allowed to act on behalf of
// users: exchange, gateway and collateral manager, when set.
func (c NetworkConfig) AuthorizedAddresses() []common.Address {
	authorized := []common.Address{}
	for _, addr := range []common.Address{c.ExchangeAddress, c.GatewayAddress, c.CollateralManagerAddress} {
		if addr != (common.Address{}) {
			authorized = append(authorized, addr)
		}
	}
	return authorized
}

func (c NetworkConfig) settings() []any {
	return []any{
		c.Name,
		c.Symbol,
		c.Decimals,
		c.FeeDivisor,
		c.DefaultInterestRate,
		c.CustomInterests,
		c.PreventMediatorInterests,
		c.ExpirationTime,
		c.AuthorizedAddresses(),
	}
}

func (c NetworkConfig) String() string {
	exchange := "none"
	if c.ExchangeAddress != (common.Address{}) {
		exchange = c.ExchangeAddress.Hex()
	}
	return fmt.Sprintf(
		"%s(name=%s, symbol=%s, decimals=%d, fee_divisor=%d, default_interest_rate=%d, custom_interests=%t, prevent_mediator_interests=%t, expiration_time=%d, exchange_address=%s)",
		c.contractName(),
		c.Name,
		c.Symbol,
		c.Decimals,
		c.FeeDivisor,
		c.DefaultInterestRate,
		c.CustomInterests,
		c.PreventMediatorInterests,
		c.ExpirationTime,
		exchange,
	)
}

// networkPlan is a validated and fully encoded network deployment. Creation
// code and initializer call are encoded up front so that bad settings are
// rejected before anything is sent.
type networkPlan struct {
	cfg          NetworkConfig
	contractName string
	deployData   []byte
	initData     []byte
}

func planNetwork(artifacts *contracts.Artifacts, cfg NetworkConfig) (*networkPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	contract, err := artifacts.Get(cfg.contractName())
	if err != nil {
		return nil, err
	}
	plan := &networkPlan{cfg: cfg, contractName: contract.Name}
	if contract.HasInitializer() {
		if plan.deployData, err = contract.DeployData(); err != nil {
			return nil, err
		}
		if plan.initData, err = contract.InitData(cfg.settings()...); err != nil {
			return nil, err
		}
		return plan, nil
	}
	if plan.deployData, err = contract.DeployData(cfg.settings()...); err != nil {
		return nil, err
	}
	return plan, nil
}

func (d *Deployer) executeNetworkPlan(ctx context.Context, plan *networkPlan) (common.Address, error) {
	step := fmt.Sprintf("%s %s", plan.contractName, plan.cfg.Name)
	receipt, err := d.transact(ctx, step, nil, plan.deployData)
	if err != nil {
		return common.Address{}, err
	}
	network := receipt.ContractAddress
	if network == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%s: %w", step, errNoContractAddress)
	}
	if plan.initData != nil {
		if _, err := d.transact(ctx, step+" init", &network, plan.initData); err != nil {
			return common.Address{}, err
		}
	}
	d.log.Info("currency network deployed",
		zap.String("name", plan.cfg.Name),
		zap.String("symbol", plan.cfg.Symbol),
		zap.Stringer("address", network),
	)
	return network, nil
}

// DeployNetwork deploys one currency network and returns its address once
// the network is fully configured.
func (d *Deployer) DeployNetwork(ctx context.Context, cfg NetworkConfig) (common.Address, error) {
	plan, err := planNetwork(d.artifacts, cfg)
	if err != nil {
		return common.Address{}, err
	}
	return d.executeNetworkPlan(ctx, plan)
}

// DeployNetworkBatch deploys the networks in order and stops at the first
// failure. Every configuration is checked before the first transaction.
// On failure the returned *PartialBatchError lists the networks that stay
// deployed.
func (d *Deployer) DeployNetworkBatch(ctx context.Context, cfgs []NetworkConfig) ([]common.Address, error) {
	plans := make([]*networkPlan, len(cfgs))
	for i, cfg := range cfgs {
		plan, err := planNetwork(d.artifacts, cfg)
		if err != nil {
			return nil, fmt.Errorf("network %d (%s): %w", i, cfg.Name, err)
		}
		plans[i] = plan
	}
	deployed := make([]common.Address, 0, len(plans))
	for i, plan := range plans {
		addr, err := d.executeNetworkPlan(ctx, plan)
		if err != nil {
			return deployed, &PartialBatchError{
				Deployed:    deployed,
				FailedIndex: i,
				FailedName:  plan.cfg.Name,
				Err:         err,
			}
		}
		deployed = append(deployed, addr)
	}
	return deployed, nil
}
