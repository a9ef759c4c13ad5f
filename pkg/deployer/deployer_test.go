// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/internal/testutils"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/contracts"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/evm"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
	"go.uber.org/goleak"
)

var _ evm.Client = (*testutils.SimulatedChain)(nil)

type event struct {
	kind string
	step string
}

type recordingReporter struct {
	events []event
}

func (r *recordingReporter) Submitted(step string, _ *types.Transaction) {
	r.events = append(r.events, event{"submitted", step})
}

func (r *recordingReporter) Confirmed(step string, _ *types.Receipt) {
	r.events = append(r.events, event{"confirmed", step})
}

func (r *recordingReporter) Aborted(step string, _ error) {
	r.events = append(r.events, event{"aborted", step})
}

func newDeployer(t *testing.T, chain *testutils.SimulatedChain, opts evm.TxOptions) (*deployer.Deployer, *contracts.Artifacts) {
	artifacts := testutils.Artifacts(t)
	return deployer.New(chain, testutils.DeployerKey(t), artifacts, opts, logging.NoLog{}, nil), artifacts
}

func network(name string, symbol string) deployer.NetworkConfig {
	return deployer.NetworkConfig{
		Name:                name,
		Symbol:              symbol,
		Decimals:            2,
		FeeDivisor:          1000,
		DefaultInterestRate: 0,
		CustomInterests:     true,
		ExpirationTime:      constants.TestNetworkExpirationTime,
	}
}

// constructorArgs decodes the arguments appended to the creation code
func constructorArgs(t *testing.T, contract *contracts.Contract, tx *types.Transaction) []any {
	data := tx.Data()
	require.GreaterOrEqual(t, len(data), len(contract.Bytecode))
	require.Equal(t, contract.Bytecode, data[:len(contract.Bytecode)])
	args, err := contract.ABI.Constructor.Inputs.Unpack(data[len(contract.Bytecode):])
	require.NoError(t, err)
	return args
}

func TestDeployNetwork(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	d, artifacts := newDeployer(t, chain, evm.TxOptions{})

	exchange := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	cfg := network("Euro", "EUR")
	cfg.DefaultInterestRate = 0
	cfg.ExchangeAddress = exchange

	addr, err := d.DeployNetwork(context.Background(), cfg)
	require.NoError(err)

	sent := chain.Sent()
	require.Len(sent, 1)
	require.Nil(sent[0].Tx.To())
	require.Equal(crypto.CreateAddress(d.From(), 0), addr)

	contract, err := artifacts.Get(constants.CurrencyNetworkContract)
	require.NoError(err)
	args := constructorArgs(t, contract, sent[0].Tx)
	require.Equal([]any{
		"Euro",
		"EUR",
		uint8(2),
		uint16(1000),
		int16(0),
		true,
		false,
		new(big.Int).SetUint64(constants.TestNetworkExpirationTime),
		[]common.Address{exchange},
	}, args)
}

func TestDeployNetworkWithInitializer(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	d, artifacts := newDeployer(t, chain, evm.TxOptions{})

	cfg := network("Cash", "CASH")
	cfg.ContractName = constants.TestCurrencyNetworkContract
	addr, err := d.DeployNetwork(context.Background(), cfg)
	require.NoError(err)

	sent := chain.Sent()
	require.Len(sent, 2)
	require.Nil(sent[0].Tx.To())
	require.Equal(addr, *sent[1].Tx.To())

	contract, err := artifacts.Get(constants.TestCurrencyNetworkContract)
	require.NoError(err)
	require.Equal(contract.Bytecode, sent[0].Tx.Data())
	initData, err := contract.InitData(
		"Cash", "CASH", uint8(2), uint64(1000), int64(0), true, false,
		constants.TestNetworkExpirationTime, []common.Address{},
	)
	require.NoError(err)
	require.Equal(initData, sent[1].Tx.Data())
}

func TestDeployNetworkRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*deployer.NetworkConfig)
	}{
		{
			name:   "interest rate with custom interests",
			modify: func(c *deployer.NetworkConfig) { c.DefaultInterestRate = 100 },
		},
		{
			name: "prevent mediator interests without custom interests",
			modify: func(c *deployer.NetworkConfig) {
				c.CustomInterests = false
				c.PreventMediatorInterests = true
			},
		},
		{
			name:   "empty name",
			modify: func(c *deployer.NetworkConfig) { c.Name = " " },
		},
		{
			name:   "fee divisor out of range",
			modify: func(c *deployer.NetworkConfig) { c.FeeDivisor = 70_000 },
		},
		{
			name:   "unknown contract",
			modify: func(c *deployer.NetworkConfig) { c.ContractName = "NoSuchNetwork" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := testutils.NewSimulatedChain()
			d, _ := newDeployer(t, chain, evm.TxOptions{})
			cfg := network("Euro", "EUR")
			tt.modify(&cfg)
			_, err := d.DeployNetwork(context.Background(), cfg)
			require.ErrorIs(t, err, params.ErrInvalidParameter)
			require.Empty(t, chain.Sent())
		})
	}
}

func TestDeployExchangeStack(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	d, artifacts := newDeployer(t, chain, evm.TxOptions{})

	exchange, unwEth, err := d.DeployExchangeStack(context.Background())
	require.NoError(err)
	require.NotEqual(exchange, unwEth)

	sent := chain.Sent()
	require.Len(sent, 2)
	require.Equal(exchange, sent[0].Receipt.ContractAddress)
	require.Equal(unwEth, sent[1].Receipt.ContractAddress)

	contract, err := artifacts.Get(constants.UnwEthContract)
	require.NoError(err)
	require.Equal([]any{exchange}, constructorArgs(t, contract, sent[1].Tx))
}

func TestNonceSequence(t *testing.T) {
	t.Run("fetched from the chain", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		d, _ := newDeployer(t, chain, evm.TxOptions{})
		chain.SetNonce(d.From(), 7)

		_, _, err := d.DeployIdentityStack(context.Background())
		require.NoError(err)
		_, err = d.DeployNetwork(context.Background(), network("Euro", "EUR"))
		require.NoError(err)

		sent := chain.Sent()
		require.Len(sent, 3)
		for i, s := range sent {
			require.Equal(uint64(7+i), s.Tx.Nonce())
		}
		next, ok := d.NextNonce()
		require.True(ok)
		require.Equal(uint64(10), next)
	})

	t.Run("explicit nonce is not mutated", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		nonce := uint64(3)
		gasPrice := big.NewInt(1_000_000_000)
		opts := evm.BuildTxOptions(500_000, gasPrice, &nonce)
		d, _ := newDeployer(t, chain, opts)
		chain.SetNonce(d.From(), 3)

		_, _, err := d.DeployExchangeStack(context.Background())
		require.NoError(err)

		sent := chain.Sent()
		require.Len(sent, 2)
		require.Equal(uint64(3), sent[0].Tx.Nonce())
		require.Equal(uint64(4), sent[1].Tx.Nonce())
		require.Equal(uint64(500_000), sent[0].Tx.Gas())
		require.Equal(0, gasPrice.Cmp(sent[0].Tx.GasPrice()))
		require.Equal(uint64(3), *opts.Nonce)
	})
}

func TestTransportErrorDoesNotConsumeNonce(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	chain.SendError = func(int, *types.Transaction) error {
		return errors.New("connection refused")
	}
	reporter := &recordingReporter{}
	d := deployer.New(chain, testutils.DeployerKey(t), testutils.Artifacts(t), evm.TxOptions{}, logging.NoLog{}, reporter)

	_, err := d.DeployIdentityImplementation(context.Background())
	require.ErrorIs(err, evm.ErrTransport)
	require.ErrorContains(err, "connection refused")
	next, ok := d.NextNonce()
	require.True(ok)
	require.Zero(next)
	require.Equal([]event{{"aborted", "identity implementation"}}, reporter.events)
}

func TestDeployNetworkBatchStopsAtFirstFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	require := require.New(t)

	chain := testutils.NewSimulatedChain()
	chain.Revert = func(index int, _ *types.Transaction) bool { return index == 1 }
	chain.RevertReason = "Fee divisor too small"
	reporter := &recordingReporter{}
	d := deployer.New(chain, testutils.DeployerKey(t), testutils.Artifacts(t), evm.TxOptions{}, logging.NoLog{}, reporter)

	cfgs := []deployer.NetworkConfig{
		network("Cash", "CASH"),
		network("Work Hours", "HOU"),
		network("Beers", "BEER"),
	}
	deployed, err := d.DeployNetworkBatch(context.Background(), cfgs)
	require.ErrorIs(err, evm.ErrTransactionReverted)

	var partial *deployer.PartialBatchError
	require.ErrorAs(err, &partial)
	require.Equal(1, partial.FailedIndex)
	require.Equal("Work Hours", partial.FailedName)
	require.Len(partial.Deployed, 1)
	require.Equal(deployed, partial.Deployed)
	require.Contains(err.Error(), partial.Deployed[0].Hex())

	var reverted *evm.TransactionRevertedError
	require.ErrorAs(err, &reverted)
	require.Equal("Fee divisor too small", reverted.Reason)

	// the third network is never attempted
	require.Len(chain.Sent(), 2)
	next, _ := d.NextNonce()
	require.Equal(uint64(2), next)
	require.Equal([]event{
		{"submitted", "CurrencyNetwork Cash"},
		{"confirmed", "CurrencyNetwork Cash"},
		{"submitted", "CurrencyNetwork Work Hours"},
		{"aborted", "CurrencyNetwork Work Hours"},
	}, reporter.events)
}

func TestDeployNetworkBatchChecksEverythingFirst(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	d, _ := newDeployer(t, chain, evm.TxOptions{})

	bad := network("Beers", "BEER")
	bad.CustomInterests = false
	bad.PreventMediatorInterests = true
	_, err := d.DeployNetworkBatch(context.Background(), []deployer.NetworkConfig{network("Cash", "CASH"), bad})
	require.ErrorIs(err, params.ErrInvalidParameter)
	require.ErrorContains(err, "network 1 (Beers)")

	var partial *deployer.PartialBatchError
	require.False(errors.As(err, &partial))
	require.Empty(chain.Sent())
}

func TestDeployTestEnvironment(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	d, artifacts := newDeployer(t, chain, evm.TxOptions{})

	cfgs := []deployer.NetworkConfig{network("Cash", "CASH"), network("Work Hours", "HOU")}
	result, err := d.DeployTestEnvironment(context.Background(), cfgs)
	require.NoError(err)

	roles := []deployer.Role{}
	for _, e := range result.Entries() {
		roles = append(roles, e.Role)
	}
	require.Equal([]deployer.Role{
		deployer.RoleExchange,
		deployer.RoleUnwrappedEther,
		deployer.NetworkRole(0),
		deployer.NetworkRole(1),
		deployer.RoleIdentityImplementation,
		deployer.RoleIdentityProxyFactory,
	}, roles)

	exchange, ok := result.Get(deployer.RoleExchange)
	require.True(ok)
	contract, err := artifacts.Get(constants.CurrencyNetworkContract)
	require.NoError(err)
	sent := chain.Sent()
	require.Len(sent, 6)
	for _, s := range sent[2:4] {
		args := constructorArgs(t, contract, s.Tx)
		require.Equal([]common.Address{exchange}, args[8])
	}
	// callers keep their configurations
	require.Equal(common.Address{}, cfgs[0].ExchangeAddress)
}

func TestDeployTestEnvironmentKeepsPartialResult(t *testing.T) {
	require := require.New(t)
	chain := testutils.NewSimulatedChain()
	chain.Revert = func(index int, _ *types.Transaction) bool { return index == 3 }
	d, _ := newDeployer(t, chain, evm.TxOptions{})

	result, err := d.DeployTestEnvironment(context.Background(), []deployer.NetworkConfig{
		network("Cash", "CASH"),
		network("Work Hours", "HOU"),
	})
	require.ErrorIs(err, evm.ErrTransactionReverted)
	require.Len(result.Networks(), 1)
	report := result.Report()
	require.NotEmpty(report.Exchange)
	require.NotEmpty(report.UnwEth)
	require.Empty(report.IdentityImplementation)
}

func TestRegisterNetworks(t *testing.T) {
	registry := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	networks, err := testutils.GenerateEthAddrs(3)
	require.NoError(t, err)

	t.Run("all registered", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		d, artifacts := newDeployer(t, chain, evm.TxOptions{})

		registered, err := d.RegisterNetworks(context.Background(), registry, networks)
		require.NoError(err)
		require.Equal(networks, registered)

		contract, err := artifacts.Get(constants.CurrencyNetworkRegistryContract)
		require.NoError(err)
		for i, s := range chain.Sent() {
			require.Equal(registry, *s.Tx.To())
			data, err := contract.CallData("addCurrencyNetwork", networks[i])
			require.NoError(err)
			require.Equal(data, s.Tx.Data())
		}
	})

	t.Run("revert stops registration", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		chain.Revert = func(index int, _ *types.Transaction) bool { return index == 0 }
		chain.RevertReason = "Ownable: caller is not the owner"
		d, _ := newDeployer(t, chain, evm.TxOptions{})

		registered, err := d.RegisterNetworks(context.Background(), registry, networks)
		require.Empty(registered)
		var partial *deployer.PartialBatchError
		require.ErrorAs(err, &partial)
		require.Zero(partial.FailedIndex)
		require.Equal(networks[0].Hex(), partial.FailedName)
		require.ErrorContains(err, "Ownable: caller is not the owner")
		require.Len(chain.Sent(), 1)
	})
}

func gatewayResponses(t *testing.T, chain *testutils.SimulatedChain, artifacts *contracts.Artifacts, escrow common.Address) {
	gateway, err := artifacts.Get(constants.GatewayContract)
	require.NoError(t, err)
	escrowMethod := gateway.ABI.Methods["escrowAddress"]
	out, err := escrowMethod.Outputs.Pack(escrow)
	require.NoError(t, err)
	chain.Respond(escrowMethod.ID, out)
	rateMethod := gateway.ABI.Methods["exchangeRate"]
	out, err = rateMethod.Outputs.Pack(big.NewInt(1))
	require.NoError(t, err)
	chain.Respond(rateMethod.ID, out)
}

func TestDeployGatewayStack(t *testing.T) {
	escrow := common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")

	t.Run("without collateral manager", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		d, artifacts := newDeployer(t, chain, evm.TxOptions{})
		gatewayResponses(t, chain, artifacts, escrow)

		deployment, err := d.DeployGatewayStack(context.Background(), network("Collateral Euro", "CEUR"), false)
		require.NoError(err)
		require.Equal(escrow, deployment.Escrow)
		require.Equal(common.Address{}, deployment.CollateralManager)
		require.Equal(0, big.NewInt(1).Cmp(deployment.ExchangeRate))

		sent := chain.Sent()
		require.Len(sent, 3)
		require.Equal(deployment.Gateway, sent[0].Receipt.ContractAddress)
		require.Equal(deployment.Network, sent[1].Receipt.ContractAddress)

		networkContract, err := artifacts.Get(constants.CurrencyNetworkContract)
		require.NoError(err)
		require.Equal([]common.Address{deployment.Gateway}, constructorArgs(t, networkContract, sent[1].Tx)[8])

		gateway, err := artifacts.Get(constants.GatewayContract)
		require.NoError(err)
		gate, err := gateway.CallData("setGatedCurrencyNetwork", deployment.Network)
		require.NoError(err)
		require.Equal(deployment.Gateway, *sent[2].Tx.To())
		require.Equal(gate, sent[2].Tx.Data())

		result := &deployer.Result{}
		deployment.Record(result)
		report := result.Report()
		require.Equal(deployment.Gateway.Hex(), report.Gateway)
		require.Equal(escrow.Hex(), report.Escrow)
		require.Equal([]string{deployment.Network.Hex()}, report.Networks)
		require.Empty(report.CollateralManager)
	})

	t.Run("with collateral manager", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		d, artifacts := newDeployer(t, chain, evm.TxOptions{})
		gatewayResponses(t, chain, artifacts, escrow)

		deployment, err := d.DeployGatewayStack(context.Background(), network("Collateral Euro", "CEUR"), true)
		require.NoError(err)

		sent := chain.Sent()
		require.Len(sent, 4)
		manager, err := artifacts.Get(constants.CollateralManagerContract)
		require.NoError(err)
		require.Equal(deployment.CollateralManager, sent[1].Receipt.ContractAddress)
		require.Equal([]any{deployment.Gateway}, constructorArgs(t, manager, sent[1].Tx))

		networkContract, err := artifacts.Get(constants.CurrencyNetworkContract)
		require.NoError(err)
		require.Equal(
			[]common.Address{deployment.Gateway, deployment.CollateralManager},
			constructorArgs(t, networkContract, sent[2].Tx)[8],
		)
	})

	t.Run("escrow read fails", func(t *testing.T) {
		require := require.New(t)
		chain := testutils.NewSimulatedChain()
		d, _ := newDeployer(t, chain, evm.TxOptions{})

		deployment, err := d.DeployGatewayStack(context.Background(), network("Collateral Euro", "CEUR"), false)
		require.ErrorIs(err, evm.ErrTransactionReverted)
		require.NotEqual(common.Address{}, deployment.Gateway)
		require.NotEqual(common.Address{}, deployment.Network)
		require.Equal(common.Address{}, deployment.Escrow)
	})
}
