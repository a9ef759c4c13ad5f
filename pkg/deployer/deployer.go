// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ava-labs/avalanchego/utils/logging"
	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
	"github.com/trustlines-protocol/tldeploy/pkg/contracts"
	"github.com/trustlines-protocol/tldeploy/pkg/evm"
	"go.uber.org/zap"
)

var errNoContractAddress = errors.New("receipt carries no contract address")

// Deployer submits the transactions of a deployment one at a time, waiting
// for each receipt before the next transaction is built.
//
// A Deployer owns the nonce sequence of its key and must not be used
// concurrently.
type Deployer struct {
	client    evm.Client
	key       *ecdsa.PrivateKey
	from      common.Address
	artifacts *contracts.Artifacts
	opts      evm.TxOptions
	log       logging.Logger
	reporter  Reporter

	chainID *big.Int
	nonce   *uint64
}

func New(
	client evm.Client,
	key *ecdsa.PrivateKey,
	artifacts *contracts.Artifacts,
	opts evm.TxOptions,
	log logging.Logger,
	reporter Reporter,
) *Deployer {
	if log == nil {
		log = logging.NoLog{}
	}
	if reporter == nil {
		reporter = NoopReporter{}
	}
	opts = opts.Copy()
	d := &Deployer{
		client:    client,
		key:       key,
		from:      crypto.PubkeyToAddress(key.PublicKey),
		artifacts: artifacts,
		opts:      opts,
		log:       log,
		reporter:  reporter,
	}
	if opts.Nonce != nil {
		nonce := *opts.Nonce
		d.nonce = &nonce
	}
	// the per transaction nonce is managed by the deployer
	d.opts.Nonce = nil
	return d
}

// From is the address paying for and owning the deployed contracts
func (d *Deployer) From() common.Address {
	return d.from
}

// NextNonce is the nonce the next transaction will use. ok is false until
// the nonce was given or fetched from the chain.
func (d *Deployer) NextNonce() (uint64, bool) {
	if d.nonce == nil {
		return 0, false
	}
	return *d.nonce, true
}

func (d *Deployer) ensureChainState(ctx context.Context) error {
	if d.chainID == nil {
		chainID, err := evm.GetChainID(ctx, d.client)
		if err != nil {
			return err
		}
		d.chainID = chainID
	}
	if d.nonce == nil {
		nonce, err := evm.NonceAt(ctx, d.client, d.from)
		if err != nil {
			return err
		}
		d.nonce = &nonce
	}
	return nil
}

// transact builds, signs and submits one transaction, then waits for its
// receipt. The nonce advances as soon as the transaction has been accepted
// by the node, whatever its outcome.
func (d *Deployer) transact(ctx context.Context, step string, to *common.Address, data []byte) (*types.Receipt, error) {
	receipt, err := d.submitAndWait(ctx, step, to, data)
	if err != nil {
		d.log.Warn("transaction aborted", zap.String("step", step), zap.Error(err))
		d.reporter.Aborted(step, err)
		return nil, fmt.Errorf("%s: %w", step, err)
	}
	d.log.Info("transaction confirmed",
		zap.String("step", step),
		zap.Stringer("txHash", receipt.TxHash),
		zap.Uint64("gasUsed", receipt.GasUsed),
	)
	d.reporter.Confirmed(step, receipt)
	return receipt, nil
}

func (d *Deployer) submitAndWait(ctx context.Context, step string, to *common.Address, data []byte) (*types.Receipt, error) {
	if err := d.ensureChainState(ctx); err != nil {
		return nil, err
	}
	tx, err := evm.NewTransaction(ctx, d.client, d.opts, evm.TxRequest{
		From:  d.from,
		To:    to,
		Data:  data,
		Nonce: *d.nonce,
	})
	if err != nil {
		return nil, err
	}
	signed, err := evm.SignTx(tx, d.chainID, d.key)
	if err != nil {
		return nil, err
	}
	if err := evm.SendTransaction(ctx, d.client, signed); err != nil {
		return nil, err
	}
	*d.nonce++
	d.log.Debug("transaction submitted",
		zap.String("step", step),
		zap.Stringer("txHash", signed.Hash()),
		zap.Uint64("nonce", signed.Nonce()),
		zap.Uint64("gas", signed.Gas()),
		zap.Stringer("gasPrice", signed.GasPrice()),
	)
	d.reporter.Submitted(step, signed)
	return evm.Confirm(ctx, d.client, d.from, signed)
}

// deploy creates contractName with the given constructor arguments
func (d *Deployer) deploy(ctx context.Context, step string, contractName string, args ...any) (common.Address, error) {
	contract, err := d.artifacts.Get(contractName)
	if err != nil {
		return common.Address{}, err
	}
	data, err := contract.DeployData(args...)
	if err != nil {
		return common.Address{}, err
	}
	receipt, err := d.transact(ctx, step, nil, data)
	if err != nil {
		return common.Address{}, err
	}
	if receipt.ContractAddress == (common.Address{}) {
		return common.Address{}, evm.TransactionError(receipt.TxHash, errNoContractAddress, "%s", step)
	}
	d.log.Info("contract deployed",
		zap.String("contract", contractName),
		zap.Stringer("address", receipt.ContractAddress),
	)
	return receipt.ContractAddress, nil
}

// call sends a state changing call of method on the contract at to
func (d *Deployer) call(
	ctx context.Context,
	step string,
	contractName string,
	to common.Address,
	method string,
	args ...any,
) (*types.Receipt, error) {
	contract, err := d.artifacts.Get(contractName)
	if err != nil {
		return nil, err
	}
	data, err := contract.CallData(method, args...)
	if err != nil {
		return nil, err
	}
	return d.transact(ctx, step, &to, data)
}

// read evaluates a view method against the latest block
func (d *Deployer) read(
	ctx context.Context,
	contractName string,
	at common.Address,
	method string,
	args ...any,
) ([]any, error) {
	contract, err := d.artifacts.Get(contractName)
	if err != nil {
		return nil, err
	}
	data, err := contract.CallData(method, args...)
	if err != nil {
		return nil, err
	}
	out, err := d.client.CallContract(ctx, ethereum.CallMsg{From: d.from, To: &at, Data: data}, nil)
	if err != nil {
		if reason, ok := evm.RevertReason(err); ok {
			return nil, &evm.TransactionRevertedError{Reason: reason}
		}
		return nil, evm.NewTransportError(fmt.Sprintf("calling %s.%s", contractName, method), err)
	}
	return contract.Unpack(method, out)
}

func (d *Deployer) hasMethod(contractName string, method string) bool {
	contract, err := d.artifacts.Get(contractName)
	if err != nil {
		return false
	}
	_, ok := contract.ABI.Methods[method]
	return ok
}
