// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
)

// TxOptions holds the caller's transaction settings. Nil fields are
// resolved from the chain for each transaction.
type TxOptions struct {
	GasLimit *uint64
	GasPrice *big.Int
	Nonce    *uint64
}

// BuildTxOptions turns optional flag values into TxOptions. Zero gas and
// gas price mean "ask the node".
func BuildTxOptions(gas uint64, gasPrice *big.Int, nonce *uint64) TxOptions {
	opts := TxOptions{}
	if gas != 0 {
		opts.GasLimit = &gas
	}
	if gasPrice != nil && gasPrice.Sign() > 0 {
		opts.GasPrice = new(big.Int).Set(gasPrice)
	}
	if nonce != nil {
		n := *nonce
		opts.Nonce = &n
	}
	return opts
}

// Copy returns options that share no memory with opts
func (opts TxOptions) Copy() TxOptions {
	cp := TxOptions{}
	if opts.GasLimit != nil {
		gas := *opts.GasLimit
		cp.GasLimit = &gas
	}
	if opts.GasPrice != nil {
		cp.GasPrice = new(big.Int).Set(opts.GasPrice)
	}
	if opts.Nonce != nil {
		nonce := *opts.Nonce
		cp.Nonce = &nonce
	}
	return cp
}

// TxRequest is an unsigned transaction before gas has been resolved.
// A nil To creates a contract.
type TxRequest struct {
	From  common.Address
	To    *common.Address
	Value *big.Int
	Data  []byte
	Nonce uint64
}

// NewTransaction builds a legacy transaction for req, estimating gas and
// querying the gas price when opts leave them open. A revert during gas
// estimation is returned as *TransactionRevertedError.
func NewTransaction(ctx context.Context, client Client, opts TxOptions, req TxRequest) (*types.Transaction, error) {
	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}
	gasPrice := opts.GasPrice
	if gasPrice == nil {
		var err error
		gasPrice, err = client.SuggestGasPrice(ctx)
		if err != nil {
			return nil, NewTransportError("obtaining gas price", err)
		}
	}
	var gas uint64
	if opts.GasLimit != nil {
		gas = *opts.GasLimit
	} else {
		estimated, err := client.EstimateGas(ctx, ethereum.CallMsg{
			From:     req.From,
			To:       req.To,
			GasPrice: gasPrice,
			Value:    value,
			Data:     req.Data,
		})
		if err != nil {
			if reason, ok := RevertReason(err); ok {
				return nil, &TransactionRevertedError{Reason: reason}
			}
			return nil, NewTransportError("estimating gas", err)
		}
		gas = estimated
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    req.Nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       req.To,
		Value:    value,
		Data:     req.Data,
	}), nil
}

// SignTx signs tx with replay protection for chainID
func SignTx(tx *types.Transaction, chainID *big.Int, key *ecdsa.PrivateKey) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, fmt.Errorf("failure signing transaction: %w", err)
	}
	return signed, nil
}

// SendTransaction broadcasts tx once
func SendTransaction(ctx context.Context, client Client, tx *types.Transaction) error {
	if err := client.SendTransaction(ctx, tx); err != nil {
		if reason, ok := RevertReason(err); ok {
			return &TransactionRevertedError{TxHash: tx.Hash(), Reason: reason}
		}
		return TransactionError(tx.Hash(), NewTransportError("broadcasting", err), "failure sending transaction")
	}
	return nil
}
