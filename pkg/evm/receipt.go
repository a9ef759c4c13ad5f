// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/accounts/abi/bind"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
)

// receiptBackend stops bind.WaitMined at the first failed receipt query.
// WaitMined itself keeps polling through any error.
type receiptBackend struct {
	Client
	fail context.CancelCauseFunc
}

func (b receiptBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	receipt, err := b.Client.TransactionReceipt(ctx, txHash)
	if err != nil && !errors.Is(err, ethereum.NotFound) {
		b.fail(NewTransportError(fmt.Sprintf("obtaining receipt of %s", txHash.Hex()), err))
	}
	return receipt, err
}

// WaitForTransaction blocks until tx is mined and reports whether it
// succeeded. A failing receipt query aborts the wait with a *TransportError.
func WaitForTransaction(ctx context.Context, client Client, tx *types.Transaction) (*types.Receipt, bool, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	receipt, err := bind.WaitMined(ctx, receiptBackend{Client: client, fail: cancel}, tx)
	if err != nil {
		if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
			err = cause
		}
		return nil, false, TransactionError(tx.Hash(), err, "failure waiting for transaction")
	}
	return receipt, receipt.Status == types.ReceiptStatusSuccessful, nil
}

// FailedTxReason replays a mined but failed transaction at its block to
// recover the revert reason. It returns an empty string when the node does
// not report one.
func FailedTxReason(ctx context.Context, client Client, from common.Address, tx *types.Transaction, blockNumber *big.Int) string {
	_, err := client.CallContract(ctx, ethereum.CallMsg{
		From:     from,
		To:       tx.To(),
		Gas:      tx.Gas(),
		GasPrice: tx.GasPrice(),
		Value:    tx.Value(),
		Data:     tx.Data(),
	}, blockNumber)
	reason, _ := RevertReason(err)
	return reason
}

// Confirm waits for tx and turns a failed receipt into
// *TransactionRevertedError
func Confirm(ctx context.Context, client Client, from common.Address, tx *types.Transaction) (*types.Receipt, error) {
	receipt, success, err := WaitForTransaction(ctx, client, tx)
	if err != nil {
		return nil, err
	}
	if !success {
		return receipt, &TransactionRevertedError{
			TxHash: tx.Hash(),
			Reason: FailedTxReason(ctx, client, from, tx, receipt.BlockNumber),
		}
	}
	return receipt, nil
}
