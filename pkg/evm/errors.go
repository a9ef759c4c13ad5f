// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/rpc"
)

var (
	ErrTransport           = errors.New("transport error")
	ErrTransactionReverted = errors.New("transaction reverted")
)

// TransportError is a failed or timed out json-rpc round trip. It is never
// retried.
type TransportError struct {
	Op  string
	Err error
}

func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failure %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// TransactionRevertedError is a transaction rejected by the chain. TxHash is
// empty when the revert was detected while estimating gas, before sending.
type TransactionRevertedError struct {
	TxHash common.Hash
	Reason string
}

func (e *TransactionRevertedError) Error() string {
	msg := "transaction reverted"
	if e.TxHash != (common.Hash{}) {
		msg += fmt.Sprintf(" (txHash=%s)", e.TxHash.Hex())
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (*TransactionRevertedError) Unwrap() error {
	return ErrTransactionReverted
}

// RevertReason extracts the revert reason from an error returned by
// eth_call or eth_estimateGas. ok is false if err is not a revert.
func RevertReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, isString := dataErr.ErrorData().(string); isString && data != "" {
			if reason, unpackErr := abi.UnpackRevert(common.FromHex(data)); unpackErr == nil {
				return reason, true
			}
			// custom error, keep the raw selector and arguments
			return data, true
		}
	}
	const prefix = "execution reverted"
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.TrimPrefix(strings.TrimPrefix(msg, prefix), ": "), true
}

// TransactionError appends the transaction hash, if any, to an error message
func TransactionError(txHash common.Hash, err error, msg string, args ...interface{}) error {
	msgSuffix := ": %w"
	if txHash != (common.Hash{}) {
		msgSuffix += fmt.Sprintf(" (txHash=%s)", txHash.Hex())
	} else {
		msgSuffix += " (tx failed to be submitted)"
	}
	args = append(args, err)
	return fmt.Errorf(msg+msgSuffix, args...)
}
