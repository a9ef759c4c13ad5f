// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package testutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/common/hexutil"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/crypto"
)

var (
	SimulatedChainID = big.NewInt(1337)

	errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}
)

// RevertError mimics the json-rpc error of a reverted eth_call
type RevertError struct {
	Reason string
}

func (e RevertError) Error() string {
	return "execution reverted: " + e.Reason
}

func (RevertError) ErrorCode() int {
	return 3
}

func (e RevertError) ErrorData() interface{} {
	stringType, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: stringType}}.Pack(e.Reason)
	return hexutil.Encode(append(append([]byte{}, errorSelector...), packed...))
}

// SentTx is a transaction accepted by the SimulatedChain
type SentTx struct {
	Tx      *types.Transaction
	From    common.Address
	Receipt *types.Receipt
}

// SimulatedChain is an in-memory json-rpc node. Every accepted transaction
// is mined right away in its own block. Contract creations get the address
// derived from sender and nonce.
type SimulatedChain struct {
	GasPrice *big.Int
	GasLimit uint64

	// Revert makes the transaction with the given index fail on chain,
	// reverting with RevertReason
	Revert       func(index int, tx *types.Transaction) bool
	RevertReason string
	// SendError rejects the transaction with the given index on submission
	SendError func(index int, tx *types.Transaction) error
	// EstimateError fails gas estimation
	EstimateError error

	mu        sync.Mutex
	nonces    map[common.Address]uint64
	sent      []SentTx
	code      map[common.Address][]byte
	responses map[string][]byte
	closed    bool
}

func NewSimulatedChain() *SimulatedChain {
	return &SimulatedChain{
		GasPrice:  big.NewInt(20_000_000_000),
		GasLimit:  6_000_000,
		nonces:    map[common.Address]uint64{},
		code:      map[common.Address][]byte{},
		responses: map[string][]byte{},
	}
}

// SetNonce sets the pending nonce of addr
func (c *SimulatedChain) SetNonce(addr common.Address, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonces[addr] = nonce
}

// Respond makes eth_call of selector return output, for any contract
func (c *SimulatedChain) Respond(selector []byte, output []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[string(selector[:4])] = output
}

func (c *SimulatedChain) Sent() []SentTx {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SentTx(nil), c.sent...)
}

func (c *SimulatedChain) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (*SimulatedChain) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).Set(SimulatedChainID), nil
}

func (c *SimulatedChain) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nonces[account], nil
}

func (c *SimulatedChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return new(big.Int).Set(c.GasPrice), nil
}

func (c *SimulatedChain) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	if c.EstimateError != nil {
		return 0, c.EstimateError
	}
	return c.GasLimit, nil
}

func (c *SimulatedChain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	index := len(c.sent)
	if c.SendError != nil {
		if err := c.SendError(index, tx); err != nil {
			return err
		}
	}
	from, err := types.Sender(types.LatestSignerForChainID(SimulatedChainID), tx)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if expected := c.nonces[from]; tx.Nonce() != expected {
		return fmt.Errorf("invalid nonce for %s: have %d, want %d", from.Hex(), tx.Nonce(), expected)
	}
	c.nonces[from]++
	receipt := &types.Receipt{
		Type:        tx.Type(),
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		GasUsed:     tx.Gas() / 2,
		BlockNumber: big.NewInt(int64(index + 1)),
	}
	if c.Revert != nil && c.Revert(index, tx) {
		receipt.Status = types.ReceiptStatusFailed
	} else if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		c.code[receipt.ContractAddress] = tx.Data()
	}
	c.sent = append(c.sent, SentTx{Tx: tx, From: from, Receipt: receipt})
	return nil
}

func (c *SimulatedChain) TransactionReceipt(_ context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sent {
		if s.Tx.Hash() == txHash {
			return s.Receipt, nil
		}
	}
	return nil, ethereum.NotFound
}

func (c *SimulatedChain) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code[account], nil
}

// CallContract replays failed transactions as reverts and answers other
// calls from the registered responses
func (c *SimulatedChain) CallContract(_ context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if blockNumber != nil {
		for _, s := range c.sent {
			if s.Receipt.BlockNumber.Cmp(blockNumber) == 0 && bytes.Equal(s.Tx.Data(), msg.Data) {
				if s.Receipt.Status == types.ReceiptStatusFailed {
					return nil, RevertError{Reason: c.RevertReason}
				}
				return nil, nil
			}
		}
	}
	if len(msg.Data) < 4 {
		return nil, errors.New("call without selector")
	}
	out, ok := c.responses[string(msg.Data[:4])]
	if !ok {
		return nil, RevertError{}
	}
	return out, nil
}

func (c *SimulatedChain) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
