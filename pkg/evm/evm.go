// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	ethereum "github.com/ava-labs/libevm"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/core/types"
	"github.com/ava-labs/libevm/ethclient"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

// Client is the part of the json-rpc client used to deploy contracts.
// *ethclient.Client implements it.
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	Close()
}

var _ Client = (*ethclient.Client)(nil)

// replaced in tests
var ethclientDialContext = func(ctx context.Context, rpcURL string) (Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func HasScheme(rpcURL string) (bool, error) {
	if parsedURL, err := url.Parse(rpcURL); err != nil {
		if !strings.Contains(err.Error(), "first path segment in URL cannot contain colon") {
			return false, err
		}
		return false, nil
	} else if parsedURL.Scheme == "" {
		return false, nil
	}
	return true, nil
}

// GetClient connects to the json-rpc endpoint at rpcURL. Endpoints without a
// scheme are taken as http. The connection is attempted once.
func GetClient(ctx context.Context, rpcURL string) (Client, error) {
	rpcURL = strings.TrimSpace(rpcURL)
	if rpcURL == "" {
		return nil, params.NewInvalidParameterError("jsonrpc", rpcURL, "empty json-rpc endpoint")
	}
	hasScheme, err := HasScheme(rpcURL)
	if err != nil {
		return nil, params.NewInvalidParameterError("jsonrpc", rpcURL, "%s", err)
	}
	if !hasScheme {
		rpcURL = "http://" + rpcURL
	}
	client, err := ethclientDialContext(ctx, rpcURL)
	if err != nil {
		return nil, NewTransportError(fmt.Sprintf("connecting to %s", rpcURL), err)
	}
	return client, nil
}

func GetChainID(ctx context.Context, client Client) (*big.Int, error) {
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, NewTransportError("obtaining chain id", err)
	}
	return chainID, nil
}

// NonceAt returns the next nonce of address, counting transactions still in
// the pending pool of the node
func NonceAt(ctx context.Context, client Client, address common.Address) (uint64, error) {
	nonce, err := client.PendingNonceAt(ctx, address)
	if err != nil {
		return 0, NewTransportError(fmt.Sprintf("obtaining nonce for %s", address.Hex()), err)
	}
	return nonce, nil
}
