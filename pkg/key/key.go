// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package key retrieves the key that signs deployment transactions.
package key

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ava-labs/libevm/accounts/keystore"
	"github.com/ava-labs/libevm/common"
	"github.com/ava-labs/libevm/crypto"
	"github.com/spf13/afero"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

// LoadKeystore decrypts a json keystore file (web3 secret storage v3)
func LoadKeystore(fs afero.Fs, path string, password string) (*ecdsa.PrivateKey, error) {
	keyJSON, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed reading keystore %s: %w", path, err)
	}
	k, err := keystore.DecryptKey(keyJSON, password)
	if err != nil {
		return nil, fmt.Errorf("failed decrypting keystore %s: %w", path, err)
	}
	return k.PrivateKey, nil
}

// ParsePrivateKey reads a hex encoded private key, with or without 0x prefix
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	k, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		// never echo the key itself
		return nil, params.NewInvalidParameterError("private-key", nil, "%s", err)
	}
	return k, nil
}

func Address(k *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(k.PublicKey)
}
