// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package key

import (
	"encoding/hex"
	"testing"

	"github.com/ava-labs/libevm/accounts/keystore"
	"github.com/ava-labs/libevm/crypto"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

func writeKeystore(t *testing.T, fs afero.Fs, path string, password string) *keystore.Key {
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	k := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	keyJSON, err := keystore.EncryptKey(k, password, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, path, keyJSON, 0o600))
	return k
}

func TestLoadKeystore(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	k := writeKeystore(t, fs, "/keys/deployer.json", "secret")

	privateKey, err := LoadKeystore(fs, "/keys/deployer.json", "secret")
	require.NoError(err)
	require.Equal(k.Address, Address(privateKey))

	_, err = LoadKeystore(fs, "/keys/deployer.json", "wrong")
	require.ErrorIs(err, keystore.ErrDecrypt)

	_, err = LoadKeystore(fs, "/keys/missing.json", "secret")
	require.ErrorContains(err, "/keys/missing.json")
}

func TestParsePrivateKey(t *testing.T) {
	require := require.New(t)
	privateKey, err := crypto.GenerateKey()
	require.NoError(err)
	hexKey := hex.EncodeToString(crypto.FromECDSA(privateKey))

	for _, candidate := range []string{hexKey, "0x" + hexKey, " " + hexKey + "\n"} {
		parsed, err := ParsePrivateKey(candidate)
		require.NoError(err)
		require.Equal(Address(privateKey), Address(parsed))
	}

	_, err = ParsePrivateKey("0x1234")
	require.ErrorIs(err, params.ErrInvalidParameter)
	require.NotContains(err.Error(), "1234")
}
