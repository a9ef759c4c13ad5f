// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrNoSigningKey       = errors.New("no signing key given: use --keystore or --private-key")
	ErrNoContractsFile    = errors.New("no compiled contracts file given: use --contracts or TLDEPLOY_CONTRACTS")
	ErrEmptyNetworksTable = errors.New("the networks table does not contain any network")
)
