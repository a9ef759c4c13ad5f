// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"fmt"
	"strings"

	"github.com/ava-labs/libevm/common"
)

// PartialBatchError is returned when a batch stops at a failing item after
// earlier items were confirmed. The confirmed contracts stay live on chain.
type PartialBatchError struct {
	Deployed    []common.Address
	FailedIndex int
	FailedName  string
	Err         error
}

func (e *PartialBatchError) Error() string {
	confirmed := make([]string, len(e.Deployed))
	for i, addr := range e.Deployed {
		confirmed[i] = addr.Hex()
	}
	msg := fmt.Sprintf("item %d (%s) failed: %s", e.FailedIndex, e.FailedName, e.Err)
	if len(confirmed) == 0 {
		return msg + "; nothing was confirmed before"
	}
	return msg + fmt.Sprintf("; %d confirmed before: %s", len(confirmed), strings.Join(confirmed, ", "))
}

func (e *PartialBatchError) Unwrap() error {
	return e.Err
}
