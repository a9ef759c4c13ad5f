// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deployer

import (
	"github.com/ava-labs/libevm/core/types"
)

// Reporter follows the transactions of a deployment. Each step is submitted
// and then either confirmed or aborted.
type Reporter interface {
	Submitted(step string, tx *types.Transaction)
	Confirmed(step string, receipt *types.Receipt)
	Aborted(step string, err error)
}

type NoopReporter struct{}

func (NoopReporter) Submitted(string, *types.Transaction) {}

func (NoopReporter) Confirmed(string, *types.Receipt) {}

func (NoopReporter) Aborted(string, error) {}
