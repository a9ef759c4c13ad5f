// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"sync"

	"github.com/ava-labs/libevm/core/types"
	"github.com/chelnak/ysmrr"
)

// SpinnerReporter shows one spinner per deployment step, from submission
// until the receipt arrives
type SpinnerReporter struct {
	spinner  *UserSpinner
	mu       sync.Mutex
	steps    map[string]*ysmrr.Spinner
	gasUsed  uint64
	txHashes []string
}

func NewSpinnerReporter(spinner *UserSpinner) *SpinnerReporter {
	return &SpinnerReporter{
		spinner: spinner,
		steps:   map[string]*ysmrr.Spinner{},
	}
}

func (r *SpinnerReporter) Submitted(step string, tx *types.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[step] = r.spinner.SpinToUser("%s (txHash %s)", step, tx.Hash().Hex())
	r.txHashes = append(r.txHashes, tx.Hash().Hex())
}

func (r *SpinnerReporter) Confirmed(step string, receipt *types.Receipt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gasUsed += receipt.GasUsed
	if sp, ok := r.steps[step]; ok {
		SpinComplete(sp)
		delete(r.steps, step)
	}
}

func (r *SpinnerReporter) Aborted(step string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := r.steps[step]
	if !ok {
		// failed before submission
		sp = r.spinner.SpinToUser("%s", step)
	}
	SpinFailWithError(sp, "", err)
	delete(r.steps, step)
}

// GasUsed is the total gas of the confirmed transactions
func (r *SpinnerReporter) GasUsed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gasUsed
}

// Transactions lists the hashes of all submitted transactions
func (r *SpinnerReporter) Transactions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.txHashes...)
}
