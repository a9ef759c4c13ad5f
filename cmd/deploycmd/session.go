// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ava-labs/libevm/crypto"
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/flags"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/evm"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
	"go.uber.org/zap"
)

// replaced in tests
var (
	getClient  = evm.GetClient
	newSpinner = func() *ux.UserSpinner {
		return ux.NewUserSpinner(nil)
	}
)

// session is everything a command needs to send its transactions
type session struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   evm.Client
	deployer *deployer.Deployer
	spinner  *ux.UserSpinner
	reporter *ux.SpinnerReporter
}

// applyConfig fills the flags the user left out from the environment and the
// config file
func applyConfig(cmd *cobra.Command, _ []string) error {
	return app.Conf.ApplyToFlags(app.Log, cmd.Flags())
}

// newSession validates the transaction flags, loads the contracts and the
// key, and connects to the node
func newSession(cmd *cobra.Command, txFlags *flags.TransactionFlags) (*session, error) {
	if err := txFlags.Validate(); err != nil {
		return nil, err
	}
	artifacts, err := app.LoadArtifacts(txFlags.Contracts)
	if err != nil {
		return nil, err
	}
	key, err := txFlags.GetSigningKey(app)
	if err != nil {
		return nil, err
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	client, err := getClient(ctx, txFlags.JSONRPC)
	if err != nil {
		cancel()
		return nil, err
	}
	opts, err := txFlags.TxOptions(ctx, client, crypto.PubkeyToAddress(key.PublicKey))
	if err != nil {
		client.Close()
		cancel()
		return nil, err
	}
	spinner := newSpinner()
	reporter := ux.NewSpinnerReporter(spinner)
	s := &session{
		ctx:      ctx,
		cancel:   cancel,
		client:   client,
		deployer: deployer.New(client, key, artifacts, opts, app.Log, reporter),
		spinner:  spinner,
		reporter: reporter,
	}
	app.Log.Info("deployment session",
		zap.String("jsonrpc", txFlags.JSONRPC),
		zap.Stringer("from", s.deployer.From()),
		zap.String("contracts", artifacts.Path()),
	)
	return s, nil
}

// close stops the spinners before anything else is printed
func (s *session) close() {
	s.spinner.Stop()
	s.client.Close()
	s.cancel()
	txs := s.reporter.Transactions()
	if len(txs) == 0 {
		return
	}
	app.Log.Info("deployment session done",
		zap.Strings("transactions", txs),
		zap.Uint64("gasUsed", s.reporter.GasUsed()),
	)
	ux.Logger.PrintToUser("%d transaction(s), %s gas used",
		len(txs), ux.FormatGas(s.reporter.GasUsed()))
}

func writeReport(result *deployer.Result, path string) error {
	if path == "" {
		return nil
	}
	if err := result.WriteReport(app.Fs, path); err != nil {
		return err
	}
	ux.Logger.Success("Addresses written to %s", path)
	return nil
}
