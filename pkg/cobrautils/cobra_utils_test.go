// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cobrautils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ava-labs/libevm/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/internal/testutils"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

func captureUserOutput(t *testing.T) *bytes.Buffer {
	testutils.SetupTest(t)
	out := &bytes.Buffer{}
	previous := ux.Logger.Writer
	ux.Logger.Writer = out
	t.Cleanup(func() { ux.Logger.Writer = previous })
	return out
}

func TestPrintErrorPartialBatchOnce(t *testing.T) {
	require := require.New(t)
	out := captureUserOutput(t)

	first := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	err := fmt.Errorf("deploy networks: %w", &deployer.PartialBatchError{
		Deployed:    []common.Address{first},
		FailedIndex: 1,
		FailedName:  "Dollar",
		Err:         errors.New("execution reverted"),
	})
	PrintError(err)

	require.Equal(
		"Error: deploy networks: item 1 (Dollar) failed: execution reverted; 1 confirmed before: "+first.Hex()+"\n",
		out.String(),
	)
	require.Equal(1, strings.Count(out.String(), first.Hex()))
}

func TestPrintErrorPlain(t *testing.T) {
	out := captureUserOutput(t)
	PrintError(errors.New("boom"))
	require.Equal(t, "Error: boom\n", out.String())
}

func TestPrintErrorUsage(t *testing.T) {
	require := require.New(t)
	cmd := &cobra.Command{Use: "currencynetwork NAME SYMBOL", Args: ExactArgs(2), Run: func(*cobra.Command, []string) {}}
	cmdOut := &bytes.Buffer{}
	cmd.SetOut(cmdOut)
	cmd.SetErr(cmdOut)

	err := cmd.Args(cmd, []string{"Euro"})
	require.Error(err)
	var usageErr UsageError
	require.ErrorAs(err, &usageErr)

	cmdOut.Reset()
	PrintError(err)
	require.Contains(cmdOut.String(), "Usage:")
	require.Contains(cmdOut.String(), "Usage error: accepts 2 arg(s), received 1")
}

func TestCommandSuiteUsage(t *testing.T) {
	cmd := &cobra.Command{Use: "tldeploy"}
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, CommandSuiteUsage(cmd, nil))
	err := CommandSuiteUsage(cmd, []string{"deploy", "everything"})
	require.ErrorContains(t, err, `invalid subcommand "deploy everything"`)
}
