// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"io"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/pkg/application"
	"github.com/trustlines-protocol/tldeploy/pkg/config"
	"github.com/trustlines-protocol/tldeploy/pkg/prompts"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
)

func SetupTest(t *testing.T) *require.Assertions {
	// use io.Discard to not print anything
	ux.NewUserLog(logging.NoLog{}, io.Discard)
	return require.New(t)
}

// SetupTestInMemory returns an app whose base dir lives on an in-memory
// filesystem. The configuration is read from the same filesystem.
func SetupTestInMemory(t *testing.T, prompt prompts.Prompter) *application.TLDeploy {
	t.Helper()
	fs := afero.NewMemMapFs()
	baseDir := "/home/test/.tldeploy"
	require.NoError(t, fs.MkdirAll(baseDir, 0o755))

	app := application.New()
	app.Setup(baseDir, logging.NoLog{}, config.New(fs), prompt, fs)
	return app
}
