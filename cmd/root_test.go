// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/pkg/application"
	"github.com/trustlines-protocol/tldeploy/pkg/config"
)

func TestRootCmdTree(t *testing.T) {
	require := require.New(t)
	app = application.New()
	rootCmd := NewRootCmd()

	names := []string{}
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	require.Subset(names, []string{
		"currencynetwork",
		"exchange",
		"identity-implementation",
		"identity-proxy-factory",
		"test",
		"deploy-networks",
		"register-networks",
		"gateway",
	})
	require.NotNil(rootCmd.PersistentFlags().Lookup("log-level"))
	require.NotNil(rootCmd.PersistentFlags().Lookup("config"))
}

func TestSetupLoggingRejectsUnknownLevel(t *testing.T) {
	logLevel = "LOUD"
	t.Cleanup(func() { logLevel = "ERROR" })
	_, err := setupLogging(t.TempDir())
	require.ErrorContains(t, err, "invalid log level configured: LOUD")
}

func setupConfigTest(t *testing.T, explicit string) afero.Fs {
	viper.Reset()
	fs := afero.NewMemMapFs()
	app = application.New()
	app.Setup("/home/test/.tldeploy", logging.NoLog{}, config.New(fs), nil, fs)
	cfgFile = explicit
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
	return fs
}

func TestInitConfig(t *testing.T) {
	t.Run("default path may be absent", func(t *testing.T) {
		setupConfigTest(t, "")
		require.NoError(t, initConfig())
		require.Equal(t, "/home/test/.tldeploy/config.json", cfgFile)
		require.False(t, app.Conf.ConfigFileExists())
	})

	t.Run("explicit file is read", func(t *testing.T) {
		fs := setupConfigTest(t, "/work/tldeploy.json")
		require.NoError(t, afero.WriteFile(fs, "/work/tldeploy.json", []byte(`{"jsonrpc": "http://node:8545"}`), 0o644))
		require.NoError(t, initConfig())
		require.Equal(t, "http://node:8545", app.Conf.GetConfigStringValue("jsonrpc"))
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		setupConfigTest(t, "/work/missing.json")
		require.ErrorContains(t, initConfig(), "config file /work/missing.json not found")
	})
}
