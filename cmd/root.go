// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/trustlines-protocol/tldeploy/cmd/deploycmd"
	"github.com/trustlines-protocol/tldeploy/pkg/application"
	"github.com/trustlines-protocol/tldeploy/pkg/cobrautils"
	"github.com/trustlines-protocol/tldeploy/pkg/config"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/prompts"
	"github.com/trustlines-protocol/tldeploy/pkg/ux"
	"go.uber.org/zap"
)

var (
	app *application.TLDeploy

	logLevel string
	cfgFile  string

	Version = "dev"
)

// tldeploy
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "tldeploy",
		Long: `tldeploy deploys the Trustlines contracts: currency networks, the exchange,
identity implementations and proxy factories, the currency network registry
entries and collateral gateways.

The compiled contracts are read from --contracts, ./contracts.json or
~/.tldeploy/contracts.json. Every flag can also be given as a TLDEPLOY_
prefixed environment variable or in the config file.`,
		PersistentPreRunE: createApp,
		Version:           Version,
		RunE:              cobrautils.CommandSuiteUsage,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	rootCmd.SetVersionTemplate("tldeploy version {{.Version}}\n")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobrautils.ConfigureRootCmd(rootCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tldeploy/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.DefaultLogLevel, "log level for the application")

	for _, cmd := range deploycmd.NewCmds(app) {
		rootCmd.AddCommand(cmd)
	}
	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}
	cf := config.New(afero.NewOsFs())
	app.Setup(baseDir, log, cf, prompts.NewPrompter(), afero.NewOsFs())
	if err := initConfig(); err != nil {
		return err
	}
	log.Info("starting command",
		zap.String("command", cmd.CommandPath()),
		zap.String("version", Version),
	)
	return nil
}

func setupEnv() (string, error) {
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)
	if err := os.MkdirAll(baseDir, perms.ReadWriteExecute); err != nil {
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}
	return baseDir, nil
}

func setupLogging(baseDir string) (logging.Logger, error) {
	var err error

	logConfig := logging.Config{}
	logConfig.LogLevel = logging.Info
	logConfig.DisplayLevel, err = logging.ToLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level configured: %s", logLevel)
	}
	logConfig.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(logConfig.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	logConfig.LogFormat = logging.Colors
	logConfig.MaxSize = constants.MaxLogFileSize
	logConfig.MaxFiles = constants.MaxNumOfLogFiles
	logConfig.MaxAge = constants.RetainOldFiles

	factory := logging.NewFactory(logConfig)
	log, err := factory.Make(constants.LogName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	// create the user facing logger as a global var
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// initConfig reads in config file and ENV variables if set. A config file
// given with --config must exist.
func initConfig() error {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = app.GetConfigPath()
	}
	app.Conf.SetConfig(app.Log, cfgFile)
	if explicit && !app.Conf.ConfigFileExists() {
		return fmt.Errorf("config file %s not found", app.Conf.GetConfigPath())
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	cobrautils.HandleErrors(rootCmd.Execute())
}
