// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/afero"
	"github.com/trustlines-protocol/tldeploy/pkg/config"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/contracts"
	"github.com/trustlines-protocol/tldeploy/pkg/prompts"
	"go.uber.org/zap"
)

type TLDeploy struct {
	Log     logging.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
	Fs      afero.Fs
}

func New() *TLDeploy {
	return &TLDeploy{}
}

func (app *TLDeploy) Setup(baseDir string, log logging.Logger, conf *config.Config, prompt prompts.Prompter, fs afero.Fs) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.Fs = fs
}

func (app *TLDeploy) GetConfigPath() string {
	return filepath.Join(app.baseDir, constants.ConfigFileName)
}

// GetContractsPath resolves the compiled contracts file. Without an explicit
// path the working directory is searched first, then the base dir.
func (app *TLDeploy) GetContractsPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	for _, candidate := range []string{
		constants.DefaultContractsFile,
		filepath.Join(app.baseDir, constants.DefaultContractsFile),
	} {
		if exists, err := afero.Exists(app.Fs, candidate); err == nil && exists {
			return candidate, nil
		}
	}
	return "", constants.ErrNoContractsFile
}

func (app *TLDeploy) LoadArtifacts(path string) (*contracts.Artifacts, error) {
	path, err := app.GetContractsPath(path)
	if err != nil {
		return nil, err
	}
	artifacts, err := contracts.Load(app.Fs, path)
	if err != nil {
		return nil, err
	}
	app.Log.Info("loaded compiled contracts",
		zap.String("path", path),
		zap.Strings("contracts", artifacts.Names()),
	)
	return artifacts, nil
}

// ReadPasswordFile returns the first line of the file at path
func (app *TLDeploy) ReadPasswordFile(path string) (string, error) {
	data, err := afero.ReadFile(app.Fs, path)
	if err != nil {
		return "", fmt.Errorf("failed reading password file %s: %w", path, err)
	}
	password, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSuffix(password, "\r"), nil
}
