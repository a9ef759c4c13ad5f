// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package key

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/trustlines-protocol/tldeploy/pkg/application"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"go.uber.org/zap"
)

const (
	keystoreFlagName     = constants.ConfigKeystoreKey
	passwordFileFlagName = "password-file"
	privateKeyFlagName   = constants.ConfigPrivateKeyKey
)

// SigningKeyFlags selects the key that signs all transactions of a command
type SigningKeyFlags struct {
	Keystore     string
	PasswordFile string
	PrivateKey   string
}

func (skf *SigningKeyFlags) AddToFlagSet(set *pflag.FlagSet, goal string) {
	set.StringVar(
		&skf.Keystore,
		keystoreFlagName,
		"",
		fmt.Sprintf("path to the encrypted keystore file of the account %s", goal),
	)
	set.StringVar(
		&skf.PasswordFile,
		passwordFileFlagName,
		"",
		"file holding the keystore password (default: $TLDEPLOY_KEYSTORE_PASSWORD or prompt)",
	)
	set.StringVar(
		&skf.PrivateKey,
		privateKeyFlagName,
		"",
		fmt.Sprintf("hex encoded private key of the account %s", goal),
	)
}

// Validate checks the flag combination without touching any file
func (skf *SigningKeyFlags) Validate() error {
	if skf.Keystore != "" && skf.PrivateKey != "" {
		return fmt.Errorf("%s and %s are mutually exclusive flags", keystoreFlagName, privateKeyFlagName)
	}
	if skf.PasswordFile != "" && skf.Keystore == "" {
		return fmt.Errorf("%s requires %s", passwordFileFlagName, keystoreFlagName)
	}
	return nil
}

// GetSigningKey loads the key. The keystore password is read from the
// password file, the environment or the terminal, in that order.
func (skf *SigningKeyFlags) GetSigningKey(app *application.TLDeploy) (*ecdsa.PrivateKey, error) {
	if err := skf.Validate(); err != nil {
		return nil, err
	}
	switch {
	case skf.PrivateKey != "":
		return ParsePrivateKey(skf.PrivateKey)
	case skf.Keystore != "":
		password, err := skf.keystorePassword(app)
		if err != nil {
			return nil, err
		}
		privateKey, err := LoadKeystore(app.Fs, skf.Keystore, password)
		if err != nil {
			return nil, err
		}
		app.Log.Info("unlocked keystore",
			zap.String("path", skf.Keystore),
			zap.Stringer("address", Address(privateKey)),
		)
		return privateKey, nil
	default:
		return nil, constants.ErrNoSigningKey
	}
}

func (skf *SigningKeyFlags) keystorePassword(app *application.TLDeploy) (string, error) {
	if skf.PasswordFile != "" {
		return app.ReadPasswordFile(skf.PasswordFile)
	}
	if app.Conf != nil && app.Conf.ConfigValueIsSet(constants.ConfigKeystorePasswordKey) {
		return app.Conf.GetConfigStringValue(constants.ConfigKeystorePasswordKey), nil
	}
	if app.Prompt == nil {
		return "", fmt.Errorf("no password for keystore %s", skf.Keystore)
	}
	return app.Prompt.CapturePassword(fmt.Sprintf("Password for keystore %s", skf.Keystore))
}
