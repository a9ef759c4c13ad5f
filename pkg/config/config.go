// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"go.uber.org/zap"
)

type Config struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Config {
	return &Config{fs: fs}
}

// SetConfig reads the optional json config file at s and enables the
// TLDEPLOY_ prefixed environment variables
func (c *Config) SetConfig(log logging.Logger, s string) {
	viper.SetFs(c.fs)
	viper.SetConfigType("json")
	viper.AddConfigPath(filepath.Dir(s))
	viper.SetConfigFile(s)
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Info("Using config file", zap.String("config-file", s))
	} else {
		log.Info("No config file found", zap.String("config-file", s))
	}
}

func (*Config) GetConfigPath() string {
	return viper.ConfigFileUsed()
}

func (c *Config) ConfigFileExists() bool {
	exists, err := afero.Exists(c.fs, c.GetConfigPath())
	return err == nil && exists
}

func (*Config) ConfigValueIsSet(key string) bool {
	return viper.IsSet(key)
}

func (*Config) GetConfigStringValue(key string) string {
	return viper.GetString(key)
}

// ApplyToFlags fills every flag the user did not set on the command line
// from the environment or the config file, in that order of precedence
func (*Config) ApplyToFlags(log logging.Logger, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !viper.IsSet(f.Name) {
			return
		}
		value := viper.GetString(f.Name)
		if setErr := flags.Set(f.Name, value); setErr != nil {
			err = fmt.Errorf("invalid configured value for %s: %w", f.Name, setErr)
			return
		}
		if f.Name == constants.ConfigKeystorePasswordKey || f.Name == constants.ConfigPrivateKeyKey {
			value = "<redacted>"
		}
		log.Debug("flag set from configuration", zap.String("flag", f.Name), zap.String("value", value))
	})
	return err
}
