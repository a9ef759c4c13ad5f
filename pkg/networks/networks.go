// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networks

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
	"gopkg.in/yaml.v3"
)

//go:embed default_networks.yaml
var defaultNetworks []byte

// Record describes one currency network of a table. Unset fields take the
// table defaults.
type Record struct {
	Name                     string  `yaml:"name"`
	Symbol                   string  `yaml:"symbol"`
	Decimals                 *uint8  `yaml:"decimals,omitempty"`
	FeeDivisor               *uint64 `yaml:"feeDivisor,omitempty"`
	DefaultInterestRate      *int64  `yaml:"defaultInterestRate,omitempty"`
	CustomInterests          *bool   `yaml:"customInterests,omitempty"`
	PreventMediatorInterests *bool   `yaml:"preventMediatorInterests,omitempty"`
	ExpirationTime           *uint64 `yaml:"expirationTime,omitempty"`
	ExpirationDate           *string `yaml:"expirationDate,omitempty"`
	ContractName             string  `yaml:"contractName,omitempty"`
}

// Table is a list of currency networks sharing defaults
type Table struct {
	Defaults Record   `yaml:"defaults,omitempty"`
	Networks []Record `yaml:"networks"`
}

// Default is the embedded table of the currency networks deployed by
// deploy-networks
func Default() (*Table, error) {
	return Parse(bytes.NewReader(defaultNetworks))
}

// Load reads a table from a .yaml, .yml or .json file
func Load(fs afero.Fs, path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, params.NewInvalidParameterError("networks-file", path, "expected a .yaml, .yml or .json file")
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening networks file %s: %w", path, err)
	}
	defer f.Close()
	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed parsing networks file %s: %w", path, err)
	}
	return table, nil
}

// Parse decodes a table. A bare list of records is accepted as a table
// without defaults.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	table := &Table{}
	if err := decodeStrict(data, table); err != nil {
		var records []Record
		if listErr := decodeStrict(data, &records); listErr != nil {
			return nil, err
		}
		table.Networks = records
	}
	if len(table.Networks) == 0 {
		return nil, constants.ErrEmptyNetworksTable
	}
	return table, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Configs converts every record into a validated network configuration.
// Errors name the offending record.
func (t *Table) Configs() ([]deployer.NetworkConfig, error) {
	cfgs := make([]deployer.NetworkConfig, 0, len(t.Networks))
	for i, record := range t.Networks {
		cfg, err := record.withDefaults(t.Defaults).Config()
		if err != nil {
			return nil, fmt.Errorf("network %d (%s): %w", i, record.Name, err)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func (r Record) withDefaults(defaults Record) Record {
	if r.Decimals == nil {
		r.Decimals = defaults.Decimals
	}
	if r.FeeDivisor == nil {
		r.FeeDivisor = defaults.FeeDivisor
	}
	if r.DefaultInterestRate == nil {
		r.DefaultInterestRate = defaults.DefaultInterestRate
	}
	if r.CustomInterests == nil {
		r.CustomInterests = defaults.CustomInterests
	}
	if r.PreventMediatorInterests == nil {
		r.PreventMediatorInterests = defaults.PreventMediatorInterests
	}
	if r.ExpirationTime == nil && r.ExpirationDate == nil {
		r.ExpirationTime = defaults.ExpirationTime
		r.ExpirationDate = defaults.ExpirationDate
	}
	if r.ContractName == "" {
		r.ContractName = defaults.ContractName
	}
	return r
}

// Config validates r and converts it
func (r Record) Config() (deployer.NetworkConfig, error) {
	expiration, err := params.ResolveExpiration(r.ExpirationTime, r.ExpirationDate)
	if err != nil {
		return deployer.NetworkConfig{}, err
	}
	cfg := deployer.NetworkConfig{
		Name:           r.Name,
		Symbol:         r.Symbol,
		Decimals:       constants.DefaultDecimals,
		ExpirationTime: expiration,
		ContractName:   r.ContractName,
	}
	if r.Decimals != nil {
		cfg.Decimals = *r.Decimals
	}
	if r.FeeDivisor != nil {
		cfg.FeeDivisor = *r.FeeDivisor
	}
	if r.DefaultInterestRate != nil {
		cfg.DefaultInterestRate = *r.DefaultInterestRate
	}
	if r.CustomInterests != nil {
		cfg.CustomInterests = *r.CustomInterests
	}
	if r.PreventMediatorInterests != nil {
		cfg.PreventMediatorInterests = *r.PreventMediatorInterests
	}
	if err := cfg.Validate(); err != nil {
		return deployer.NetworkConfig{}, err
	}
	return cfg, nil
}

// TestPreset is the set of networks deployed by the test command
func TestPreset(expirationTime uint64) []deployer.NetworkConfig {
	return []deployer.NetworkConfig{
		{
			Name:            "Cash",
			Symbol:          "CASH",
			Decimals:        4,
			FeeDivisor:      1000,
			CustomInterests: true,
			ExpirationTime:  expirationTime,
		},
		{
			Name:                "Work Hours",
			Symbol:              "HOU",
			Decimals:            4,
			DefaultInterestRate: 1000,
			ExpirationTime:      expirationTime,
		},
		{
			Name:           "Beers",
			Symbol:         "BEER",
			ExpirationTime: expirationTime,
		},
	}
}
