// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package networks

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/trustlines-protocol/tldeploy/pkg/constants"
	"github.com/trustlines-protocol/tldeploy/pkg/deployer"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

func TestDefaultTable(t *testing.T) {
	require := require.New(t)
	table, err := Default()
	require.NoError(err)

	cfgs, err := table.Configs()
	require.NoError(err)
	require.Len(cfgs, 46)

	require.Equal(deployer.NetworkConfig{
		Name:            "US Dollar",
		Symbol:          "USD",
		Decimals:        8,
		FeeDivisor:      1000,
		CustomInterests: true,
		ExpirationTime:  1_613_347_200,
		ContractName:    constants.CurrencyNetworkContract,
	}, cfgs[0])

	beer := cfgs[24]
	require.Equal("Beer", beer.Name)
	require.Equal(uint8(1), beer.Decimals)
	require.Zero(beer.FeeDivisor)
	require.False(beer.CustomInterests)

	last := cfgs[45]
	require.Equal("Solomon Islands Dollar", last.Name)
	require.Equal("SBD", last.Symbol)
	require.Equal(uint8(7), last.Decimals)

	for _, cfg := range cfgs {
		require.NoError(cfg.Validate())
		require.Zero(cfg.DefaultInterestRate)
		require.False(cfg.PreventMediatorInterests)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []deployer.NetworkConfig
		errMsg   string
	}{
		{
			name: "defaults apply to unset fields",
			input: `
defaults:
  decimals: 2
  expirationDate: "2021-02-15"
networks:
  - name: Euro
    symbol: EUR
    feeDivisor: 100
    customInterests: true
  - name: Hours
    symbol: HOU
    decimals: 0
    expirationTime: 0
    defaultInterestRate: 250
`,
			expected: []deployer.NetworkConfig{
				{Name: "Euro", Symbol: "EUR", Decimals: 2, FeeDivisor: 100, CustomInterests: true, ExpirationTime: 1_613_347_200},
				{Name: "Hours", Symbol: "HOU", Decimals: 0, DefaultInterestRate: 250},
			},
		},
		{
			name:  "json list of records",
			input: `[{"name": "Euro", "symbol": "EUR", "preventMediatorInterests": true, "customInterests": true}]`,
			expected: []deployer.NetworkConfig{
				{Name: "Euro", Symbol: "EUR", Decimals: 4, CustomInterests: true, PreventMediatorInterests: true},
			},
		},
		{
			name: "invalid interest settings name the record",
			input: `
networks:
  - name: Euro
    symbol: EUR
  - name: Hours
    symbol: HOU
    customInterests: true
    defaultInterestRate: 100
`,
			errMsg: "network 1 (Hours)",
		},
		{
			name: "both expiration fields",
			input: `
networks:
  - name: Euro
    symbol: EUR
    expirationTime: 5
    expirationDate: "2021"
`,
			errMsg: "network 0 (Euro)",
		},
		{
			name:   "missing symbol",
			input:  "networks:\n  - name: Euro\n",
			errMsg: "network 0 (Euro)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			cfgs, err := table.Configs()
			if tt.errMsg != "" {
				require.ErrorIs(t, err, params.ErrInvalidParameter)
				require.ErrorContains(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, cfgs)
		})
	}
}

func TestParseRejects(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.ErrorIs(t, err, constants.ErrEmptyNetworksTable)

	_, err = Parse(strings.NewReader("networks: []"))
	require.ErrorIs(t, err, constants.ErrEmptyNetworksTable)

	_, err = Parse(strings.NewReader("networks:\n  - name: Euro\n    colour: blue\n"))
	require.ErrorContains(t, err, "colour")
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	fs := afero.NewMemMapFs()
	require.NoError(afero.WriteFile(fs, "/data/networks.json", []byte(`{"networks": [{"name": "Euro", "symbol": "EUR"}]}`), 0o644))

	table, err := Load(fs, "/data/networks.json")
	require.NoError(err)
	require.Len(table.Networks, 1)

	_, err = Load(fs, "/data/networks.toml")
	require.ErrorIs(err, params.ErrInvalidParameter)

	_, err = Load(fs, "/data/missing.yaml")
	require.ErrorContains(err, "failed opening networks file /data/missing.yaml")
}

func TestTestPreset(t *testing.T) {
	cfgs := TestPreset(constants.TestNetworkExpirationTime)
	require.Len(t, cfgs, 3)
	for _, cfg := range cfgs {
		require.NoError(t, cfg.Validate())
		require.Equal(t, constants.TestNetworkExpirationTime, cfg.ExpirationTime)
	}
	require.Equal(t, []string{"Cash", "Work Hours", "Beers"}, []string{cfgs[0].Name, cfgs[1].Name, cfgs[2].Name})
	require.Equal(t, int64(1000), cfgs[1].DefaultInterestRate)
	require.Zero(t, cfgs[2].Decimals)
}
