// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/ava-labs/libevm/common"
	"github.com/spf13/afero"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

// initializer is the method that configures contracts deployed without
// constructor arguments
const initializer = "init"

type rawContract struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode string          `json:"bytecode"`
}

// Contract is one compiled contract of the artifacts file
type Contract struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// Artifacts is the compiled contract collection, keyed by contract name
type Artifacts struct {
	path      string
	contracts map[string]*Contract
}

// Load reads a contracts.json file as shipped with the compiled contracts
// package: an object mapping contract names to their abi and bytecode.
func Load(fs afero.Fs, path string) (*Artifacts, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed reading compiled contracts %s: %w", path, err)
	}
	artifacts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed parsing compiled contracts %s: %w", path, err)
	}
	artifacts.path = path
	return artifacts, nil
}

func Parse(data []byte) (*Artifacts, error) {
	raw := map[string]rawContract{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	artifacts := &Artifacts{contracts: make(map[string]*Contract, len(raw))}
	for name, rc := range raw {
		contractABI, err := abi.JSON(bytes.NewReader(rc.ABI))
		if err != nil {
			return nil, fmt.Errorf("invalid abi for %s: %w", name, err)
		}
		bytecode := common.FromHex(strings.TrimSpace(rc.Bytecode))
		if len(bytecode) == 0 {
			return nil, fmt.Errorf("no bytecode for %s", name)
		}
		artifacts.contracts[name] = &Contract{
			Name:     name,
			ABI:      contractABI,
			Bytecode: bytecode,
		}
	}
	return artifacts, nil
}

// Path is the file the artifacts were loaded from, empty when parsed from memory
func (a *Artifacts) Path() string {
	return a.path
}

func (a *Artifacts) Get(name string) (*Contract, error) {
	c, ok := a.contracts[name]
	if !ok {
		return nil, params.NewInvalidParameterError(
			"contract",
			name,
			"not found in the compiled contracts (available: %s)",
			strings.Join(a.Names(), ", "),
		)
	}
	return c, nil
}

// Names lists the known contracts in sorted order
func (a *Artifacts) Names() []string {
	names := make([]string, 0, len(a.contracts))
	for name := range a.contracts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasInitializer reports whether the contract takes its settings through an
// init call after deployment instead of constructor arguments
func (c *Contract) HasInitializer() bool {
	_, ok := c.ABI.Methods[initializer]
	return ok && len(c.ABI.Constructor.Inputs) == 0
}

// DeployData is the creation code followed by the encoded constructor arguments
func (c *Contract) DeployData(args ...any) ([]byte, error) {
	coerced, err := coerceArgs(c.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor of %s: %w", c.Name, err)
	}
	packed, err := c.ABI.Pack("", coerced...)
	if err != nil {
		return nil, fmt.Errorf("failed packing constructor arguments of %s: %w", c.Name, err)
	}
	return append(slices.Clone(c.Bytecode), packed...), nil
}

// CallData encodes a call of method with args
func (c *Contract) CallData(method string, args ...any) ([]byte, error) {
	m, ok := c.ABI.Methods[method]
	if !ok {
		return nil, params.NewInvalidParameterError("method", method, "%s has no such method", c.Name)
	}
	coerced, err := coerceArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", c.Name, method, err)
	}
	packed, err := c.ABI.Pack(method, coerced...)
	if err != nil {
		return nil, fmt.Errorf("failed packing %s.%s arguments: %w", c.Name, method, err)
	}
	return packed, nil
}

// InitData encodes the initializer call, see HasInitializer
func (c *Contract) InitData(args ...any) ([]byte, error) {
	return c.CallData(initializer, args...)
}

// Unpack decodes the return values of method
func (c *Contract) Unpack(method string, data []byte) ([]any, error) {
	values, err := c.ABI.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("failed unpacking %s.%s result: %w", c.Name, method, err)
	}
	return values, nil
}
