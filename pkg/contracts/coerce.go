// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contracts

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/ava-labs/libevm/accounts/abi"
	"github.com/holiman/uint256"
	"github.com/trustlines-protocol/tldeploy/pkg/params"
)

var bigIntType = reflect.TypeOf((*big.Int)(nil))

// coerceArgs converts integer arguments to the exact go types the abi
// packer requires for each input, so that callers can pass plain integers
// and overflows surface as parameter errors instead of packing failures.
func coerceArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args))
	}
	coerced := make([]any, len(args))
	for i, input := range inputs {
		v, err := coerce(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("argument %d", i)
			}
			return nil, params.NewInvalidParameterError(name, args[i], "%s", err)
		}
		coerced[i] = v
	}
	return coerced, nil
}

func coerce(t abi.Type, v any) (any, error) {
	expected := t.GetType()
	if reflect.TypeOf(v) == expected {
		return v, nil
	}
	if t.T != abi.IntTy && t.T != abi.UintTy {
		return v, nil
	}
	n, ok := toBig(v)
	if !ok {
		return v, nil
	}
	if !fits(t, n) {
		return nil, fmt.Errorf("value out of range for %s", t.String())
	}
	if expected == bigIntType {
		return n, nil
	}
	out := reflect.New(expected).Elem()
	switch out.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.SetInt(n.Int64())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out.SetUint(n.Uint64())
	default:
		return v, nil
	}
	return out.Interface(), nil
}

func fits(t abi.Type, n *big.Int) bool {
	if t.T == abi.UintTy {
		return n.Sign() >= 0 && n.BitLen() <= t.Size
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	minimum := new(big.Int).Neg(limit)
	maximum := new(big.Int).Sub(limit, big.NewInt(1))
	return n.Cmp(minimum) >= 0 && n.Cmp(maximum) <= 0
}

func toBig(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case *big.Int:
		return new(big.Int).Set(n), true
	case *uint256.Int:
		return n.ToBig(), true
	}
	return nil, false
}
