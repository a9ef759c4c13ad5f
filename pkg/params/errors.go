// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package params

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every validation failure of this package
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError names the offending parameter and echoes its value
type InvalidParameterError struct {
	Name   string
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Name, e.Value, e.Reason)
}

func (*InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func NewInvalidParameterError(name string, value any, reason string, args ...any) error {
	valueStr := ""
	if value != nil {
		valueStr = fmt.Sprint(value)
	}
	return &InvalidParameterError{
		Name:   name,
		Value:  valueStr,
		Reason: fmt.Sprintf(reason, args...),
	}
}
