// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

func EnsureMutuallyExclusive(flags []bool) bool {
	set := 0
	for _, f := range flags {
		if !f {
			continue
		}
		set++
		if set > 1 {
			return false
		}
	}

	return true
}

// EnsureMutuallyExclusiveFlags fails when more than one of the named flags
// was given, on the command line or through the configuration
func EnsureMutuallyExclusiveFlags(set *pflag.FlagSet, names ...string) error {
	changed := make([]bool, len(names))
	for i, name := range names {
		changed[i] = set.Changed(name)
	}
	if EnsureMutuallyExclusive(changed) {
		return nil
	}
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "--" + name
	}
	return fmt.Errorf("%s are mutually exclusive flags", strings.Join(quoted, ", "))
}
