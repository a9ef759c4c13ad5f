// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GroupedFlags struct {
	Name            string
	ShowFlag        string
	FlagSet         *pflag.FlagSet
	IsAlwaysVisible bool
	// flags hidden by their definition stay hidden in the group section
	hidden map[string]bool
}

// WithGroupedHelp returns a cobra help function that lists each flag group
// in its own section. Groups that are not always visible are only listed
// when their show flag is part of osArgs.
func WithGroupedHelp(groups []GroupedFlags, osArgs func() []string) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		if err := cmd.Root().UsageFunc()(cmd); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error showing command usage: %v\n", err)
		}
		out := cmd.OutOrStdout()
		for _, group := range groups {
			if !group.IsAlwaysVisible && !slices.Contains(osArgs(), group.ShowFlag) {
				fmt.Fprintf(out, "\n%s:\n  (hidden) Use %s to show these options\n", group.Name, group.ShowFlag)
				continue
			}
			fmt.Fprintf(out, "\n%s:\n", group.Name)
			group.FlagSet.VisitAll(func(f *pflag.Flag) {
				f.Hidden = group.hidden[f.Name]
			})
			fmt.Fprint(out, group.FlagSet.FlagUsages())
		}
	}
}

// RegisterFlagGroup defines a group of flags on cmd. The flags are parsed
// like any other flag but only listed in their group section of the help.
func RegisterFlagGroup(cmd *cobra.Command, groupName string, showFlag string, isAlwaysVisible bool, defineFlags func(set *pflag.FlagSet)) GroupedFlags {
	show := false
	cmd.Flags().BoolVar(&show, showFlag, false, fmt.Sprintf("show %s", groupName))
	cmd.Flags().Lookup(showFlag).Hidden = true

	flagSet := pflag.NewFlagSet(groupName, pflag.ContinueOnError)
	defineFlags(flagSet)
	hidden := map[string]bool{}
	flagSet.VisitAll(func(f *pflag.Flag) {
		hidden[f.Name] = f.Hidden
	})
	cmd.Flags().AddFlagSet(flagSet)
	flagSet.VisitAll(func(f *pflag.Flag) {
		cmd.Flags().Lookup(f.Name).Hidden = true
	})

	return GroupedFlags{
		Name:            groupName,
		ShowFlag:        "--" + showFlag,
		FlagSet:         flagSet,
		IsAlwaysVisible: isAlwaysVisible,
		hidden:          hidden,
	}
}
