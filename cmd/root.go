// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package cmd wires the search core's internal packages into a command
// line front end: every subcommand here is a thin driver over
// internal/settings, internal/schema, internal/params, internal/query,
// internal/executor and internal/ingest, useful for inspecting generated
// request bodies, managing indices and loading entities without embedding
// the library in a service.
package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/logger"
)

var commands = []*cobraext.Command{
	setupQueryStringCommand(),
	setupBodyCommand(),
	setupUpgradeCommand(),
	setupResetCommand(),
	setupFormatEntitiesCommand(),
	setupIndexEntitiesCommand(),
	setupIndexActionsCommand(),
	setupDumpActionsCommand(),
	setupAnalyzeCommand(),
}

// RootCmd creates the root cobra command for the search core CLI.
func RootCmd() *cobra.Command {
	logger.SetupLogger()

	rootCmd := &cobra.Command{
		Use:          "openaleph-search",
		Short:        "openaleph-search - query, index and inspect FollowTheMoney entities in Elasticsearch",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cobraext.ComposeCommandActions(cmd, args, processPersistentFlags)
		},
	}
	rootCmd.PersistentFlags().BoolP(cobraext.VerboseFlagName, "v", false, cobraext.VerboseFlagDescription)

	for _, c := range commands {
		rootCmd.AddCommand(c.Command)
	}
	return rootCmd
}

// Commands returns the registered subcommands, sorted by name.
func Commands() []*cobraext.Command {
	sort.SliceStable(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

func processPersistentFlags(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool(cobraext.VerboseFlagName)
	if err != nil {
		return cobraext.FlagParsingError(err, cobraext.VerboseFlagName)
	}
	if verbose {
		logger.EnableDebugMode()
	}
	return nil
}
