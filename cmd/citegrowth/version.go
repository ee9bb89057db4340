// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of citegrowth",
	Args:  cobra.NoArgs,
	// Skip the root pre-run; version needs no config.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "citegrowth %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
