package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the release build with -ldflags.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dircrawl version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "dircrawl", version)
		},
	}
}
