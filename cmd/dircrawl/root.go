package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "dircrawl",
		Short: "Crawl a commercial real estate directory into a searchable vector index",
		Long: `dircrawl walks broker and listing directories on a commercial real
estate site, extracts structured person and property records through a real
browser session, and persists them into a vector index for semantic search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCrawlCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newVersionCmd())
	return root
}
