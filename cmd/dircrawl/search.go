package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/store"
)

func newSearchCmd() *cobra.Command {
	var (
		topK       int
		typeFilter string
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search previously crawled records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.StoreFromEnv()
			if !cfg.Configured() {
				return store.ErrNotConfigured
			}

			log := slog.Default()
			st, err := store.NewVectorStore(cmd.Context(), cfg, store.NewOpenAIEmbedder(cfg.OpenAIAPIKey), log)
			if err != nil {
				return fmt.Errorf("connect store: %w", err)
			}

			out, err := st.Search(cmd.Context(), strings.Join(args, " "), topK, typeFilter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 5, "matches to return per record type")
	cmd.Flags().StringVar(&typeFilter, "type", "", "restrict to one record type: person or property")
	return cmd
}
