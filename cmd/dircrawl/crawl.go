package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crelab/dircrawl/internal/browser"
	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/pipeline"
	"github.com/crelab/dircrawl/internal/store"
)

func newCrawlCmd() *cobra.Command {
	var (
		mode        string
		fetch       string
		limit       int
		maxPages    int
		pause       time.Duration
		profilePath string
		showBrowser bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Crawl a directory, profile, or listing URL",
		Long: `crawl runs the full pipeline against one start URL. Directory URLs are
paginated and every discovered entry is scraped; profile and listing URLs
are scraped directly. The page kind is inferred from the URL shape unless
--mode overrides it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := pipeline.Mode(mode)
			if !pipeline.ValidMode(m) {
				return fmt.Errorf("invalid --mode %q", mode)
			}
			if fetch != pipeline.FetchBrowser && fetch != pipeline.FetchStatic {
				return fmt.Errorf("invalid --fetcher %q", fetch)
			}

			prof, err := config.LoadProfile(profilePath)
			if err != nil {
				return fmt.Errorf("load profile: %w", err)
			}
			if maxPages > 0 {
				prof.MaxPages = maxPages
			}

			log := slog.Default()
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			st, err := buildStore(cmd, dryRun, log)
			if err != nil {
				return err
			}

			session := browser.NewSession(!showBrowser, log)
			p := pipeline.New(prof, session, st, log)
			return p.Run(ctx, pipeline.Options{
				URL:     args[0],
				Mode:    m,
				Limit:   limit,
				Pause:   pause,
				Fetcher: fetch,
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(pipeline.ModeAuto), "page kind: auto, person, property, person-directory, property-directory")
	cmd.Flags().StringVar(&fetch, "fetcher", pipeline.FetchBrowser, "browser (rendered) or static (plain HTTP, single-page modes only)")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many entries (0 = all)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "pagination cap override (0 = profile default)")
	cmd.Flags().DurationVar(&pause, "pause", pipeline.DefaultPause, "delay between detail pages")
	cmd.Flags().StringVar(&profilePath, "config", "", "YAML site profile override")
	cmd.Flags().BoolVar(&showBrowser, "show-browser", false, "run the browser with a visible window")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "scrape without persisting anything")
	return cmd
}

// buildStore picks the vector store when credentials are present, and the
// no-op store for dry runs or credential-less environments.
func buildStore(cmd *cobra.Command, dryRun bool, log *slog.Logger) (store.ContentStore, error) {
	if dryRun {
		return &store.NopStore{Log: log}, nil
	}

	cfg := config.StoreFromEnv()
	if !cfg.Configured() {
		log.Warn("store credentials missing, records will not be persisted",
			"need", "PINECONE_API_KEY, OPENAI_API_KEY")
		return &store.NopStore{Log: log}, nil
	}

	st, err := store.NewVectorStore(cmd.Context(), cfg, store.NewOpenAIEmbedder(cfg.OpenAIAPIKey), log)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	return st, nil
}
