// Package crawl implements the crawl command: one full pass over the listing
// pages, ending with a persisted corpus snapshot.
package crawl

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/lingcrawl/internal/config"
	"github.com/jonesrussell/lingcrawl/internal/corpus"
	"github.com/jonesrussell/lingcrawl/internal/crawler"
	"github.com/jonesrussell/lingcrawl/internal/fetcher"
	"github.com/jonesrussell/lingcrawl/internal/logger"
)

// Command returns the crawl command.
func Command(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "crawl",
		Short: "Run one full crawl pass and persist the corpus snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if *debug {
				cfg.Logger.Level = "debug"
			}

			log, err := logger.New(&logger.Config{
				Level:       cfg.Logger.Level,
				Development: cfg.Logger.Development,
				Encoding:    cfg.Logger.Encoding,
			})
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}

			store, err := corpus.Load(cfg.Corpus.Path)
			if err != nil {
				return err
			}

			f := fetcher.New(fetcher.Config{
				UserAgent:   cfg.Crawler.UserAgent,
				Timeout:     cfg.Crawler.RequestTimeout,
				MaxBodySize: cfg.Crawler.MaxBodySize,
				MaxRetries:  cfg.Crawler.MaxRetries,
				RetryDelay:  cfg.Crawler.RetryDelay,
			}, log)

			c := crawler.New(f, store, log, crawler.Config{
				BaseURL:        cfg.Crawler.BaseURL,
				StartPath:      cfg.Crawler.StartPath,
				DocumentPrefix: cfg.Crawler.DocumentPrefix,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return c.Run(ctx)
		},
	}
}
