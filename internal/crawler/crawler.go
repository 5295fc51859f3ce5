// Package crawler drives the pagination loop: fetch a listing page, extract
// refs, fetch and parse each unseen document, advance to the next page.
//
// The loop is strictly sequential. Fetch failures are fatal to the run and
// leave the snapshot as accumulated so far; re-invoking the crawler is the
// recovery mechanism, with the skip-if-present store check avoiding redundant
// work. Per-document extraction failures are logged and skipped.
package crawler

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonesrussell/lingcrawl/internal/corpus"
	"github.com/jonesrussell/lingcrawl/internal/document"
	"github.com/jonesrussell/lingcrawl/internal/listing"
	"github.com/jonesrussell/lingcrawl/internal/logger"
)

// PageFetcher retrieves a page by URL.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) ([]byte, error)
}

// Config holds the crawl entry points.
type Config struct {
	// BaseURL is the origin paths are resolved against.
	BaseURL string
	// StartPath is the first listing page path.
	StartPath string
	// DocumentPrefix is prepended to a ref to form a document page path.
	DocumentPrefix string
}

// Crawler runs one full crawl pass over the listing pages.
type Crawler struct {
	fetcher PageFetcher
	store   *corpus.Store
	log     logger.Interface
	cfg     Config
	phase   Phase
}

// New creates a crawler. Every log line of a run carries a fresh run ID.
func New(f PageFetcher, store *corpus.Store, log logger.Interface, cfg Config) *Crawler {
	return &Crawler{
		fetcher: f,
		store:   store,
		log:     log.With("run_id", uuid.NewString()),
		cfg:     cfg,
		phase:   PhaseAwaitingPage,
	}
}

// Phase returns the driver's current phase.
func (c *Crawler) Phase() Phase {
	return c.phase
}

// Run crawls from the start path until a listing page carries no next link,
// then normalizes and persists the corpus. The snapshot is also saved after
// every listing page so an aborted run keeps its progress.
func (c *Crawler) Run(ctx context.Context) error {
	c.log.Info("starting crawl",
		"base_url", c.cfg.BaseURL,
		"start_path", c.cfg.StartPath,
		"known_documents", c.store.Len(),
	)

	pagePath := c.cfg.StartPath
	pageNum := 0

	for {
		pageNum++

		c.phase = PhaseFetchingListing
		raw, err := c.fetcher.Fetch(ctx, c.cfg.BaseURL+pagePath)
		if err != nil {
			return fmt.Errorf("fetch listing page %d (%s): %w", pageNum, pagePath, err)
		}

		c.phase = PhaseExtractingRefs
		page, err := listing.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse listing page %d (%s): %w", pageNum, pagePath, err)
		}

		c.phase = PhaseFetchingDocuments
		added, err := c.fetchDocuments(ctx, page.Refs)

		if saveErr := c.store.Save(); saveErr != nil {
			return fmt.Errorf("save corpus snapshot: %w", saveErr)
		}
		if err != nil {
			return err
		}

		c.log.Info("listing page processed",
			"page", pageNum,
			"path", pagePath,
			"refs", len(page.Refs),
			"new_documents", added,
			"corpus_size", c.store.Len(),
		)

		if page.NextPath == "" {
			break
		}

		c.phase = PhaseAdvancing
		pagePath = page.NextPath
	}

	c.phase = PhaseDone
	c.store.Normalize()
	if err := c.store.Save(); err != nil {
		return fmt.Errorf("save corpus snapshot: %w", err)
	}

	c.log.Info("crawl complete",
		"pages", pageNum,
		"total_entries", c.store.Len(),
	)
	return nil
}

// fetchDocuments fetches and parses every ref not already stored, one at a
// time. A fetch failure is fatal; an extraction failure skips the document.
func (c *Crawler) fetchDocuments(ctx context.Context, refs []string) (int, error) {
	added := 0

	for _, ref := range refs {
		if ctx.Err() != nil {
			return added, ctx.Err()
		}
		if c.store.Has(ref) {
			continue
		}

		docURL := c.cfg.BaseURL + c.cfg.DocumentPrefix + ref

		raw, err := c.fetcher.Fetch(ctx, docURL)
		if err != nil {
			return added, fmt.Errorf("fetch document %s: %w", ref, err)
		}

		rec, err := document.Parse(raw, ref)
		if err != nil {
			c.log.Warn("document extraction failed, skipping",
				"ref", ref,
				"error", err.Error(),
			)
			continue
		}
		if rec == nil {
			c.log.Warn("document page unusable, skipping", "ref", ref)
			continue
		}

		if err := c.store.Insert(rec); err != nil {
			return added, fmt.Errorf("insert document %s: %w", ref, err)
		}
		added++

		c.log.Debug("document stored", "ref", ref, "title", rec.Title)
	}

	return added, nil
}
