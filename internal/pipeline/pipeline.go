// Package pipeline wires enumeration, scraping, and persistence into one
// sequential run. A single browser page does all the work: the target site
// rate-limits aggressively, so parallel sessions only trade throughput for
// challenge pages.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/crelab/dircrawl/internal/browser"
	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/extract"
	"github.com/crelab/dircrawl/internal/fetcher"
	"github.com/crelab/dircrawl/internal/scrape"
	"github.com/crelab/dircrawl/internal/store"
	"github.com/crelab/dircrawl/pkg/records"
)

// DefaultPause spaces detail-page visits so the crawl stays under the
// site's rate limits.
const DefaultPause = 2 * time.Second

// Status is the externally observable phase of a run.
type Status int32

const (
	StatusIdle Status = iota
	StatusConfiguring
	StatusEnumerating
	StatusCheckingDuplicate
	StatusExtracting
	StatusPersisting
	StatusComplete
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusConfiguring:
		return "configuring"
	case StatusEnumerating:
		return "enumerating"
	case StatusCheckingDuplicate:
		return "checking-duplicate"
	case StatusExtracting:
		return "extracting"
	case StatusPersisting:
		return "persisting"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Fetch strategies for single-page modes. Directories always need the
// browser: their pagination is script-driven.
const (
	FetchBrowser = "browser"
	FetchStatic  = "static"
)

// Options configure one run.
type Options struct {
	URL     string
	Mode    Mode
	Limit   int           // max detail pages per run, 0 = unbounded
	Pause   time.Duration // delay between detail pages, 0 = DefaultPause
	Fetcher string        // FetchBrowser (default) or FetchStatic
}

// Pipeline owns the session and the store for the duration of a run.
// Not safe for concurrent runs; Status may be read from other goroutines.
type Pipeline struct {
	prof    *config.Profile
	session *browser.Session
	store   store.ContentStore
	snap    fetcher.Snapshotter
	log     *slog.Logger

	status atomic.Int32
}

func New(prof *config.Profile, session *browser.Session, st store.ContentStore, log *slog.Logger) *Pipeline {
	return &Pipeline{
		prof:    prof,
		session: session,
		store:   st,
		snap:    fetcher.NewStaticFetcher(browser.UserAgent),
		log:     log,
	}
}

// Status returns the current phase. Safe to call from any goroutine.
func (p *Pipeline) Status() Status {
	return Status(p.status.Load())
}

func (p *Pipeline) setStatus(s Status) {
	p.status.Store(int32(s))
	p.log.Debug("pipeline status", "status", s.String())
}

// Run executes one crawl. Only failures that prevent any work at all
// (browser launch, directory enumeration) are returned as errors; per-page
// failures are logged and recorded as unreachable so one bad profile never
// aborts a directory walk.
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	p.setStatus(StatusConfiguring)
	defer p.session.Stop()

	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = InferMode(opts.URL)
		p.log.Info("mode inferred", "mode", string(mode), "url", opts.URL)
	}
	if opts.Pause <= 0 {
		opts.Pause = DefaultPause
	}

	var err error
	switch mode {
	case ModePerson:
		err = p.runPerson(ctx, opts.URL, opts.Fetcher)
	case ModeProperty:
		err = p.runProperty(ctx, opts.URL, opts.Fetcher)
	case ModePersonDirectory:
		err = p.runDirectory(ctx, opts, p.prof.Directory, store.NamespacePerson)
	case ModePropertyDirectory:
		err = p.runDirectory(ctx, opts, p.prof.PropertyCards, store.NamespaceProperty)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}

	if err != nil {
		p.setStatus(StatusFailed)
		return err
	}
	p.setStatus(StatusComplete)
	return nil
}

func (p *Pipeline) runPerson(ctx context.Context, url, fetch string) error {
	p.setStatus(StatusCheckingDuplicate)
	if p.store.Exists(ctx, url, store.NamespacePerson) {
		p.log.Info("person already stored, nothing to do", "url", url)
		return nil
	}

	p.setStatus(StatusExtracting)
	var rec *records.PersonRecord
	if fetch == FetchStatic {
		rec = p.staticPerson(ctx, url)
	} else {
		rec = scrape.NewPersonScraper(p.session, p.prof, p.log).Scrape(ctx, url)
	}

	p.setStatus(StatusPersisting)
	if err := p.store.UpsertPerson(ctx, rec); err != nil {
		return fmt.Errorf("persist person %s: %w", url, err)
	}
	return nil
}

func (p *Pipeline) runProperty(ctx context.Context, url, fetch string) error {
	p.setStatus(StatusCheckingDuplicate)
	if p.store.Exists(ctx, url, store.NamespaceProperty) {
		p.log.Info("property already stored, nothing to do", "url", url)
		return nil
	}

	p.setStatus(StatusExtracting)
	var rec *records.PropertyRecord
	if fetch == FetchStatic {
		rec = p.staticProperty(ctx, url)
	} else {
		rec = scrape.NewPropertyScraper(p.session, p.prof, p.log).Scrape(ctx, url)
	}

	p.setStatus(StatusPersisting)
	if err := p.store.UpsertProperty(ctx, rec); err != nil {
		return fmt.Errorf("persist property %s: %w", url, err)
	}
	return nil
}

// staticPerson extracts from raw server-rendered HTML, skipping the browser
// entirely. Fields that only hydrate client-side come back as sentinels.
func (p *Pipeline) staticPerson(ctx context.Context, url string) *records.PersonRecord {
	rec := &records.PersonRecord{URL: url}
	snap, err := p.snap.Fetch(ctx, url)
	if err != nil {
		p.log.Warn("static fetch failed", "url", url, "error", err)
		rec.MarkUnreachable()
		return rec
	}
	extract.Person(snap, url, p.prof, rec)
	return rec
}

// staticProperty is the static counterpart of the property scraper: no
// cookie banner, no contact modal, just what the server already rendered.
func (p *Pipeline) staticProperty(ctx context.Context, url string) *records.PropertyRecord {
	rec := records.NewPropertyRecord(url)
	snap, err := p.snap.Fetch(ctx, url)
	if err != nil {
		p.log.Warn("static fetch failed", "url", url, "error", err)
		rec.Name = records.Unreachable
		return rec
	}

	rec.Name, rec.Address = extract.PropertyHeading(snap, p.prof)
	rec.Brokers = extract.StaticBrokers(snap, p.prof)
	rec.BrochureURL = extract.Brochure(snap, url, p.prof.CanonicalHost)

	sections := extract.Sections(snap, p.prof)
	rec.Description = extract.BuildDescription(sections)
	rec.SquareFootage = extract.SquareFootage(sections)
	rec.Address = extract.ReconcileAddress(rec.Name, rec.Address, sections.Address)
	return rec
}

// runDirectory enumerates the directory and works through each candidate.
// Enumeration failure is fatal; everything after that degrades per-entry.
func (p *Pipeline) runDirectory(ctx context.Context, opts Options, sel config.DirectorySelectors, namespace string) error {
	p.setStatus(StatusEnumerating)
	candidates, err := scrape.NewEnumerator(p.session, p.prof, p.log).
		Enumerate(ctx, opts.URL, sel, opts.Limit)
	if err != nil {
		return fmt.Errorf("enumerate %s: %w", opts.URL, err)
	}
	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}
	p.log.Info("enumeration complete", "candidates", len(candidates))

	for i, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.setStatus(StatusCheckingDuplicate)
		if p.store.Exists(ctx, cand.URL, namespace) {
			p.log.Info("already stored, skipping", "name", cand.Name, "url", cand.URL)
			continue
		}

		p.setStatus(StatusExtracting)
		p.log.Info("processing", "index", i+1, "total", len(candidates), "name", cand.Name)

		var upsertErr error
		if namespace == store.NamespacePerson {
			rec := scrape.NewPersonScraper(p.session, p.prof, p.log).Scrape(ctx, cand.URL)
			fillCandidateName(rec, cand.Name)
			p.setStatus(StatusPersisting)
			upsertErr = p.store.UpsertPerson(ctx, rec)
		} else {
			rec := scrape.NewPropertyScraper(p.session, p.prof, p.log).Scrape(ctx, cand.URL)
			if rec.Name == "" {
				rec.Name = cand.Name
			}
			p.setStatus(StatusPersisting)
			upsertErr = p.store.UpsertProperty(ctx, rec)
		}
		if upsertErr != nil {
			p.log.Error("persist failed, continuing", "url", cand.URL, "error", upsertErr)
		}

		pauseCtx(ctx, opts.Pause)
	}
	return nil
}

// fillCandidateName backfills the directory-card name when the profile page
// itself never yielded one.
func fillCandidateName(rec *records.PersonRecord, cardName string) {
	if rec.FirstName != "" || cardName == "" || cardName == records.UnknownName {
		return
	}
	first, last, _ := strings.Cut(cardName, " ")
	rec.FirstName = first
	rec.LastName = last
}

func pauseCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
