package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/crelab/dircrawl/internal/browser"
	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/extract"
	"github.com/crelab/dircrawl/pkg/records"
)

const (
	personLoadTimeout = 30 * time.Second
	heroWaitTimeout   = 15 * time.Second
)

// PersonScraper loads one profile page and extracts its record.
type PersonScraper struct {
	session *browser.Session
	prof    *config.Profile
	log     *slog.Logger
}

func NewPersonScraper(session *browser.Session, prof *config.Profile, log *slog.Logger) *PersonScraper {
	return &PersonScraper{session: session, prof: prof, log: log}
}

// Scrape always returns a record: navigation failures yield one with every
// field set to the unreachable sentinel so the caller can persist the miss
// instead of losing the URL.
func (s *PersonScraper) Scrape(ctx context.Context, url string) *records.PersonRecord {
	url = rewriteStagingHost(url, s.prof)
	rec := &records.PersonRecord{URL: url}

	page, err := s.session.Page()
	if err != nil {
		s.log.Error("browser unavailable", "url", url, "error", err)
		rec.MarkUnreachable()
		return rec
	}

	if err := page.Timeout(personLoadTimeout).Navigate(url); err != nil {
		s.log.Warn("profile unreachable", "url", url, "error", err)
		rec.MarkUnreachable()
		return rec
	}
	if err := page.Timeout(personLoadTimeout).WaitLoad(); err != nil {
		s.log.Warn("profile did not finish loading", "url", url, "error", err)
		rec.MarkUnreachable()
		return rec
	}

	snapshot, _ := page.HTML()
	if containsChallenge(snapshot, s.prof.ChallengeMarkers) {
		s.log.Warn("bot challenge detected, waiting", "url", url, "wait", s.prof.ChallengeWait)
		sleepCtx(ctx, s.prof.ChallengeWait)
	}

	if _, err := page.Timeout(heroWaitTimeout).Element(s.prof.Person.HeroName); err != nil {
		// Extraction still runs: some fields survive on partially rendered
		// or challenge-interstitial pages.
		s.log.Warn("profile hero never rendered", "url", url)
	}

	snapshot, err = page.HTML()
	if err != nil {
		s.log.Warn("snapshot failed", "url", url, "error", err)
		rec.MarkUnreachable()
		return rec
	}

	extract.Person(snapshot, url, s.prof, rec)
	s.log.Info("person scraped", "url", url, "name", rec.Name(), "phones", len(rec.PhoneNumbers))
	return rec
}

// rewriteStagingHost maps links that leak from the staging environment onto
// the canonical host.
func rewriteStagingHost(url string, prof *config.Profile) string {
	if prof.StagingHost == "" {
		return url
	}
	return strings.Replace(url, prof.StagingHost, prof.CanonicalHost, 1)
}

func containsChallenge(snapshot string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(snapshot, m) {
			return true
		}
	}
	return false
}

// sleepCtx pauses for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
