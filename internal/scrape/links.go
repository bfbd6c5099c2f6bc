// Package scrape drives the live browser session: directory enumeration and
// the per-page person/property scrapers. All HTML interpretation is
// delegated to the extract package so that everything below the navigation
// layer stays testable.
package scrape

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/crelab/dircrawl/internal/browser"
	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/extract"
	"github.com/crelab/dircrawl/pkg/records"
)

const (
	directoryLoadTimeout = 30 * time.Second
	cardWaitTimeout      = 10 * time.Second
	nextButtonTimeout    = 3 * time.Second
)

var pagingParamRe = regexp.MustCompile(`[?&](?:numberOfResults|first)=\d+`)

// CleanDirectoryURL strips the result-count and offset query parameters
// that pin a search page to a stale window, then repairs the separators the
// removal leaves behind. URLs without either parameter pass through
// untouched: the search pages also carry '&'-joined fragment params that
// must never be rewritten.
func CleanDirectoryURL(raw string) string {
	if !pagingParamRe.MatchString(raw) {
		return raw
	}

	u := pagingParamRe.ReplaceAllString(raw, "")
	u = strings.ReplaceAll(u, "?&", "?")
	u = strings.ReplaceAll(u, "&&", "&")

	base, frag, hasFrag := strings.Cut(u, "#")
	// Removing the leading parameter leaves the remainder keyed by '&'
	// with no '?' at all; promote the first separator, but only in the
	// query portion.
	if !strings.Contains(base, "?") {
		if i := strings.Index(base, "&"); i >= 0 {
			base = base[:i] + "?" + base[i+1:]
		}
	}
	base = strings.TrimRight(base, "?&")
	if hasFrag {
		return base + "#" + frag
	}
	return base
}

// candidateSet accumulates link candidates in discovery order, deduplicated
// by the (name, url) pair, bounded by limit (0 means unbounded).
type candidateSet struct {
	limit int
	seen  map[string]bool
	items []records.LinkCandidate
}

func newCandidateSet(limit int) *candidateSet {
	return &candidateSet{limit: limit, seen: make(map[string]bool)}
}

// add inserts c unless it is a duplicate. The return value reports whether
// the set is now full.
func (s *candidateSet) add(c records.LinkCandidate) bool {
	key := c.Name + "\x00" + c.URL
	if !s.seen[key] && !s.full() {
		s.seen[key] = true
		s.items = append(s.items, c)
	}
	return s.full()
}

func (s *candidateSet) full() bool {
	return s.limit > 0 && len(s.items) >= s.limit
}

// Enumerator walks a paginated directory and collects candidate links.
type Enumerator struct {
	session *browser.Session
	prof    *config.Profile
	log     *slog.Logger
}

func NewEnumerator(session *browser.Session, prof *config.Profile, log *slog.Logger) *Enumerator {
	return &Enumerator{session: session, prof: prof, log: log}
}

// Enumerate loads the cleaned directory URL and pages through results until
// the Next control disappears, the page cap is hit, the limit fills, or
// pagination stalls. A stalled click (first card unchanged) gets exactly
// one retry before the walk stops.
func (e *Enumerator) Enumerate(ctx context.Context, dirURL string, sel config.DirectorySelectors, limit int) ([]records.LinkCandidate, error) {
	page, err := e.session.Page()
	if err != nil {
		return nil, err
	}

	cleaned := CleanDirectoryURL(dirURL)
	if cleaned != dirURL {
		e.log.Info("cleaned directory url", "url", cleaned)
	}
	if err := page.Timeout(directoryLoadTimeout).Navigate(cleaned); err != nil {
		return nil, err
	}
	// The cards render after the load event; both waits are best-effort
	// because a slow page may still yield results on snapshot.
	if err := page.Timeout(directoryLoadTimeout).WaitLoad(); err != nil {
		e.log.Warn("directory load event timed out, continuing", "error", err)
	}
	if _, err := page.Timeout(cardWaitTimeout).Element(sel.Card); err != nil {
		e.log.Warn("no directory card appeared yet, continuing", "selector", sel.Card, "error", err)
	}

	set := newCandidateSet(limit)
	for pageNum := 1; pageNum <= e.prof.MaxPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return set.items, err
		}

		e.settle(page)
		snapshot, err := page.HTML()
		if err != nil {
			return set.items, err
		}

		cards := extract.DirectoryCards(snapshot, cleaned, sel)
		e.log.Info("directory page scanned", "page", pageNum, "cards", len(cards), "total", len(set.items))
		for _, c := range cards {
			if set.add(c) {
				return set.items, nil
			}
		}

		next, err := page.Timeout(nextButtonTimeout).Element(sel.Next)
		if err != nil {
			e.log.Info("no next control, enumeration complete", "pages", pageNum)
			return set.items, nil
		}
		if visible, _ := next.Visible(); !visible {
			e.log.Info("next control hidden, enumeration complete", "pages", pageNum)
			return set.items, nil
		}

		before := extract.FirstCardText(snapshot, sel.Card)
		if !e.clickNext(page, next, sel.Card, before) {
			e.log.Warn("pagination stalled, stopping", "page", pageNum)
			return set.items, nil
		}
	}

	e.log.Warn("page cap reached", "cap", e.prof.MaxPages)
	return set.items, nil
}

// settle scrolls the page twice to trigger lazy card rendering.
func (e *Enumerator) settle(page *rod.Page) {
	for i := 0; i < 2; i++ {
		if err := page.Mouse.Scroll(0, 600, 2); err != nil {
			return
		}
		time.Sleep(e.prof.ScrollPause)
	}
}

// clickNext fires the Next control through the element's own click handler
// and verifies that the first card changed. One retry is allowed; a second
// stall means the site stopped serving new pages.
func (e *Enumerator) clickNext(page *rod.Page, next *rod.Element, cardSel, before string) bool {
	for attempt := 0; attempt < 2; attempt++ {
		if _, err := next.Eval(`() => this.click()`); err != nil {
			return false
		}
		time.Sleep(e.prof.ClickWait)

		snapshot, err := page.HTML()
		if err != nil {
			return false
		}
		if extract.FirstCardText(snapshot, cardSel) != before {
			return true
		}
	}
	return false
}
