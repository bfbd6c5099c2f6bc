package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/crelab/dircrawl/internal/browser"
	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/extract"
	"github.com/crelab/dircrawl/pkg/records"
)

const (
	propertyLoadTimeout = 45 * time.Second
	cookieTimeout       = 3 * time.Second
	modalWait           = 5 * time.Second
	headingPolls        = 5
	headingPollPause    = time.Second
	headingMinLen       = 5
)

// PropertyScraper loads one listing page, works through its cookie banner
// and contact modal, and extracts the record.
type PropertyScraper struct {
	session *browser.Session
	prof    *config.Profile
	log     *slog.Logger
}

func NewPropertyScraper(session *browser.Session, prof *config.Profile, log *slog.Logger) *PropertyScraper {
	return &PropertyScraper{session: session, prof: prof, log: log}
}

// Scrape always returns a record; a page that cannot be reached comes back
// with the unreachable sentinel in the name and defaults everywhere else.
func (s *PropertyScraper) Scrape(ctx context.Context, url string) *records.PropertyRecord {
	url = rewriteStagingHost(url, s.prof)
	rec := records.NewPropertyRecord(url)

	page, err := s.session.Page()
	if err != nil {
		s.log.Error("browser unavailable", "url", url, "error", err)
		rec.Name = records.Unreachable
		return rec
	}

	if err := page.Timeout(propertyLoadTimeout).Navigate(url); err != nil {
		s.log.Warn("property unreachable", "url", url, "error", err)
		rec.Name = records.Unreachable
		return rec
	}
	if err := page.Timeout(propertyLoadTimeout).WaitLoad(); err != nil {
		s.log.Warn("property did not finish loading", "url", url, "error", err)
	}

	s.dismissCookieBanner(page)

	// The heading hydrates late on listing pages; poll until it carries a
	// real name instead of the placeholder shell.
	var snapshot string
	for i := 0; i < headingPolls; i++ {
		snapshot, _ = page.HTML()
		name, headingAddr := extract.PropertyHeading(snapshot, s.prof)
		if len(name) > headingMinLen {
			rec.Name = name
			rec.Address = headingAddr
			break
		}
		if i == 0 && name != "" {
			rec.Name = name
			rec.Address = headingAddr
		}
		sleepCtx(ctx, headingPollPause)
	}

	rec.Brokers = extract.StaticBrokers(snapshot, s.prof)
	rec.BrochureURL = extract.Brochure(snapshot, url, s.prof.CanonicalHost)

	if modalSnapshot, ok := s.openContactModal(ctx, page); ok {
		if rec.BrochureURL == records.NotFound {
			rec.BrochureURL = extract.Brochure(modalSnapshot, url, s.prof.CanonicalHost)
		}
		if modal := extract.ModalBrokers(modalSnapshot, s.prof); len(modal) > 0 {
			rec.Brokers = append(rec.Brokers, modal...)
		} else if c := extract.GreedyContact(modalSnapshot, s.prof); c != nil {
			rec.Brokers = append(rec.Brokers, *c)
		}
		snapshot = modalSnapshot
	}

	sections := extract.Sections(snapshot, s.prof)
	rec.Description = extract.BuildDescription(sections)
	rec.SquareFootage = extract.SquareFootage(sections)
	rec.Address = extract.ReconcileAddress(rec.Name, rec.Address, sections.Address)

	s.log.Info("property scraped", "url", url, "name", rec.Name, "brokers", len(rec.Brokers))
	return rec
}

// dismissCookieBanner clicks the consent button when one shows up; listing
// pages hide the contact controls behind it.
func (s *PropertyScraper) dismissCookieBanner(page *rod.Page) {
	btn, err := page.Timeout(cookieTimeout).Element(s.prof.Property.CookieButton)
	if err != nil {
		return
	}
	if visible, _ := btn.Visible(); !visible {
		return
	}
	if _, err := btn.Eval(`() => this.click()`); err != nil {
		s.log.Debug("cookie banner click failed", "error", err)
	}
}

// openContactModal clicks the first visible broker-contact button and waits
// for the modal content to render. Returns the post-modal snapshot. Hidden
// duplicates of the button are common, so every match is considered.
func (s *PropertyScraper) openContactModal(ctx context.Context, page *rod.Page) (string, bool) {
	if _, err := page.Timeout(cookieTimeout).Element(s.prof.Property.ModalButtons); err != nil {
		return "", false
	}
	btns, err := page.Elements(s.prof.Property.ModalButtons)
	if err != nil {
		return "", false
	}

	var btn *rod.Element
	for _, b := range btns {
		if visible, _ := b.Visible(); visible {
			btn = b
			break
		}
	}
	if btn == nil {
		return "", false
	}
	if _, err := btn.Eval(`() => this.click()`); err != nil {
		s.log.Debug("contact modal click failed", "error", err)
		return "", false
	}

	sleepCtx(ctx, modalWait)
	snapshot, err := page.HTML()
	if err != nil {
		return "", false
	}
	return snapshot, true
}
