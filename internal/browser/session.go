// Package browser owns the single automation session used by the whole
// crawl: one browser, one page. All navigation goes through it.
package browser

import (
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Desktop viewport and user agent. Mobile layouts and default automation
// fingerprints both trip the target site's bot heuristics. UserAgent is
// shared with the static HTTP fetcher so both paths present the same
// client.
const (
	viewportWidth  = 1280
	viewportHeight = 800

	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Session manages the lifecycle of one browser and its single page.
// Start is idempotent; Stop tears everything down and resets the handles so
// a later Start is well-defined. Session is not safe for concurrent use;
// the pipeline is a single sequential worker.
type Session struct {
	headless bool
	log      *slog.Logger

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// NewSession creates an unstarted session. headless=false keeps the browser
// visible, which is the only way a human can clear an interactive
// bot challenge.
func NewSession(headless bool, log *slog.Logger) *Session {
	return &Session{headless: headless, log: log}
}

// Start launches the browser and opens the page. It is a no-op when a page
// is already open. Launch failures are fatal to the caller: nothing in the
// pipeline can proceed without a session.
func (s *Session) Start() error {
	if s.page != nil {
		return nil
	}

	s.log.Info("starting browser", "headless", s.headless)

	l := launcher.New().
		Headless(s.headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return fmt.Errorf("open page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		s.log.Warn("set viewport failed", "error", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: UserAgent}); err != nil {
		s.log.Warn("set user agent failed", "error", err)
	}

	s.launcher = l
	s.browser = b
	s.page = page
	return nil
}

// Page returns the live page, starting the session lazily if needed.
func (s *Session) Page() (*rod.Page, error) {
	if s.page == nil {
		if err := s.Start(); err != nil {
			return nil, err
		}
	}
	return s.page, nil
}

// Active reports whether a page is currently open.
func (s *Session) Active() bool { return s.page != nil }

// Stop closes page, browser, and the underlying launcher process in order,
// swallowing individual close errors, then resets all handles. Safe to call
// repeatedly and on a never-started session.
func (s *Session) Stop() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			s.log.Debug("page close", "error", err)
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.log.Debug("browser close", "error", err)
		}
	}
	if s.launcher != nil {
		s.launcher.Kill()
	}
	s.page = nil
	s.browser = nil
	s.launcher = nil
}
