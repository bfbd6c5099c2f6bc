package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

const staticTimeout = 30 * time.Second

// StaticFetcher fetches raw HTML over HTTP with Colly. It only sees
// server-rendered markup; pages that hydrate their content client-side
// need the browser session instead.
type StaticFetcher struct {
	collector *colly.Collector
}

// NewStaticFetcher builds a fetcher pinned to the given user agent.
func NewStaticFetcher(userAgent string) *StaticFetcher {
	c := colly.NewCollector()
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(staticTimeout)
	if userAgent != "" {
		c.UserAgent = userAgent
	}
	return &StaticFetcher{collector: c}
}

// Fetch retrieves one page. The collector is cloned per call so repeated
// fetches of the same URL are never suppressed by visit tracking.
func (f *StaticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := f.collector.Clone()

	var (
		body     string
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("fetch %s: status %d: %w", url, r.StatusCode, err)
			return
		}
		fetchErr = fmt.Errorf("fetch %s: %w", url, err)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	return body, nil
}
