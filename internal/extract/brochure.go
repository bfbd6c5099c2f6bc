package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crelab/dircrawl/pkg/records"
)

// docAssetHints mark an href as pointing at a downloadable document rather
// than another page.
var docAssetHints = []string{".pdf", ".doc", ".zip", "fileassets", "resources", "brochure"}

// brochureWords are the link/button captions worth inspecting.
var brochureWords = []string{"brochure", "download", "flyer", "marketing"}

// Brochure resolves a downloadable brochure URL from the snapshot, or the
// sentinel. Data-attribute pill links are inspected first because they are
// the structured path on the target site; caption-matched anchors and
// buttons come second. A candidate pointing back at the page itself, or at
// a fragment/javascript pseudo-link, never wins.
func Brochure(snapshot, pageURL, canonicalHost string) string {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return records.NotFound
	}

	base := pageURL
	if base == "" {
		base = "https://" + canonicalHost + "/"
	}

	var found string
	try := func(raw, label string) bool {
		u := resolveBrochure(base, pageURL, raw, label)
		if u == "" {
			return false
		}
		found = u
		return true
	}

	doc.Find("[data-pill-link-info], [data-url], [data-href]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		raw := firstAttr(el, "data-pill-link-info", "data-url", "data-href", "href")
		assetType, _ := el.Attr("data-pill-asset-type")
		label := flatText(el) + " " + assetType
		return !try(raw, label)
	})
	if found != "" {
		return found
	}

	doc.Find(`a, button, div[class*="pill"]`).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !containsAnyFold(flatText(el), brochureWords) {
			return true
		}
		raw, ok := el.Attr("href")
		if !ok || raw == "" {
			// Buttons and pill wrappers carry the href on a nearby anchor.
			anchor := el.Find("a[href]").First()
			if anchor.Length() == 0 {
				anchor = el.Closest("a[href]")
			}
			raw, _ = anchor.Attr("href")
		}
		return !try(raw, flatText(el))
	})
	if found != "" {
		return found
	}
	return records.NotFound
}

// resolveBrochure validates one candidate href. Only document-asset URLs
// pass, and never the page's own URL.
func resolveBrochure(base, pageURL, raw, label string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "#" || strings.HasPrefix(raw, "javascript:") {
		return ""
	}

	abs := resolveURL(base, raw)
	if abs == "" || samePage(abs, pageURL) {
		return ""
	}
	if containsAnyFold(abs, docAssetHints) || containsAnyFold(label, docAssetHints) {
		return abs
	}
	return ""
}

// samePage compares two URLs ignoring query string and a trailing slash.
func samePage(a, b string) bool {
	return stripQuery(a) == stripQuery(b)
}

func stripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "/")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/")
}

func firstAttr(el *goquery.Selection, names ...string) string {
	for _, n := range names {
		if v, ok := el.Attr(n); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
