package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crelab/dircrawl/internal/normalize"
)

// labeledPhone pairs a raw number with the label/context text used to
// classify it as mobile or office.
type labeledPhone struct {
	label  string
	number string
}

// PhoneSet is the classified outcome of a contact scan: the first mobile
// match, the first non-mobile match, and every distinct normalized number
// in order of appearance.
type PhoneSet struct {
	Office string
	Mobile string
	All    []string
}

// classifyPhones normalizes each number and buckets it by label keywords.
// Numbers that normalize to nothing are dropped; duplicates are suppressed
// in the All list but still considered for the office/mobile slots.
func classifyPhones(items []labeledPhone, mobileWords []string) PhoneSet {
	var set PhoneSet
	seen := make(map[string]bool)
	for _, it := range items {
		num := normalize.Phone(it.number)
		if num == "" {
			continue
		}
		if !seen[num] {
			seen[num] = true
			set.All = append(set.All, num)
		}
		if containsAnyFold(it.label, mobileWords) {
			if set.Mobile == "" {
				set.Mobile = num
			}
		} else if set.Office == "" {
			set.Office = num
		}
	}
	return set
}

// telLinks collects tel: anchors under sel. Label precedence: aria-label,
// then the link's own text, then the container hint.
func telLinks(sel *goquery.Selection, containerHint string) []labeledPhone {
	var out []labeledPhone
	sel.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		number := strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
		label, ok := a.Attr("aria-label")
		if !ok || label == "" {
			label = flatText(a)
		}
		if label == "" {
			label = containerHint
		}
		out = append(out, labeledPhone{label: label, number: number})
	})
	return out
}

// mailtoAddrs collects mailto: anchors under sel, in order, deduplicated.
func mailtoAddrs(sel *goquery.Selection) []string {
	var out []string
	seen := make(map[string]bool)
	sel.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		addr := strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if addr != "" && !seen[addr] {
			seen[addr] = true
			out = append(out, addr)
		}
	})
	return out
}
