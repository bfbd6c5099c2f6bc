package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/normalize"
	"github.com/crelab/dircrawl/pkg/records"
)

const (
	descriptionMax   = 1500
	sectionBlocksMax = 10
)

var (
	sqftRe       = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*\s*-\s*)?\d{1,3}(?:,\d{3})*\s*SF`)
	stateZipRe   = regexp.MustCompile(`[A-Z]{2}\s+\d{5}`)
	headingStops = map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true}
)

// PropertyHeading splits the primary heading's multi-line text into a name
// (first line) and address (remaining lines). Generic placeholder titles
// are discarded.
func PropertyHeading(snapshot string, prof *config.Profile) (name, address string) {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return "", ""
	}
	text := blockText(doc.Find("h1").First())
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" || lower == "cbre" || lower == prof.CanonicalHost {
		return "", ""
	}

	var parts []string
	for _, l := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(l); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", ""
	}
	name = parts[0]
	if len(parts) > 1 {
		address = strings.Join(parts[1:], ", ")
	}
	return name, address
}

// StaticBrokers scans contact/agent/broker-labeled blocks that are visible
// without any modal interaction. Blocks yield a contact when they contain
// tel:/mailto: links, or failing that, phone/email-shaped text.
func StaticBrokers(snapshot string, prof *config.Profile) []records.BrokerContact {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return nil
	}

	var brokers []records.BrokerContact
	doc.Find(prof.Property.StaticContacts).Each(func(_ int, block *goquery.Selection) {
		text := blockText(block)
		if !containsAnyFold(text, []string{"contact", "agent", "broker"}) {
			return
		}

		set := classifyPhones(telLinksWithText(block), prof.MobileWords)
		if len(set.All) == 0 {
			for _, raw := range findRawPhones(text) {
				if num := normalize.Phone(raw); num != "" {
					set.All = append(set.All, num)
					if set.Office == "" {
						set.Office = num
					}
				}
			}
		}

		emails := findEmails(text)
		if len(set.All) == 0 && len(emails) == 0 {
			return
		}

		// Precedence matters: a grouped selector would return whatever
		// matches first in document order, and the section heading usually
		// precedes the name element.
		name := firstText(block, "strong", "h3", "h4", `[class*="name"]`)
		if name == "" {
			name = "Contact"
		}
		brokers = append(brokers, records.BrokerContact{
			Name:         name,
			OfficePhone:  set.Office,
			MobilePhone:  set.Mobile,
			PhoneNumbers: set.All,
			Emails:       emails,
		})
	})
	return brokers
}

// ModalBrokers parses broker cards rendered inside the contact modal.
// When structured parsing yields nothing, GreedyContact is the caller's
// fallback.
func ModalBrokers(snapshot string, prof *config.Profile) []records.BrokerContact {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return nil
	}

	cards := doc.Find(prof.Property.BrokerCards)
	if cards.Length() == 0 {
		cards = doc.Find(prof.Property.BrokerFallback)
	}

	var brokers []records.BrokerContact
	cards.Each(func(_ int, card *goquery.Selection) {
		name := firstText(card, `[class*="name"]`, "strong", "h4", "span")

		set := classifyPhones(telLinksWithContext(card), prof.MobileWords)
		emails := mailtoAddrs(card)

		if name == "" && len(set.All) == 0 {
			return
		}
		brokers = append(brokers, records.BrokerContact{
			Name:         name,
			OfficePhone:  set.Office,
			MobilePhone:  set.Mobile,
			PhoneNumbers: set.All,
			Emails:       emails,
		})
	})
	return brokers
}

// GreedyContact is the last-resort single regex pass over the modal's full
// text. Returns nil when neither phones nor emails surface.
func GreedyContact(snapshot string, prof *config.Profile) *records.BrokerContact {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return nil
	}
	container := doc.Find(prof.Property.ModalContainer).First()
	if container.Length() == 0 {
		return nil
	}
	text := blockText(container)

	var phones []string
	for _, raw := range findRawPhones(text) {
		if num := normalize.Phone(raw); num != "" {
			phones = append(phones, num)
		}
	}
	emails := findEmails(text)
	if len(phones) == 0 && len(emails) == 0 {
		return nil
	}
	return &records.BrokerContact{
		Name:         "Alternative Contact",
		PhoneNumbers: phones,
		Emails:       emails,
	}
}

// firstText tries each selector in turn and returns the text of the first
// one that matches something non-empty.
func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if t := flatText(sel.Find(s).First()); t != "" {
			return t
		}
	}
	return ""
}

// telLinksWithText labels each tel: link with its own text plus aria-label.
func telLinksWithText(sel *goquery.Selection) []labeledPhone {
	var out []labeledPhone
	sel.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		aria, _ := a.Attr("aria-label")
		out = append(out, labeledPhone{
			label:  strings.ToLower(flatText(a)) + " " + aria,
			number: strings.TrimPrefix(href, "tel:"),
		})
	})
	return out
}

// telLinksWithContext widens the label to include the parent element's
// text; modal cards put "Mobile"/"Office" captions next to the link rather
// than on it.
func telLinksWithContext(sel *goquery.Selection) []labeledPhone {
	var out []labeledPhone
	sel.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		aria, _ := a.Attr("aria-label")
		label := strings.ToLower(flatText(a)) + " " + strings.ToLower(aria) + " " + strings.ToLower(flatText(a.Parent()))
		out = append(out, labeledPhone{
			label:  label,
			number: strings.TrimPrefix(href, "tel:"),
		})
	})
	return out
}

// PropertySections is the precision pass over the rendered page: section
// text keyed by "highlights"/"overview" headings, the structured address,
// a class-selector description fallback, and the square-footage match.
type PropertySections struct {
	Highlights string
	Overview   string
	Fallback   string
	Address    string
	SqFt       string
}

// Sections walks heading-like elements looking for highlights/overview
// titles and collects up to ten following sibling blocks for each.
func Sections(snapshot string, prof *config.Profile) PropertySections {
	var out PropertySections
	doc, err := ParseHTML(snapshot)
	if err != nil {
		return out
	}

	doc.Find(prof.Property.SectionTitles).Each(func(_ int, el *goquery.Selection) {
		txt := strings.ToLower(flatText(el))
		var key *string
		switch {
		case strings.Contains(txt, "highlights"):
			key = &out.Highlights
		case strings.Contains(txt, "overview"):
			key = &out.Overview
		}
		if key == nil || *key != "" {
			return
		}
		*key = collectSiblingBlocks(el)
	})

	for _, sel := range strings.Split(prof.Property.AddressBlocks, ",") {
		el := doc.Find(strings.TrimSpace(sel)).First()
		if el.Length() == 0 {
			continue
		}
		t := flatText(el)
		if len(t) > 5 && len(t) < 200 {
			out.Address = t
			break
		}
	}
	if out.Address == "" {
		doc.Find("p, div, span").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			t := flatText(el)
			if len(t) > 10 && len(t) < 100 && stateZipRe.MatchString(t) {
				out.Address = t
				return false
			}
			return true
		})
	}

	if m := doc.Find(prof.Property.Description).First(); m.Length() > 0 {
		out.Fallback = truncate(blockText(m), descriptionMax)
	}

	out.SqFt = sqftRe.FindString(blockText(doc.Selection))
	return out
}

// collectSiblingBlocks gathers text from up to ten siblings following a
// section heading, stopping at the next heading. When the heading has no
// siblings the walk continues from its parent's next sibling.
func collectSiblingBlocks(heading *goquery.Selection) string {
	runner := heading.Next()
	if runner.Length() == 0 {
		runner = heading.Parent().Next()
	}

	var blocks []string
	for runner.Length() > 0 && len(blocks) < sectionBlocksMax {
		if headingStops[goquery.NodeName(runner)] {
			break
		}
		if t := flatText(runner); len(t) > 5 {
			blocks = append(blocks, t)
		}
		runner = runner.Next()
	}
	return strings.Join(blocks, "\n")
}

// BuildDescription assembles the final description from the section texts,
// falling back to the class-selector capture when neither section matched.
func BuildDescription(s PropertySections) string {
	var parts []string
	if s.Highlights != "" {
		parts = append(parts, "Highlights:\n"+s.Highlights)
	}
	if s.Overview != "" {
		parts = append(parts, "Overview:\n"+s.Overview)
	}
	if len(parts) == 0 && s.Fallback != "" {
		parts = append(parts, s.Fallback)
	}
	return strings.Join(parts, "\n\n")
}

// ReconcileAddress merges the heading-derived address with the structured
// address block and strips the property name when it prefixes the result.
func ReconcileAddress(name, headingAddr, structured string) string {
	addr := headingAddr
	if structured != "" {
		switch {
		case addr == "":
			addr = structured
		case !strings.Contains(strings.ToLower(addr), strings.ToLower(structured)):
			addr = addr + ", " + structured
		}
	}

	if addr != "" && name != "" {
		if strings.HasPrefix(strings.ToLower(addr), strings.ToLower(name)) {
			addr = strings.TrimSpace(addr[len(name):])
			addr = strings.TrimSpace(strings.TrimPrefix(addr, ","))
		}
	}
	return addr
}

// SquareFootage returns the sentinel when no "<number> SF" pattern matched.
func SquareFootage(s PropertySections) string {
	if s.SqFt == "" {
		return records.NotAvail
	}
	return s.SqFt
}
