package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/internal/normalize"
	"github.com/crelab/dircrawl/pkg/records"
)

const bioSummaryMax = 500

// Person runs every profile-page field resolver against the snapshot and
// fills rec. Each resolver is independently guarded: a field that resolves
// to nothing takes its sentinel and never disturbs sibling fields.
func Person(snapshot, pageURL string, prof *config.Profile, rec *records.PersonRecord) {
	doc, err := ParseHTML(snapshot)
	if err != nil {
		rec.Email = records.NotFound
		rec.Experience = records.NotFound
		rec.VCardURL = records.NotFound
		return
	}

	personNameTitle(doc, prof, rec)
	personContacts(doc, prof, rec)
	personAddress(doc, prof, rec)
	personExperience(doc, prof, rec)
	personSpecialties(doc, prof, rec)
	personListings(doc, pageURL, prof, rec)
}

// personNameTitle splits the hero name on the first space; the title comes
// from whichever designation/title element matches first.
func personNameTitle(doc *goquery.Document, prof *config.Profile, rec *records.PersonRecord) {
	name := flatText(doc.Find(prof.Person.HeroName).First())
	if name != "" {
		first, last, _ := strings.Cut(name, " ")
		rec.FirstName = first
		rec.LastName = last
	}

	for _, sel := range []string{prof.Person.Designation, prof.Person.Title} {
		if t := flatText(doc.Find(sel).First()); t != "" {
			rec.Title = t
			break
		}
	}
}

// personContacts scans the hero block and the office card block for tel:
// and mailto: links, classifies phones by label keywords, and resolves the
// digital contact card URL.
func personContacts(doc *goquery.Document, prof *config.Profile, rec *records.PersonRecord) {
	var phones []labeledPhone
	phones = append(phones, telLinks(doc.Find(prof.Person.Hero).First(), "Phone")...)
	phones = append(phones, telLinks(doc.Find(prof.Person.OfficeCard).First(), "Office")...)

	set := classifyPhones(phones, prof.MobileWords)
	rec.OfficePhone = set.Office
	rec.MobilePhone = set.Mobile
	rec.PhoneNumbers = set.All

	var email string
	for _, sel := range []string{prof.Person.Hero, prof.Person.OfficeCard} {
		if addrs := mailtoAddrs(doc.Find(sel).First()); len(addrs) > 0 {
			email = addrs[0]
			break
		}
	}
	if email == "" {
		// Greedy fallback over the page's visible text.
		if addrs := findEmails(blockText(doc.Selection)); len(addrs) > 0 {
			email = addrs[0]
		}
	}
	if email == "" {
		email = records.NotFound
	}
	rec.Email = email

	rec.VCardURL = records.NotFound
	vcardSel := `a[aria-label*='` + prof.Person.ContactCardLabel + `']`
	if href, ok := doc.Find(prof.Person.Hero).First().Find(vcardSel).First().Attr("href"); ok && href != "" {
		if strings.HasPrefix(href, "/") {
			href = "https://" + prof.CanonicalHost + href
		}
		rec.VCardURL = href
	}
}

// personAddress locates the Associated Office designation block, strips
// boilerplate and phone lines, and parses the remainder as a postal
// address.
func personAddress(doc *goquery.Document, prof *config.Profile, rec *records.PersonRecord) {
	raw := blockText(doc.Find(prof.Person.OfficeCard).First().Find(prof.Person.OfficeDesignation).First())

	if raw == "" {
		// The class names shift between site releases; fall back to a
		// heading-text search walking up to the enclosing card.
		doc.Find("h3.cbre-c-inlineCards__title, h2, div").EachWithBreak(func(_ int, h *goquery.Selection) bool {
			if !strings.Contains(flatText(h), "Associated Office") {
				return true
			}
			container := h.Closest(prof.Person.OfficeWrapper)
			if container.Length() == 0 {
				container = h.Closest(prof.Person.OfficeCard)
			}
			if container.Length() == 0 {
				return true
			}
			if d := container.Find(prof.Person.OfficeDesignation).First(); d.Length() > 0 {
				raw = blockText(d)
			} else {
				raw = blockText(container)
			}
			return false
		})
	}
	if raw == "" {
		return
	}

	lines := normalize.CleanAddressLines(raw, prof.AddressJunk)
	if len(lines) == 0 {
		return
	}
	rec.FullAddress = strings.Join(lines, "\n")

	addr := normalize.Address(lines)
	rec.AddressLine = addr.Street
	rec.City = addr.City
	rec.State = addr.State
	rec.Zip = addr.Zip
}

// personExperience reads the content attached to a "Professional
// Experience" heading: the card's description element, else the heading's
// next sibling, else the parent minus the heading text.
func personExperience(doc *goquery.Document, prof *config.Profile, rec *records.PersonRecord) {
	rec.Experience = records.NotFound

	heading := findHeading(doc, prof.Person.BodyCardTitle+", h2, h3", "Professional Experience")
	if heading == nil {
		return
	}

	if d := heading.Parent().Find(prof.Person.BodyCardDesc).First(); d.Length() > 0 {
		if t := blockText(d); t != "" {
			rec.Experience = t
			return
		}
	}
	if sib := heading.Next(); sib.Length() > 0 {
		if t := blockText(sib); t != "" {
			rec.Experience = t
			return
		}
	}
	parentText := blockText(heading.Parent())
	headText := flatText(heading)
	if t := strings.TrimSpace(strings.Replace(parentText, headText, "", 1)); t != "" {
		rec.Experience = t
	}
}

// personSpecialties unions explicit tag elements with keyword hits in the
// bio text and captures a short bio summary.
func personSpecialties(doc *goquery.Document, prof *config.Profile, rec *records.PersonRecord) {
	bio := blockText(doc.Find(prof.Person.Bio).First())

	var specs []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			specs = append(specs, s)
		}
	}

	doc.Find(prof.Person.SpecialtyTags).Each(func(_ int, tag *goquery.Selection) {
		add(flatText(tag))
	})
	lowerBio := strings.ToLower(bio)
	for _, kw := range prof.SpecialtyWords {
		if strings.Contains(lowerBio, strings.ToLower(kw)) {
			add(kw)
		}
	}
	rec.Specialties = specs

	rec.BioSummary = bioSummary(bio)
	if rec.BioSummary == "" && rec.Experience != records.NotFound {
		rec.BioSummary = truncate(rec.Experience, bioSummaryMax)
	}
}

// bioSummary is the first paragraph of the bio, or its first sentence when
// the bio is a single block.
func bioSummary(bio string) string {
	bio = strings.TrimSpace(bio)
	if bio == "" {
		return ""
	}
	for _, para := range strings.Split(bio, "\n") {
		if p := strings.TrimSpace(para); p != "" {
			if p != bio {
				return p
			}
			break
		}
	}
	if i := strings.IndexAny(bio, ".!"); i > 0 {
		return strings.TrimSpace(bio[:i])
	}
	return bio
}

// personListings resolves the listings link and parses the transaction
// section between its start and end headings.
func personListings(doc *goquery.Document, pageURL string, prof *config.Profile, rec *records.PersonRecord) {
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		t := flatText(a)
		for _, marker := range prof.ListingLinkText {
			if strings.Contains(t, marker) {
				if href, ok := a.Attr("href"); ok {
					rec.ListingsURL = resolveURL("https://"+prof.CanonicalHost+"/", href)
				}
				return false
			}
		}
		return true
	})

	heading := findHeading(doc, "h3, h4, "+prof.Person.BodyCardTitle, prof.TransactionStart)
	if heading == nil {
		return
	}
	container := heading.Closest(prof.Person.BodyCard)
	if container.Length() == 0 {
		return
	}
	// Promo cards embedded in the section would leak extra lines into the
	// blob and break the four-line grouping.
	container.Find(prof.Person.BodyCardPromo).Remove()
	blob := blockText(container)
	window := normalize.TransactionWindow(blob, prof.TransactionStart, prof.TransactionEnd)
	rec.Transactions = normalize.Transactions(window)
}

// findHeading returns the first element matching sel whose text contains
// want, or nil.
func findHeading(doc *goquery.Document, sel, want string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(sel).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(flatText(h), want) {
			found = h
			return false
		}
		return true
	})
	return found
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
