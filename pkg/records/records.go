// Package records defines the public data shapes produced by the crawl
// pipeline. External tools can import this package to consume crawl output
// without depending on the scraping internals.
package records

import "strings"

// Sentinel values used for fields that could not be resolved.
const (
	NotFound    = "Not Found"
	NotAvail    = "N/A"
	Unreachable = "SKIPPED (Unreachable)"
	UnknownName = "Unknown"
)

// PhoneSeparator joins PhoneNumbers into the legacy combined Phone field.
const PhoneSeparator = " | "

// LinkCandidate is a single (name, url) entry discovered during directory
// enumeration. Uniqueness is defined by the pair; discovery order is
// preserved by the enumerator.
type LinkCandidate struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TransactionEntry is one linked-transaction item from a person profile.
// When the source text partitions cleanly into groups of four lines the
// entry is structured; otherwise Raw holds a single unparsed line and the
// structured fields are empty.
type TransactionEntry struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
	Size     string `json:"size,omitempty"`
	Raw      string `json:"raw,omitempty"`
}

// Structured reports whether the entry carries the four-field tuple form.
func (t TransactionEntry) Structured() bool { return t.Raw == "" }

// PersonRecord is the structured result of scraping one profile page.
type PersonRecord struct {
	URL          string             `json:"url"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Title        string             `json:"title"`
	Email        string             `json:"email"`
	OfficePhone  string             `json:"phone_number"`
	MobilePhone  string             `json:"mobile_phone_number"`
	PhoneNumbers []string           `json:"phone_numbers"`
	FullAddress  string             `json:"full_address"`
	AddressLine  string             `json:"address_line"`
	City         string             `json:"city"`
	State        string             `json:"state"`
	Zip          string             `json:"zip"`
	Experience   string             `json:"experience"`
	Specialties  []string           `json:"specialty_tags"`
	BioSummary   string             `json:"bio_summary"`
	VCardURL     string             `json:"vcard_url"`
	Transactions []TransactionEntry `json:"linked_transactions"`
	ListingsURL  string             `json:"listings_url"`
}

// Phone returns the legacy combined phone field, always derived from
// PhoneNumbers so the two never diverge.
func (p *PersonRecord) Phone() string {
	if len(p.PhoneNumbers) == 0 {
		if p.OfficePhone == Unreachable {
			return Unreachable
		}
		return NotFound
	}
	return strings.Join(p.PhoneNumbers, PhoneSeparator)
}

// Name returns the display name.
func (p *PersonRecord) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// MarkUnreachable fills every field except the URL with the unreachable
// sentinel. Used when the profile page cannot be navigated to at all.
func (p *PersonRecord) MarkUnreachable() {
	p.FirstName = Unreachable
	p.LastName = Unreachable
	p.Title = Unreachable
	p.Email = Unreachable
	p.OfficePhone = Unreachable
	p.MobilePhone = Unreachable
	p.PhoneNumbers = nil
	p.FullAddress = Unreachable
	p.AddressLine = Unreachable
	p.City = Unreachable
	p.State = Unreachable
	p.Zip = Unreachable
	p.Experience = Unreachable
	p.Specialties = nil
	p.BioSummary = Unreachable
	p.VCardURL = Unreachable
	p.Transactions = nil
	p.ListingsURL = Unreachable
}

// BrokerContact is one agent/broker attached to a property listing.
type BrokerContact struct {
	Name         string   `json:"name"`
	OfficePhone  string   `json:"phone_number"`
	MobilePhone  string   `json:"mobile_phone_number"`
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
}

// PropertyRecord is the structured result of scraping one property page.
type PropertyRecord struct {
	URL           string          `json:"url"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Description   string          `json:"description"`
	SquareFootage string          `json:"sqft"`
	BrochureURL   string          `json:"brochure_url"`
	Brokers       []BrokerContact `json:"brokers"`
}

// NewPropertyRecord returns a PropertyRecord with sentinel defaults.
func NewPropertyRecord(url string) *PropertyRecord {
	return &PropertyRecord{
		URL:           url,
		SquareFootage: NotAvail,
		BrochureURL:   NotFound,
	}
}
