package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crelab/dircrawl/internal/config"
)

func TestPropertyHeading(t *testing.T) {
	prof := config.DefaultProfile()

	name, addr := PropertyHeading(
		`<html><body><h1>Rainier Commerce Center<br>1200 Andover Park E, Tukwila, WA 98188</h1></body></html>`,
		prof)
	assert.Equal(t, "Rainier Commerce Center", name)
	assert.Equal(t, "1200 Andover Park E, Tukwila, WA 98188", addr)

	name, addr = PropertyHeading(`<html><body><h1>Warehouse 7</h1></body></html>`, prof)
	assert.Equal(t, "Warehouse 7", name)
	assert.Empty(t, addr)
}

func TestPropertyHeadingDiscardsPlaceholders(t *testing.T) {
	prof := config.DefaultProfile()
	for _, h := range []string{"CBRE", "www.cbre.com", ""} {
		name, addr := PropertyHeading(`<html><body><h1>`+h+`</h1></body></html>`, prof)
		assert.Empty(t, name, "placeholder %q must not become a property name", h)
		assert.Empty(t, addr)
	}
}

func TestSectionsHighlightsAndOverview(t *testing.T) {
	html := `<html><body>
<h2>Property Highlights</h2>
<p>30' clear height</p>
<p>12 dock-high doors</p>
<h2>Overview</h2>
<p>Rainier Commerce Center offers 120,000 SF of distribution space near I-5.</p>
<div class="cbre-c-pd-hero__address">1200 Andover Park E, Tukwila, WA 98188</div>
</body></html>`

	s := Sections(html, config.DefaultProfile())
	assert.Equal(t, "30' clear height\n12 dock-high doors", s.Highlights)
	assert.Contains(t, s.Overview, "distribution space near I-5")
	assert.Equal(t, "1200 Andover Park E, Tukwila, WA 98188", s.Address)
	assert.Equal(t, "120,000 SF", s.SqFt)

	desc := BuildDescription(s)
	assert.Contains(t, desc, "Highlights:\n30' clear height")
	assert.Contains(t, desc, "Overview:\nRainier Commerce Center")
}

func TestSectionsAddressZipScanFallback(t *testing.T) {
	html := `<html><body>
<h1>Fife Distribution Hub</h1>
<p>Call today for a tour.</p>
<p>Located at 4020 Industry Dr, Fife, WA 98424</p>
</body></html>`

	s := Sections(html, config.DefaultProfile())
	assert.Equal(t, "Located at 4020 Industry Dr, Fife, WA 98424", s.Address)
}

func TestSectionsDescriptionFallback(t *testing.T) {
	html := `<html><body>
<div class="cbre-c-pd-overview__description">Flexible suites from 2,500 SF with ample parking.</div>
</body></html>`

	s := Sections(html, config.DefaultProfile())
	assert.Empty(t, s.Highlights)
	assert.Empty(t, s.Overview)
	assert.Equal(t, "Flexible suites from 2,500 SF with ample parking.", BuildDescription(s))
	assert.Equal(t, "2,500 SF", s.SqFt)
}

func TestSquareFootageSentinel(t *testing.T) {
	s := Sections(`<html><body><p>No size listed.</p></body></html>`, config.DefaultProfile())
	assert.Equal(t, "N/A", SquareFootage(s))
}

func TestSquareFootageRange(t *testing.T) {
	s := Sections(`<html><body><p>Available: 5,000 - 25,000 SF contiguous.</p></body></html>`, config.DefaultProfile())
	assert.Equal(t, "5,000 - 25,000 SF", SquareFootage(s))
}

func TestReconcileAddress(t *testing.T) {
	got := ReconcileAddress("Rainier Commerce Center",
		"Rainier Commerce Center, 1200 Andover Park E", "Tukwila, WA 98188")
	assert.Equal(t, "1200 Andover Park E, Tukwila, WA 98188", got,
		"name prefix stripped, structured block appended")

	got = ReconcileAddress("Warehouse 7", "", "4020 Industry Dr, Fife, WA 98424")
	assert.Equal(t, "4020 Industry Dr, Fife, WA 98424", got)

	got = ReconcileAddress("Warehouse 7",
		"4020 Industry Dr, Fife, WA 98424", "Fife, WA 98424")
	assert.Equal(t, "4020 Industry Dr, Fife, WA 98424", got,
		"structured block already contained in the heading address")
}

func TestStaticBrokers(t *testing.T) {
	html := `<html><body>
<div class="cbre-contact-module">
  <h3>Contact our agent</h3>
  <strong>Tom Park</strong>
  <a href="tel:2065550142" aria-label="Office Phone">206 555 0142</a>
  <a href="mailto:tom.park@cbre.com">tom.park@cbre.com</a>
</div>
</body></html>`

	brokers := StaticBrokers(html, config.DefaultProfile())
	require.Len(t, brokers, 1)
	assert.Equal(t, "Tom Park", brokers[0].Name,
		"the strong-tagged name wins over the section heading")
	assert.Equal(t, "+12065550142", brokers[0].OfficePhone)
	assert.Equal(t, []string{"tom.park@cbre.com"}, brokers[0].Emails)
}

func TestStaticBrokersNameFallbackOrder(t *testing.T) {
	// No strong or h3 element: the name falls through to the h4.
	html := `<html><body>
<div class="agent-block">
  <h4>Lena Ortiz</h4>
  <p>Leasing agent</p>
  <a href="tel:2065550177" aria-label="Office Phone">206 555 0177</a>
</div>
</body></html>`

	brokers := StaticBrokers(html, config.DefaultProfile())
	require.Len(t, brokers, 1)
	assert.Equal(t, "Lena Ortiz", brokers[0].Name)
}

func TestStaticBrokersRawTextFallback(t *testing.T) {
	html := `<html><body>
<div class="listing-contact">
  <p>Contact: 206-555-0199</p>
</div>
</body></html>`

	brokers := StaticBrokers(html, config.DefaultProfile())
	require.Len(t, brokers, 1)
	assert.Equal(t, "Contact", brokers[0].Name, "nameless block gets the generic label")
	assert.Equal(t, []string{"+12065550199"}, brokers[0].PhoneNumbers)
}

func TestModalBrokers(t *testing.T) {
	html := `<html><body>
<div class="cbre-c-pl-contact-form">
  <div class="cbre-c-pl-contact-form__broker-content">
    <span class="cbre-c-pl-contact-form__broker-name">Amy Lin</span>
    <div>Mobile <a href="tel:2065550142">206 555 0142</a></div>
    <a href="mailto:amy.lin@cbre.com">Email</a>
  </div>
  <div class="cbre-c-pl-contact-form__broker-content">
    <span class="cbre-c-pl-contact-form__broker-name">Raj Patel</span>
    <div>Office <a href="tel:+1 253 555 0110">+1 253 555 0110</a></div>
  </div>
</div>
</body></html>`

	brokers := ModalBrokers(html, config.DefaultProfile())
	require.Len(t, brokers, 2)
	assert.Equal(t, "Amy Lin", brokers[0].Name)
	assert.Equal(t, "+12065550142", brokers[0].MobilePhone)
	assert.Equal(t, []string{"amy.lin@cbre.com"}, brokers[0].Emails)
	assert.Equal(t, "Raj Patel", brokers[1].Name)
	assert.Equal(t, "+12535550110", brokers[1].OfficePhone)
}

func TestGreedyContact(t *testing.T) {
	html := `<html><body>
<div class="cbre-c-pl-contact-form">
  For leasing information call 206-555-0199 or email leasing@example.com today.
</div>
</body></html>`

	c := GreedyContact(html, config.DefaultProfile())
	require.NotNil(t, c)
	assert.Equal(t, "Alternative Contact", c.Name)
	assert.Equal(t, []string{"+12065550199"}, c.PhoneNumbers)
	assert.Equal(t, []string{"leasing@example.com"}, c.Emails)
}

func TestGreedyContactNothingFound(t *testing.T) {
	html := `<html><body><div class="cbre-c-pl-contact-form">Thanks for your interest.</div></body></html>`
	assert.Nil(t, GreedyContact(html, config.DefaultProfile()))
}
