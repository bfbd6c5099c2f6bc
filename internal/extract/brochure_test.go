package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crelab/dircrawl/pkg/records"
)

const propertyPageURL = "https://www.cbre.com/properties/rainier-commerce-center"

func TestBrochureFromDataAttribute(t *testing.T) {
	html := `<html><body>
<div data-pill-link-info="/fileassets/rainier-brochure.pdf" data-pill-asset-type="Brochure">Download</div>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, "https://www.cbre.com/fileassets/rainier-brochure.pdf", got)
}

func TestBrochureDataAttributeLabelHint(t *testing.T) {
	// The href itself gives nothing away; the asset-type attribute does.
	html := `<html><body>
<div data-url="/dl/a81f2" data-pill-asset-type="Brochure">Property flyer</div>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, "https://www.cbre.com/dl/a81f2", got)
}

func TestBrochureFromCaptionedAnchor(t *testing.T) {
	html := `<html><body>
<a href="/resources/rainier-flyer.pdf">Download Brochure</a>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, "https://www.cbre.com/resources/rainier-flyer.pdf", got)
}

func TestBrochureButtonWithNestedAnchor(t *testing.T) {
	html := `<html><body>
<button>Brochure <a href="https://cdn.example.com/rainier.pdf">get it</a></button>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, "https://cdn.example.com/rainier.pdf", got)
}

func TestBrochureRejectsSelfLink(t *testing.T) {
	// A "Brochure" pill that links back to the page itself must not win,
	// even when only the query string differs.
	html := `<html><body>
<a href="/properties/rainier-commerce-center/?view=brochure">Brochure</a>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, records.NotFound, got)
}

func TestBrochureRejectsPseudoLinks(t *testing.T) {
	html := `<html><body>
<a href="#">Download Brochure</a>
<a href="javascript:void(0)">Brochure</a>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, records.NotFound, got)
}

func TestBrochureRejectsNonDocumentLink(t *testing.T) {
	html := `<html><body>
<a href="/offices/seattle">Download our guide</a>
</body></html>`

	got := Brochure(html, propertyPageURL, "www.cbre.com")
	assert.Equal(t, records.NotFound, got)
}

func TestBrochureNotFoundOnEmptyPage(t *testing.T) {
	assert.Equal(t, records.NotFound, Brochure("<html><body></body></html>", propertyPageURL, "www.cbre.com"))
}
