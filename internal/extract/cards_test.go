package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crelab/dircrawl/internal/config"
)

const peopleDirectoryHTML = `<html><body>
<div class="CoveoResult">
  <a class="cbre-c-listCards__title-link" href="/people/jane-doe">Jane Doe</a>
</div>
<div class="CoveoResult">
  <a class="cbre-c-listCards__title-link" href="https://www.cbre.com/people/tom-park">Tom Park</a>
</div>
<div class="CoveoResult">
  <p class="cbre-c-listCards__title">No Profile Person</p>
</div>
</body></html>`

func TestDirectoryCardsPeople(t *testing.T) {
	sel := config.DefaultProfile().Directory
	got := DirectoryCards(peopleDirectoryHTML, "https://www.cbre.com/offices/seattle", sel)

	require.Len(t, got, 2, "card without a detail link must be dropped")
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "https://www.cbre.com/people/jane-doe", got[0].URL)
	assert.Equal(t, "Tom Park", got[1].Name)
	assert.Equal(t, "https://www.cbre.com/people/tom-park", got[1].URL)
}

func TestDirectoryCardsCardIsAnchor(t *testing.T) {
	html := `<html><body>
<a class="cbre-c-pl-property-card-link" href="/properties/rainier-commerce-center">
  <div class="cbre-c-pl-property-card-heading">Rainier Commerce Center</div>
  <span>120,000 SF</span>
</a>
<a class="cbre-c-pl-property-card-link" href="">
  <div class="cbre-c-pl-property-card-heading">Broken Card</div>
</a>
</body></html>`

	sel := config.DefaultProfile().PropertyCards
	got := DirectoryCards(html, "https://www.cbre.com/properties-for-lease", sel)

	require.Len(t, got, 1)
	assert.Equal(t, "Rainier Commerce Center", got[0].Name)
	assert.Equal(t, "https://www.cbre.com/properties/rainier-commerce-center", got[0].URL)
}

func TestDirectoryCardsKeepsDuplicates(t *testing.T) {
	html := `<html><body>
<div class="CoveoResult"><a class="cbre-c-listCards__title-link" href="/people/jane-doe">Jane Doe</a></div>
<div class="CoveoResult"><a class="cbre-c-listCards__title-link" href="/people/jane-doe">Jane Doe</a></div>
</body></html>`

	got := DirectoryCards(html, "https://www.cbre.com/", config.DefaultProfile().Directory)
	assert.Len(t, got, 2, "per-page extraction does not dedup; the enumerator does")
}

func TestFirstCardText(t *testing.T) {
	assert.Equal(t, "Jane Doe", FirstCardText(peopleDirectoryHTML, ".CoveoResult"))
	assert.Empty(t, FirstCardText("<html><body></body></html>", ".CoveoResult"))
}
