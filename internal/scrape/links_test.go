package scrape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crelab/dircrawl/internal/config"
	"github.com/crelab/dircrawl/pkg/records"
)

func TestCleanDirectoryURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"https://www.cbre.com/offices/seattle#sort=relevancy&numberOfResults=50",
			"https://www.cbre.com/offices/seattle#sort=relevancy",
		},
		{
			"https://www.cbre.com/search?numberOfResults=25&first=50&q=broker",
			"https://www.cbre.com/search?q=broker",
		},
		{
			"https://www.cbre.com/search?q=broker&first=100",
			"https://www.cbre.com/search?q=broker",
		},
		{
			"https://www.cbre.com/search?first=100",
			"https://www.cbre.com/search",
		},
		{
			"https://www.cbre.com/offices/seattle",
			"https://www.cbre.com/offices/seattle",
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanDirectoryURL(c.in), "input %q", c.in)
	}
}

func TestCleanDirectoryURLLeavesFragmentParamsAlone(t *testing.T) {
	// Coveo search pages key their filters with '&' inside the fragment and
	// carry no query string at all; the cleanup must not invent one.
	cases := []struct{ in, want string }{
		{
			"https://www.cbre.com/offices/seattle#sort=relevancy&f:@worklocation=[Seattle]",
			"https://www.cbre.com/offices/seattle#sort=relevancy&f:@worklocation=[Seattle]",
		},
		{
			"https://www.cbre.com/offices/seattle#sort=relevancy&numberOfResults=50&f:@worklocation=[Seattle]",
			"https://www.cbre.com/offices/seattle#sort=relevancy&f:@worklocation=[Seattle]",
		},
		{
			"https://www.cbre.com/search?first=25#tab=people&sort=relevancy",
			"https://www.cbre.com/search#tab=people&sort=relevancy",
		},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanDirectoryURL(c.in), "input %q", c.in)
	}
}

func TestCandidateSetDedupAndOrder(t *testing.T) {
	set := newCandidateSet(0)
	jane := records.LinkCandidate{Name: "Jane Doe", URL: "https://www.cbre.com/people/jane-doe"}
	tom := records.LinkCandidate{Name: "Tom Park", URL: "https://www.cbre.com/people/tom-park"}

	set.add(jane)
	set.add(tom)
	set.add(jane)
	set.add(jane)

	assert.Equal(t, []records.LinkCandidate{jane, tom}, set.items)
}

func TestCandidateSetSameURLDifferentName(t *testing.T) {
	set := newCandidateSet(0)
	set.add(records.LinkCandidate{Name: "Jane Doe", URL: "https://www.cbre.com/people/jane-doe"})
	set.add(records.LinkCandidate{Name: "Unknown", URL: "https://www.cbre.com/people/jane-doe"})

	assert.Len(t, set.items, 2, "uniqueness is the (name, url) pair, not the url alone")
}

func TestCandidateSetLimit(t *testing.T) {
	set := newCandidateSet(3)
	var full bool
	for i := 0; i < 10; i++ {
		full = set.add(records.LinkCandidate{
			Name: fmt.Sprintf("Person %d", i),
			URL:  fmt.Sprintf("https://www.cbre.com/people/person-%d", i),
		})
	}
	assert.True(t, full)
	assert.Len(t, set.items, 3)
	assert.Equal(t, "Person 0", set.items[0].Name)
	assert.Equal(t, "Person 2", set.items[2].Name)
}

func TestRewriteStagingHost(t *testing.T) {
	prof := config.DefaultProfile()
	got := rewriteStagingHost("https://test-www1.cbre.com/people/jane-doe", prof)
	assert.Equal(t, "https://www.cbre.com/people/jane-doe", got)

	got = rewriteStagingHost("https://www.cbre.com/people/jane-doe", prof)
	assert.Equal(t, "https://www.cbre.com/people/jane-doe", got)
}

func TestContainsChallenge(t *testing.T) {
	markers := config.DefaultProfile().ChallengeMarkers
	assert.True(t, containsChallenge("<html>Verify you are human</html>", markers))
	assert.True(t, containsChallenge(`<div id="cf-challenge"></div>`, markers))
	assert.False(t, containsChallenge("<html><h1>Jane Doe</h1></html>", markers))
}
