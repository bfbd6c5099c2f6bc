package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferMode(t *testing.T) {
	cases := []struct {
		url  string
		want Mode
	}{
		{"https://www.cbre.com/people/jane-doe", ModePerson},
		{"https://www.cbre.com/people/jane-doe/", ModePerson},
		{"https://www.cbre.com/properties/rainier-commerce-center", ModeProperty},
		{"https://www.cbre.com/listings/98765", ModeProperty},
		{"https://www.cbre.com/offices/seattle/people", ModePersonDirectory},
		{"https://www.cbre.com/offices/seattle/people/", ModePersonDirectory},
		{"https://www.cbre.com/offices/seattle#sort=relevancy", ModePersonDirectory},
		{"https://www.cbre.com/search?q=broker", ModePersonDirectory},
		{"https://www.cbre.com/properties-for-lease/commercial-space?sort=lastupdated", ModePropertyDirectory},
		{"https://www.cbre.com/properties-for-sale/industrial", ModePropertyDirectory},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, InferMode(c.url), "url %s", c.url)
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []Mode{ModeAuto, ModePerson, ModeProperty, ModePersonDirectory, ModePropertyDirectory} {
		assert.True(t, ValidMode(m))
	}
	assert.False(t, ValidMode(Mode("office")))
}

func TestStatusStrings(t *testing.T) {
	want := map[Status]string{
		StatusIdle:              "idle",
		StatusConfiguring:       "configuring",
		StatusEnumerating:       "enumerating",
		StatusCheckingDuplicate: "checking-duplicate",
		StatusExtracting:        "extracting",
		StatusPersisting:        "persisting",
		StatusComplete:          "complete",
		StatusFailed:            "failed",
	}
	for s, str := range want {
		assert.Equal(t, str, s.String())
	}
	assert.Equal(t, "unknown", Status(99).String())
}
